package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext credential with the configured cost.
// bcrypt salts per call, so equal inputs produce distinct digests.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a plaintext credential against its stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
