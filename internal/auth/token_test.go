package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("top-secret", time.Hour)

	token, exp, err := tm.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.False(t, claims.IssuedAt.After(time.Now()))
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("top-secret", time.Hour)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("top-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(expired)
	require.Error(t, err)
}

func TestParseTokenMalformed(t *testing.T) {
	tm := NewTokenManager("top-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.ParseToken(token)
		require.Error(t, err, "token %q should not parse", token)
	}
}

func TestParseTokenRejectsOtherSigningMethods(t *testing.T) {
	tm := NewTokenManager("top-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}
