package dto

import "github.com/spec-kit/shop-service/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest payload for security-answer password reset.
type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

// ProfileUpdateRequest payload for partial profile updates. Absent or
// empty fields keep their stored values.
type ProfileUpdateRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UserResponse is the sanitized user projection returned to clients.
// Password and security-answer hashes never appear here.
type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    int    `json:"role"`
}

// NewUserResponse projects a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		Role:    int(user.Role),
	}
}
