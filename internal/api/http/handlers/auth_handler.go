package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// Permissive shapes only: a single @, no whitespace, local part not
// starting or ending with a dot. Full RFC grammar is out of scope.
var (
	emailPattern = regexp.MustCompile(`^[^\s@.](?:[^\s@]*[^\s@.])?@[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{3,}$`)
)

const passwordTooShortMessage = "Password must be at least 6 characters long"

// AuthHandler exposes the /api/v1/auth endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

func failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}

	in := service.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: strings.TrimSpace(req.Password),
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
		Answer:   strings.TrimSpace(req.Answer),
	}
	if msg, ok := validateRegistration(in); !ok {
		return failure(c, http.StatusBadRequest, msg)
	}

	if _, err := h.auth.Register(c.Context(), in); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return failure(c, http.StatusBadRequest, "Already registered, please login")
		}
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
	})
}

// validateRegistration checks fields in a fixed order: required fields
// first (name, email, password, phone, address, answer), then password
// length, then email format, then phone format. The first failing check
// decides the message.
func validateRegistration(in service.RegisterInput) (string, bool) {
	switch {
	case in.Name == "":
		return "Name is Required", false
	case in.Email == "":
		return "Email is Required", false
	case in.Password == "":
		return "Password is Required", false
	case in.Phone == "":
		return "Phone is Required", false
	case in.Address == "":
		return "Address is Required", false
	case in.Answer == "":
		return "Answer is Required", false
	case len(in.Password) < service.MinPasswordLength:
		return passwordTooShortMessage, false
	case !emailPattern.MatchString(in.Email):
		return "Invalid Email", false
	case !phonePattern.MatchString(in.Phone):
		return "Invalid Phone", false
	}
	return "", true
}

// Login handles POST /api/v1/auth/login. Unknown email, wrong password
// and missing fields all yield the same message.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}
	if req.Email == "" || req.Password == "" {
		return failure(c, http.StatusBadRequest, "Invalid Email or Password")
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return failure(c, http.StatusBadRequest, "Invalid Email or Password")
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    dto.NewUserResponse(user),
		"token":   token,
	})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}
	switch {
	case req.Email == "":
		return failure(c, http.StatusBadRequest, "Email is Required")
	case req.Answer == "":
		return failure(c, http.StatusBadRequest, "Answer is Required")
	case req.NewPassword == "":
		return failure(c, http.StatusBadRequest, "New Password is Required")
	}

	if err := h.auth.ResetPassword(c.Context(), req.Email, req.Answer, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongEmailOrAnswer):
			return failure(c, http.StatusBadRequest, "Wrong Email Or Answer")
		case errors.Is(err, service.ErrPasswordTooShort):
			return failure(c, http.StatusBadRequest, passwordTooShortMessage)
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password Reset Successfully",
	})
}

// UpdateProfile handles PUT /api/v1/auth/profile. Identity comes from
// the authenticated request context, not the body. The short-password
// case responds with the bare {error} shape for compatibility with
// existing clients; every other failure uses the standard envelope.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	subject, ok := auth.SubjectFromContext(c)
	if !ok {
		return failure(c, http.StatusUnauthorized, "Unauthorized Access")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.auth.UpdateProfile(c.Context(), subject, service.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooShort) {
			return c.JSON(fiber.Map{"error": passwordTooShortMessage})
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Profile updated successfully",
		"updatedUser": dto.NewUserResponse(user),
	})
}

// UserAuth handles GET /api/v1/auth/user-auth. Reaching the handler
// means RequireSignIn already admitted the token.
func (h *AuthHandler) UserAuth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// AdminAuth handles GET /api/v1/auth/admin-auth, behind RequireSignIn
// and IsAdmin.
func (h *AuthHandler) AdminAuth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
