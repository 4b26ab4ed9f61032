package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
)

const subjectKey = "auth_subject"

// unauthorizedMessage is deliberately identical for a missing token, a
// bad signature, an expired token and an insufficient role, so callers
// cannot probe which check failed.
const unauthorizedMessage = "Unauthorized Access"

// AuthMiddleware validates bearer tokens and enforces roles.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// RequireSignIn verifies the Authorization header and attaches the token
// subject to the request. Requests without a token fail fast; the
// downstream handler is never invoked on any verification failure.
func (m *AuthMiddleware) RequireSignIn(c *fiber.Ctx) error {
	raw := c.Get("Authorization")
	if raw == "" {
		return respondUnauthorized(c)
	}
	// Both bare tokens and the conventional Bearer prefix are accepted.
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return respondUnauthorized(c)
	}

	c.Locals(subjectKey, claims.Subject)
	return c.Next()
}

// IsAdmin requires RequireSignIn to have run first. It loads the user
// behind the token and admits only the exact admin role value; unknown
// or future role values are rejected. A datastore failure is reported
// as a 500 so "could not check" is distinguishable from "checked and
// refused" in logs and monitoring.
func (m *AuthMiddleware) IsAdmin(c *fiber.Ctx) error {
	subject, ok := SubjectFromContext(c)
	if !ok {
		return respondUnauthorized(c)
	}

	user, err := m.users.GetByID(c.Context(), subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return respondUnauthorized(c)
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error in admin middleware",
			"error":   err.Error(),
		})
	}

	if user.Role != domain.RoleAdmin {
		return respondUnauthorized(c)
	}
	return c.Next()
}

// SubjectFromContext retrieves the authenticated user id.
func SubjectFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(subjectKey)
	if val == nil {
		return "", false
	}
	subject, ok := val.(string)
	return subject, ok
}

func respondUnauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
		"ok":      false,
		"success": false,
		"message": unauthorizedMessage,
	})
}
