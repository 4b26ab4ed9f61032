package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/domain"
)

// fakeUserRepo implements repository.UserRepository for middleware tests.
type fakeUserRepo struct {
	users  map[string]*domain.User
	getErr error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestApp(t *testing.T, repo *fakeUserRepo) (*fiber.App, *TokenManager, *bool) {
	t.Helper()

	tm := NewTokenManager("test-secret", time.Hour)
	mw := NewAuthMiddleware(tm, repo)

	reached := false
	app := fiber.New()
	app.Get("/guarded", mw.RequireSignIn, func(c *fiber.Ctx) error {
		reached = true
		subject, ok := SubjectFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"ok": true, "subject": subject})
	})
	app.Get("/admin", mw.RequireSignIn, mw.IsAdmin, func(c *fiber.Ctx) error {
		reached = true
		return c.JSON(fiber.Map{"ok": true})
	})
	return app, tm, &reached
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRequireSignInNoToken(t *testing.T) {
	app, _, reached := newTestApp(t, &fakeUserRepo{users: map[string]*domain.User{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, *reached, "downstream handler must not run")

	body := decodeBody(t, resp)
	require.Equal(t, "Unauthorized Access", body["message"])
}

func TestRequireSignInInvalidToken(t *testing.T) {
	app, _, reached := newTestApp(t, &fakeUserRepo{users: map[string]*domain.User{}})

	for _, token := range []string{"garbage", "a.b.c"} {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.False(t, *reached)

		body := decodeBody(t, resp)
		require.Equal(t, "Unauthorized Access", body["message"])
	}
}

func TestRequireSignInExpiredTokenUniformMessage(t *testing.T) {
	app, _, reached := newTestApp(t, &fakeUserRepo{users: map[string]*domain.User{}})

	other := NewTokenManager("another-secret", time.Hour)
	token, _, err := other.GenerateToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, *reached)

	body := decodeBody(t, resp)
	require.Equal(t, "Unauthorized Access", body["message"])
}

func TestRequireSignInValidToken(t *testing.T) {
	app, tm, reached := newTestApp(t, &fakeUserRepo{users: map[string]*domain.User{}})

	token, _, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, *reached)

	body := decodeBody(t, resp)
	require.Equal(t, "user-1", body["subject"])
}

func TestIsAdminRoleWhitelist(t *testing.T) {
	cases := []struct {
		name string
		role domain.Role
		want int
	}{
		{"admin", domain.RoleAdmin, http.StatusOK},
		{"standard", domain.RoleStandard, http.StatusUnauthorized},
		{"negative", domain.Role(-1), http.StatusUnauthorized},
		{"unknown", domain.Role(7), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeUserRepo{users: map[string]*domain.User{
				"user-1": {ID: "user-1", Email: "u@example.com", Role: tc.role},
			}}
			app, tm, _ := newTestApp(t, repo)

			token, _, err := tm.GenerateToken("user-1")
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.StatusCode)

			if tc.want == http.StatusUnauthorized {
				body := decodeBody(t, resp)
				require.Equal(t, "Unauthorized Access", body["message"])
			}
		})
	}
}

func TestIsAdminUserNotFound(t *testing.T) {
	app, tm, reached := newTestApp(t, &fakeUserRepo{users: map[string]*domain.User{}})

	token, _, err := tm.GenerateToken("ghost")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, *reached)
}

func TestIsAdminDatastoreFailureIsDistinct(t *testing.T) {
	repo := &fakeUserRepo{getErr: errors.New("connection refused")}
	app, tm, reached := newTestApp(t, repo)

	token, _, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.False(t, *reached)

	body := decodeBody(t, resp)
	require.Contains(t, body["error"], "connection refused")
}
