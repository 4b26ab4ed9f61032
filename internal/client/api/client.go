// Package api is the HTTP client for the shop REST API. It owns the
// default Authorization header: the session layer pushes token changes
// here, and every request sends whatever is current.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Client talks to the shop-service REST API.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAuthHeader replaces the default Authorization header value. An
// empty token clears it, so no stale credential leaks after logout.
func (c *Client) SetAuthHeader(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// AuthHeader returns the current default header value.
func (c *Client) AuthHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues a request and decodes the JSON response into out when out is
// non-nil. The HTTP status is returned even for decode failures; a zero
// status means the request never reached the server.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.AuthHeader(); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// Envelope is the standard response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Profile mirrors the server's sanitized user projection.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    int    `json:"role"`
}

// LoginResponse is the login payload.
type LoginResponse struct {
	Envelope
	User  *Profile `json:"user"`
	Token string   `json:"token"`
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

// Register creates an account. Registration never yields a token; the
// caller logs in afterwards.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Envelope, error) {
	var env Envelope
	status, err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", in, &env)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated && env.Message == "" {
		return &env, fmt.Errorf("register: unexpected status %d", status)
	}
	return &env, nil
}

// Login exchanges credentials for a profile and token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword resets a password via the security answer.
func (c *Client) ForgotPassword(ctx context.Context, email, answer, newPassword string) (*Envelope, error) {
	body := map[string]string{"email": email, "answer": answer, "newPassword": newPassword}
	var env Envelope
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/auth/forgot-password", body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// okResponse is the auth-check payload.
type okResponse struct {
	OK bool `json:"ok"`
}

// authCheck performs a verification round trip for the guard. It
// returns the decoded ok flag, the HTTP status (zero when the request
// never completed) and any transport error.
func (c *Client) authCheck(ctx context.Context, path string) (bool, int, error) {
	var resp okResponse
	status, err := c.do(ctx, http.MethodGet, path, nil, &resp)
	if status == 0 {
		return false, 0, err
	}
	// A decode failure with a real status still counts as a response;
	// the ok flag simply stays false.
	return resp.OK, status, nil
}

// VerifyUser asks the server whether the current token is valid.
func (c *Client) VerifyUser(ctx context.Context) (bool, int, error) {
	return c.authCheck(ctx, "/api/v1/auth/user-auth")
}

// VerifyAdmin asks the server whether the current token is valid and
// carries the admin role.
func (c *Client) VerifyAdmin(ctx context.Context) (bool, int, error) {
	return c.authCheck(ctx, "/api/v1/auth/admin-auth")
}
