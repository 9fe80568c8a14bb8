package clinicsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to a clinicd server. The zero value is not usable; create one
// with NewClient. Unauthenticated onboarding calls work directly on the
// Client; owner operations need a Session from Login.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session is an authenticated view of the API, bound to the bearer token
// Login returned. Tokens are short-lived and there is no refresh; when the
// session expires, log in again.
type Session struct {
	client *Client
	token  string

	UserID   string
	Email    string
	FullName string
}

// Login authenticates and returns a Session for owner operations.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp LoginResponse
	if err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &resp, http.StatusOK); err != nil {
		return nil, err
	}

	return &Session{
		client:   c,
		token:    resp.AccessToken,
		UserID:   resp.UserID,
		Email:    resp.Email,
		FullName: resp.FullName,
	}, nil
}

// SessionFromToken wraps an existing bearer token, e.g. one stored between
// process runs.
func (c *Client) SessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
