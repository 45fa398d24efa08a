package tollgatesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the Tollgate service. It provides the public
// operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSessionFromToken creates a session from a previously issued token.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Register creates a FREE account.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusCreated); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login submits credentials. On success a one-time code is delivered out of
// band and must be passed to VerifyOTP.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP completes a login and returns an authenticated session.
func (c *Client) VerifyOTP(ctx context.Context, userID, code string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/verify-otp", VerifyOTPRequest{
		UserID: userID,
		Code:   code,
	}, nil)
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, expiresAt: out.ExpiresAt, user: out.User}, nil
}

// PublicKey fetches the service's PEM encoded RSA public key.
func (c *Client) PublicKey(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/crypto/public-key", nil, nil)
	if err != nil {
		return "", err
	}

	var out PublicKeyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.PublicKey, nil
}

// Plans lists the subscription plans.
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/subscriptions/plans", nil, nil)
	if err != nil {
		return nil, err
	}

	var out PlansResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Plans, nil
}
