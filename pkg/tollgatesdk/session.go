package tollgatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Session is an authenticated session. It is safe for concurrent use.
type Session struct {
	client *Client

	mu         sync.RWMutex
	token      string
	expiresAt  time.Time
	user       User
	sessionKey []byte
}

// Token returns the bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns the token expiry reported at login. It is zero for
// sessions created with NewSessionFromToken.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// User returns the identity as reported at login. Call Me for current state.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Me fetches the caller's current identity.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/user", nil, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return &u, nil
}

// doAuthRequest performs an HTTP request carrying the session token.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	h := map[string]string{authTokenHeader: s.Token()}
	for key, value := range headers {
		h[key] = value
	}
	return s.client.doRequest(ctx, method, path, body, h)
}

func (s *Session) doAuthJSON(ctx context.Context, method, path string, v any) (*http.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return s.doAuthRequest(ctx, method, path, bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"})
}
