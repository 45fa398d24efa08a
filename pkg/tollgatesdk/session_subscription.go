package tollgatesdk

import (
	"context"
	"net/http"
)

// Subscribe moves the caller onto plan and returns the updated identity.
func (s *Session) Subscribe(ctx context.Context, plan string) (*User, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/subscriptions/subscribe", SubscribeRequest{Plan: plan})
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// Features lists the features available to the caller.
func (s *Session) Features(ctx context.Context) ([]Feature, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/features", nil, nil)
	if err != nil {
		return nil, err
	}

	var out FeaturesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Features, nil
}

// ListUsers lists every identity. Requires ADMIN.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var out UsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Users, nil
}
