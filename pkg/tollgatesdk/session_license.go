package tollgatesdk

import (
	"context"
	"net/http"
	"net/url"
)

// RequestLicense files a pending PREMIUM license for the caller.
func (s *Session) RequestLicense(ctx context.Context) (*License, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/licenses/request", nil, nil)
	if err != nil {
		return nil, err
	}

	var l License
	if err := decodeJSON(resp, &l, http.StatusCreated); err != nil {
		return nil, err
	}
	return &l, nil
}

// MyLicense returns the caller's most recent license.
func (s *Session) MyLicense(ctx context.Context) (*License, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/licenses/mine", nil, nil)
	if err != nil {
		return nil, err
	}

	var l License
	if err := decodeJSON(resp, &l, http.StatusOK); err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLicenses lists every license. Requires ADMIN.
func (s *Session) ListLicenses(ctx context.Context) ([]License, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/licenses", nil, nil)
	if err != nil {
		return nil, err
	}

	var out LicensesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Licenses, nil
}

// ApproveLicense approves a pending license. Requires ADMIN.
func (s *Session) ApproveLicense(ctx context.Context, id string) (*ApproveLicenseResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/licenses/"+url.PathEscape(id)+"/approve", nil, nil)
	if err != nil {
		return nil, err
	}

	var out ApproveLicenseResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeLicense revokes an approved license. Requires ADMIN.
func (s *Session) RevokeLicense(ctx context.Context, id string) (*License, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/licenses/"+url.PathEscape(id)+"/revoke", nil, nil)
	if err != nil {
		return nil, err
	}

	var l License
	if err := decodeJSON(resp, &l, http.StatusOK); err != nil {
		return nil, err
	}
	return &l, nil
}

// VerifyLicense checks a license's signature. The caller must own the license
// or be an admin.
func (s *Session) VerifyLicense(ctx context.Context, id string) (*VerifyLicenseResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/licenses/"+url.PathEscape(id)+"/verify", nil, nil)
	if err != nil {
		return nil, err
	}

	var out VerifyLicenseResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
