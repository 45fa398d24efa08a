package tollgatesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned by the service.
const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeInvalidCredentials     = "invalid_credentials"
	ErrorCodeInvalidOTP             = "invalid_otp"
	ErrorCodeUnauthenticated        = "unauthenticated"
	ErrorCodeForbidden              = "forbidden"
	ErrorCodeNotEntitled            = "not_entitled"
	ErrorCodeUserNotFound           = "user_not_found"
	ErrorCodeUserExists             = "user_exists"
	ErrorCodeKeyExchangeFailed      = "key_exchange_failed"
	ErrorCodeLicenseNotFound        = "license_not_found"
	ErrorCodeLicensePending         = "license_pending"
	ErrorCodeInvalidStateTransition = "invalid_state_transition"
	ErrorCodeInvalidPlan            = "invalid_plan"
	ErrorCodeRateLimitExceeded      = "rate_limit_exceeded"
	ErrorCodeServerError            = "server_error"
)

// ErrNoSessionKey is returned when sealed content arrives but the session has
// no key to open it.
var ErrNoSessionKey = errors.New("tollgatesdk: no session key established")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%s (%d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// StatusCode returns the HTTP status of an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        http.StatusText(resp.StatusCode),
		Description: string(body),
	}
}
