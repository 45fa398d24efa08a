package service

import "errors"

// Error values are stable codes; the HTTP layer maps them to status codes and
// uses the text as the error code in responses.
var (
	ErrInvalidInput       = errors.New("invalid_request")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidOTP         = errors.New("invalid_otp")
	ErrAuthentication     = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotEntitled        = errors.New("not_entitled")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrUserExists         = errors.New("user_exists")

	ErrKeyExchange = errors.New("key_exchange_failed")

	ErrLicenseNotFound        = errors.New("license_not_found")
	ErrLicensePending         = errors.New("license_pending")
	ErrInvalidStateTransition = errors.New("invalid_state_transition")
	ErrNoSignature            = errors.New("no_signature")
	ErrSignatureMismatch      = errors.New("signature_mismatch")

	ErrInvalidPlan = errors.New("invalid_plan")
)
