package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

type errorMapping struct {
	err         error
	status      int
	description string
}

// serviceErrors maps service sentinels to responses. The error code is the
// sentinel's text. Credential, code and key failures get generic
// descriptions.
var serviceErrors = []errorMapping{
	{service.ErrInvalidInput, http.StatusBadRequest, "The request is malformed or missing required fields"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{service.ErrInvalidOTP, http.StatusUnauthorized, "Invalid or expired one-time code"},
	{service.ErrAuthentication, http.StatusUnauthorized, "Authentication required"},
	{service.ErrForbidden, http.StatusForbidden, "Access denied"},
	{service.ErrNotEntitled, http.StatusForbidden, "No valid entitlement for this content"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrUserExists, http.StatusConflict, "A user with that username or email already exists"},
	{service.ErrKeyExchange, http.StatusBadRequest, "Key exchange failed"},
	{service.ErrLicenseNotFound, http.StatusNotFound, "License not found"},
	{service.ErrLicensePending, http.StatusConflict, "A license request is already pending"},
	{service.ErrInvalidStateTransition, http.StatusConflict, "License is not in a state that allows this operation"},
	{service.ErrInvalidPlan, http.StatusBadRequest, "Unknown subscription plan"},
}

// writeServiceError writes the response for err. Unmapped errors are logged
// and reported as server_error with failure as the description.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			httpx.WriteError(w, m.status, m.err.Error(), m.description)
			return
		}
	}

	slogx.FromContext(r.Context()).Error(failure, slog.Any("error", err))
	httpx.WriteError(w, http.StatusInternalServerError, "server_error", failure)
}

func writeBadBody(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, service.ErrInvalidInput.Error(), "Invalid JSON in request body")
}
