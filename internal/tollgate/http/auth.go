package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

// AuthHandler serves registration and the two-step login.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register
//	@Description	Creates a FREE account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tollgatesdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	tollgatesdk.User
//	@Failure		400		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req tollgatesdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	u, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Failed to register user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Login
//	@Description	Checks credentials and sends a one-time code out of band. The code must be submitted to /v1/auth/verify-otp within five minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tollgatesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	tollgatesdk.LoginResponse
//	@Failure		400		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req tollgatesdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	challenge, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Failed to log in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tollgatesdk.LoginResponse{
		UserID:      challenge.UserID,
		OTPRequired: challenge.OTPRequired,
		Message:     "one-time code sent",
	})
}

// HandleVerifyOTP handles POST /v1/auth/verify-otp
//
//	@Summary		Verify one-time code
//	@Description	Completes a login. A code is accepted once and is discarded after five wrong attempts.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tollgatesdk.VerifyOTPRequest	true	"User id and code"
//	@Success		200		{object}	tollgatesdk.SessionResponse
//	@Failure		400		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/verify-otp [post].
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req tollgatesdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	session, err := h.AuthService.VerifyOTP(r.Context(), req.UserID, req.Code)
	if err != nil {
		writeServiceError(w, r, err, "Failed to verify one-time code")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tollgatesdk.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toUser(session.User),
	})
}

// HandleCurrentUser handles GET /v1/auth/user
//
//	@Summary		Current user
//	@Description	Returns the caller's identity as currently stored.
//	@Tags			Auth
//	@Produce		json
//	@Security		AuthToken
//	@Success		200	{object}	tollgatesdk.User
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/user [get].
func (h *AuthHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}
