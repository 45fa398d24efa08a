package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

// LicenseHandler serves the license lifecycle.
type LicenseHandler struct {
	LicenseService *service.LicenseService
}

// HandleRequest handles POST /v1/licenses/request
//
//	@Summary		Request license
//	@Description	Files a pending PREMIUM license for the caller.
//	@Tags			Licenses
//	@Produce		json
//	@Security		AuthToken
//	@Success		201	{object}	tollgatesdk.License
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/licenses/request [post].
func (h *LicenseHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	l, err := h.LicenseService.Request(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to request license")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toLicense(l))
}

// HandleMine handles GET /v1/licenses/mine
//
//	@Summary		My license
//	@Description	Returns the caller's most recent license.
//	@Tags			Licenses
//	@Produce		json
//	@Security		AuthToken
//	@Success		200	{object}	tollgatesdk.License
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/licenses/mine [get].
func (h *LicenseHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	l, err := h.LicenseService.Mine(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load license")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLicense(l))
}

// HandleList handles GET /v1/licenses
//
//	@Summary		List licenses
//	@Tags			Licenses
//	@Produce		json
//	@Security		AuthToken
//	@Success		200	{object}	tollgatesdk.LicensesResponse
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/licenses [get].
func (h *LicenseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	licenses, err := h.LicenseService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list licenses")
		return
	}

	out := tollgatesdk.LicensesResponse{Licenses: make([]tollgatesdk.License, len(licenses))}
	for i, l := range licenses {
		out.Licenses[i] = toLicense(l)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleApprove handles POST /v1/licenses/{id}/approve
//
//	@Summary		Approve license
//	@Description	Signs a pending license and upgrades its owner to PREMIUM. Of concurrent approvals exactly one succeeds.
//	@Tags			Licenses
//	@Produce		json
//	@Security		AuthToken
//	@Param			id	path		string	true	"License id"
//	@Success		200	{object}	tollgatesdk.ApproveLicenseResponse
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/licenses/{id}/approve [post].
func (h *LicenseHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	admin, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	res, err := h.LicenseService.Approve(r.Context(), admin, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to approve license")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tollgatesdk.ApproveLicenseResponse{
		License:     toLicense(res.License),
		RoleChanged: res.RoleChanged,
		Role:        string(res.Role),
		Plan:        string(res.Plan),
	})
}

// HandleRevoke handles POST /v1/licenses/{id}/revoke
//
//	@Summary		Revoke license
//	@Description	Revokes an approved license and moves its owner back to FREE.
//	@Tags			Licenses
//	@Produce		json
//	@Security		AuthToken
//	@Param			id	path		string	true	"License id"
//	@Success		200	{object}	tollgatesdk.License
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/licenses/{id}/revoke [post].
func (h *LicenseHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	admin, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	l, err := h.LicenseService.Revoke(r.Context(), admin, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to revoke license")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLicense(l))
}

// HandleVerify handles GET /v1/licenses/{id}/verify
//
//	@Summary		Verify license
//	@Description	Recomputes the license signature over its current fields. A mismatch is reported as valid=false, not as an error.
//	@Tags			Licenses
//	@Produce		json
//	@Security		AuthToken
//	@Param			id	path		string	true	"License id"
//	@Success		200	{object}	tollgatesdk.VerifyLicenseResponse
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/licenses/{id}/verify [get].
func (h *LicenseHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	v, err := h.LicenseService.Verify(r.Context(), u, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to verify license")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tollgatesdk.VerifyLicenseResponse{
		Valid:   v.Valid,
		Message: v.Message,
		Status:  string(v.Status),
	})
}
