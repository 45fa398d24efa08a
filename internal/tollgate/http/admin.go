package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

type AdminHandler struct {
	UserService *service.UserService
}

// HandleListUsers handles GET /v1/admin/users
//
//	@Summary		List users
//	@Tags			Admin
//	@Produce		json
//	@Security		AuthToken
//	@Success		200	{object}	tollgatesdk.UsersResponse
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list users")
		return
	}

	out := tollgatesdk.UsersResponse{Users: make([]tollgatesdk.User, len(users))}
	for i, u := range users {
		out.Users[i] = toUser(u)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
