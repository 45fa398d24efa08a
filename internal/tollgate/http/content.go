package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

type ContentHandler struct {
	ContentService *service.ContentService
}

// HandlePremium handles GET /v1/content/premium
//
//	@Summary		Premium content
//	@Description	Returns the premium catalog. Sealed with AES-256-CBC under the caller's session key when one exists, otherwise returned in the clear with encrypted=false.
//	@Tags			Content
//	@Produce		json
//	@Security		AuthToken
//	@Success		200	{object}	tollgatesdk.ContentEnvelope
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/content/premium [get].
func (h *ContentHandler) HandlePremium(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	env, err := h.ContentService.Premium(r.Context(), u)
	if err != nil {
		writeServiceError(w, r, err, "Failed to deliver content")
		return
	}

	out, err := toEnvelope(env)
	if err != nil {
		writeServiceError(w, r, err, "Failed to deliver content")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toEnvelope(env domain.Envelope) (tollgatesdk.ContentEnvelope, error) {
	var (
		data []byte
		err  error
	)
	if env.Encrypted {
		data, err = json.Marshal(env.Sealed)
	} else {
		data, err = json.Marshal(env.Plain)
	}
	if err != nil {
		return tollgatesdk.ContentEnvelope{}, err
	}
	return tollgatesdk.ContentEnvelope{Encrypted: env.Encrypted, Data: data}, nil
}
