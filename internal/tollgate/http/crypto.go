package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

// CryptoHandler serves the hybrid key exchange.
type CryptoHandler struct {
	KeyExchangeService *service.KeyExchangeService
}

// HandlePublicKey handles GET /v1/crypto/public-key
//
//	@Summary		Public key
//	@Description	Returns the RSA public key (SPKI PEM) used to wrap session keys with RSA-OAEP/SHA-256.
//	@Tags			Crypto
//	@Produce		json
//	@Success		200	{object}	tollgatesdk.PublicKeyResponse
//	@Router			/v1/crypto/public-key [get].
func (h *CryptoHandler) HandlePublicKey(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, tollgatesdk.PublicKeyResponse{
		PublicKey: h.KeyExchangeService.PublicKey(),
	})
}

// HandleSessionKey handles POST /v1/crypto/session-key
//
//	@Summary		Establish session key
//	@Description	Submits a 32 byte AES key wrapped under the service public key. Replaces any previous key for the caller.
//	@Tags			Crypto
//	@Accept			json
//	@Produce		json
//	@Security		AuthToken
//	@Param			request	body		tollgatesdk.SessionKeyRequest	true	"Wrapped key, base64"
//	@Success		200		{object}	tollgatesdk.MessageResponse
//	@Failure		400		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/crypto/session-key [post].
func (h *CryptoHandler) HandleSessionKey(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	var req tollgatesdk.SessionKeyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	if err := h.KeyExchangeService.Exchange(r.Context(), u.ID, req.EncryptedKey); err != nil {
		writeServiceError(w, r, err, "Failed to establish session key")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tollgatesdk.MessageResponse{Message: "session key established"})
}

// HandleDropSessionKey handles DELETE /v1/crypto/session-key
//
//	@Summary		Drop session key
//	@Description	Forgets the caller's session key. Content is then delivered unencrypted and marked as such.
//	@Tags			Crypto
//	@Security		AuthToken
//	@Success		204	"Session key dropped"
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/crypto/session-key [delete].
func (h *CryptoHandler) HandleDropSessionKey(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	h.KeyExchangeService.Forget(r.Context(), u.ID)
	w.WriteHeader(http.StatusNoContent)
}
