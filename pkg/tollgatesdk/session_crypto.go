package tollgatesdk

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
)

// EstablishSessionKey generates a fresh AES-256 key, wraps it under the
// service's RSA public key and submits it. It may be called again at any
// time; the new key replaces the previous one on both sides.
func (s *Session) EstablishSessionKey(ctx context.Context) error {
	pemKey, err := s.client.PublicKey(ctx)
	if err != nil {
		return err
	}
	pub, err := cryptox.ParsePublicKeyPEM([]byte(pemKey))
	if err != nil {
		return fmt.Errorf("tollgatesdk: parse public key: %w", err)
	}

	key, err := cryptox.NewSessionKey()
	if err != nil {
		return err
	}
	wrapped, err := cryptox.WrapKey(pub, key)
	if err != nil {
		return fmt.Errorf("tollgatesdk: wrap session key: %w", err)
	}

	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/crypto/session-key", SessionKeyRequest{
		EncryptedKey: base64.StdEncoding.EncodeToString(wrapped),
	})
	if err != nil {
		return err
	}
	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	clear(s.sessionKey)
	s.sessionKey = key
	s.mu.Unlock()
	return nil
}

// DropSessionKey asks the service to forget the session key. Subsequent
// content arrives unencrypted.
func (s *Session) DropSessionKey(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/crypto/session-key", nil, nil)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.mu.Lock()
	clear(s.sessionKey)
	s.sessionKey = nil
	s.mu.Unlock()
	return nil
}

// HasSessionKey reports whether a session key has been established.
func (s *Session) HasSessionKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionKey != nil
}

func (s *Session) key() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.sessionKey...)
}
