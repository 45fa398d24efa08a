package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/metrics"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/sessionkeys"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// KeyExchangeService receives session keys wrapped under the key authority's
// public key and records them per identity.
type KeyExchangeService struct {
	Authority *cryptox.KeyAuthority
	Keys      *sessionkeys.Store
	Metrics   *metrics.Metrics
}

// PublicKey returns the PEM the requester wraps its session key with.
func (s *KeyExchangeService) PublicKey() string {
	return s.Authority.PublicKeyPEM()
}

// Exchange unwraps a base64 encoded RSA-OAEP ciphertext and stores the
// resulting 32 byte key for identity, replacing any previous key. On any
// failure the store is left untouched.
func (s *KeyExchangeService) Exchange(ctx context.Context, identity, wrapped string) error {
	l := slogx.FromContext(ctx).With(slog.String("user_id", identity))

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(wrapped))
	if err != nil || len(ciphertext) == 0 {
		s.Metrics.KeyExchange(false)
		l.Info("key exchange rejected", slog.String("reason", "encoding"))
		return ErrKeyExchange
	}

	key, err := s.Authority.Unwrap(ciphertext)
	if err != nil {
		s.Metrics.KeyExchange(false)
		l.Info("key exchange rejected", slog.String("reason", "unwrap"))
		return fmt.Errorf("%w: %w", ErrKeyExchange, err)
	}
	defer clear(key)

	if len(key) != cryptox.SessionKeySize {
		s.Metrics.KeyExchange(false)
		l.Info("key exchange rejected", slog.String("reason", "key_size"), slog.Int("size", len(key)))
		return ErrKeyExchange
	}

	s.Keys.Put(identity, key)
	s.Metrics.KeyExchange(true)
	l.Info("session key established")
	return nil
}

// Forget drops the session key for identity. It reports whether one existed.
func (s *KeyExchangeService) Forget(ctx context.Context, identity string) bool {
	ok := s.Keys.Delete(identity)
	if ok {
		slogx.FromContext(ctx).Info("session key dropped", slog.String("user_id", identity))
	}
	return ok
}
