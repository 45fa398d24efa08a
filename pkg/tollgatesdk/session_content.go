package tollgatesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
)

// PremiumContent fetches the premium catalog, opening it with the session key
// when the service sealed it. encrypted reports whether it arrived sealed.
func (s *Session) PremiumContent(ctx context.Context) (content *PremiumContent, encrypted bool, err error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/content/premium", nil, nil)
	if err != nil {
		return nil, false, err
	}

	var env ContentEnvelope
	if err := decodeJSON(resp, &env, http.StatusOK); err != nil {
		return nil, false, err
	}

	var out PremiumContent
	if err := s.openEnvelope(env, &out); err != nil {
		return nil, env.Encrypted, err
	}
	return &out, env.Encrypted, nil
}

func (s *Session) openEnvelope(env ContentEnvelope, out any) error {
	if !env.Encrypted {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode content: %w", err)
		}
		return nil
	}

	key := s.key()
	if len(key) == 0 {
		return ErrNoSessionKey
	}
	defer clear(key)

	var sealed Sealed
	if err := json.Unmarshal(env.Data, &sealed); err != nil {
		return fmt.Errorf("failed to decode sealed content: %w", err)
	}
	return cryptox.Open(sealed, key, out)
}
