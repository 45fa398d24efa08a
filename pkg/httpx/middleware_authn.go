package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// AuthTokenHeader carries the bearer token on every protected call.
const AuthTokenHeader = "X-Auth-Token"

// ErrUnknownPrincipal is returned by a PrincipalResolver for a subject that no
// longer exists.
var ErrUnknownPrincipal = errors.New("httpx: unknown principal")

// PrincipalResolver loads the current state of the identity named by a
// verified token subject.
type PrincipalResolver func(ctx context.Context, subject string) (Principal, error)

// AuthnMiddleware verifies the token in AuthTokenHeader and re-resolves the
// caller through resolve. Only the resolved principal reaches downstream
// handlers; the token's role claim is never trusted.
func AuthnMiddleware(v jwtx.Verifier, resolve PrincipalResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := strings.TrimSpace(r.Header.Get(AuthTokenHeader))
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing "+AuthTokenHeader+" header")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verify failed", slog.Any("err", err))
				WriteError(w, http.StatusUnauthorized, "unauthenticated", "token verification failed")
				return
			}

			p, err := resolve(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, ErrUnknownPrincipal) {
					WriteError(w, http.StatusUnauthorized, "unauthenticated", "unknown identity")
					return
				}
				log.Error("principal lookup failed", slog.Any("err", err))
				WriteError(w, http.StatusInternalServerError, "server_error", "failed to resolve identity")
				return
			}

			if claims.Role != "" && claims.Role != p.Role {
				log.Debug("token role differs from stored role",
					slog.String("user_id", p.ID),
					slog.String("token_role", claims.Role),
					slog.String("role", p.Role),
				)
			}

			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			ctx = WithPrincipal(ctx, p)
			ctx = slogx.With(ctx, slog.String("user_id", p.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
