package httpx

import (
	"context"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyPrincipal ctxKey = "principal"
	CtxKeyClaims    ctxKey = "claims"
)

// Principal is the authenticated caller as currently stored, not as claimed
// by its token.
type Principal struct {
	ID   string
	Role string
	Plan string

	// Record is the resolver's full view of the identity (e.g. a user row).
	Record any
}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, CtxKeyPrincipal, p)
}

// PrincipalFromContext returns the principal set by AuthnMiddleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(CtxKeyPrincipal).(Principal)
	return p, ok
}

// ClaimsFromContext returns the verified token claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
