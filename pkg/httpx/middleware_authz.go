package httpx

import (
	"net/http"
	"slices"
)

// RequireRole admits callers whose resolved role is one of roles. It must run
// after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return requireAttr("role", func(p Principal) string { return p.Role }, roles)
}

// RequirePlan admits callers whose resolved plan is one of plans.
func RequirePlan(plans ...string) Middleware {
	return requireAttr("plan", func(p Principal) string { return p.Plan }, plans)
}

func requireAttr(name string, get func(Principal) string, allowed []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
				return
			}
			if !slices.Contains(allowed, get(p)) {
				WriteError(w, http.StatusForbidden, "forbidden", "insufficient "+name)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
