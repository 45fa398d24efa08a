package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/tollgate/api/tollgate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	gatherer     prometheus.Gatherer

	store               store.Store
	AuthService         *service.AuthService
	UserService         *service.UserService
	KeyExchangeService  *service.KeyExchangeService
	ContentService      *service.ContentService
	SubscriptionService *service.SubscriptionService
	LicenseService      *service.LicenseService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		gatherer:     gatherer,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCrypto()
	r.registerContent()
	r.registerSubscriptions()
	r.registerLicenses()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tollgate Content Service API
//	@version		0.1.0
//	@description	Subscription gated content delivery with a two-step login, a hybrid RSA/AES key exchange and tamper evident licenses.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/tollgate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	AuthToken
//	@in							header
//	@name						X-Auth-Token
//	@description				Session token returned by /v1/auth/verify-otp.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// resolvePrincipal re-reads the identity on every request so that role and
// plan changes take effect immediately.
func (r *Router) resolvePrincipal(ctx context.Context, subject string) (httpx.Principal, error) {
	u, err := r.UserService.Resolve(ctx, subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return httpx.Principal{}, httpx.ErrUnknownPrincipal
		}
		return httpx.Principal{}, err
	}
	return httpx.Principal{
		ID:     u.ID,
		Role:   string(u.Role),
		Plan:   string(u.Plan),
		Record: u,
	}, nil
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, r.resolvePrincipal)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Public credential endpoints - strict rate limits (brute force prevention)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/auth/verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "user_id"),
		),
	)

	r.Mux.Handle("GET /v1/auth/user",
		httpx.Chain(http.HandlerFunc(h.HandleCurrentUser),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerCrypto() {
	h := &CryptoHandler{KeyExchangeService: r.KeyExchangeService}

	r.Mux.Handle("GET /v1/crypto/public-key",
		httpx.Chain(http.HandlerFunc(h.HandlePublicKey),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/crypto/session-key",
		httpx.Chain(http.HandlerFunc(h.HandleSessionKey),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/crypto/session-key",
		httpx.Chain(http.HandlerFunc(h.HandleDropSessionKey),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerContent() {
	h := &ContentHandler{ContentService: r.ContentService}

	// The service re-checks plan and entitlement; the middleware rejects
	// FREE callers before any work is done.
	r.Mux.Handle("GET /v1/content/premium",
		httpx.Chain(http.HandlerFunc(h.HandlePremium),
			r.authn(),
			httpx.RequirePlan(string(domain.PlanPremium)),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSubscriptions() {
	h := &SubscriptionHandler{SubscriptionService: r.SubscriptionService}

	r.Mux.Handle("GET /v1/subscriptions/plans",
		httpx.Chain(http.HandlerFunc(h.HandlePlans),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/subscriptions/subscribe",
		httpx.Chain(http.HandlerFunc(h.HandleSubscribe),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/features",
		httpx.Chain(http.HandlerFunc(h.HandleFeatures),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerLicenses() {
	h := &LicenseHandler{LicenseService: r.LicenseService}
	admin := httpx.RequireRole(string(domain.RoleAdmin))

	r.Mux.Handle("POST /v1/licenses/request",
		httpx.Chain(http.HandlerFunc(h.HandleRequest),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/licenses/mine",
		httpx.Chain(http.HandlerFunc(h.HandleMine),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/licenses",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			admin,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/licenses/{id}/approve",
		httpx.Chain(http.HandlerFunc(h.HandleApprove),
			r.authn(),
			admin,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/licenses/{id}/revoke",
		httpx.Chain(http.HandlerFunc(h.HandleRevoke),
			r.authn(),
			admin,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Owner or admin; ownership is checked by the service.
	r.Mux.Handle("GET /v1/licenses/{id}/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/admin/users",
		httpx.Chain(http.HandlerFunc(h.HandleListUsers),
			r.authn(),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.KeyExchangeService.Authority),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.gatherer != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	}
}
