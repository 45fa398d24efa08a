package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tollgatehttp "github.com/aussiebroadwan/tollgate/internal/tollgate/http"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/metrics"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/sessionkeys"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "tollgate-test"
	testPassword = "correct horse battery staple"
	testCode     = "123456"
)

var testSecret = []byte("router-test-secret-of-enough-length")

type testServer struct {
	client *tollgatesdk.Client
	store  *sqlite.Store
	url    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, testIssuer, 0)
	require.NoError(t, err)
	licenseSigner, err := cryptox.NewCanonicalSigner(testSecret)
	require.NoError(t, err)
	authority, err := cryptox.NewKeyAuthority(cryptox.MinRSABits)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	keys := sessionkeys.New()
	metrics.RegisterSessionKeyGauge(reg, keys.Len)

	router := tollgatehttp.NewRouter(verifier, "test", st, reg, logger)
	router.AuthService = &service.AuthService{
		Store:    st,
		Signer:   signer,
		Hasher:   cryptox.NewPasswordHasher("pepper"),
		Notifier: service.LogNotifier{Logger: logger},
		Codes:    service.FixedCodeGenerator(testCode),
		Metrics:  m,
		Issuer:   testIssuer,
	}
	router.UserService = &service.UserService{Store: st}
	router.KeyExchangeService = &service.KeyExchangeService{Authority: authority, Keys: keys, Metrics: m}
	router.ContentService = &service.ContentService{Keys: keys, Metrics: m}
	router.SubscriptionService = &service.SubscriptionService{Store: st, Metrics: m}
	router.LicenseService = &service.LicenseService{Store: st, Signer: licenseSigner, Metrics: m}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{client: tollgatesdk.NewClient(srv.URL), store: st, url: srv.URL}
}

// login registers name and completes the two-step login.
func (s *testServer) login(t *testing.T, name string) *tollgatesdk.Session {
	t.Helper()
	ctx := context.Background()

	u, err := s.client.Register(ctx, name, name+"@example.com", testPassword)
	require.NoError(t, err)
	require.Equal(t, "FREE", u.Role)
	require.Equal(t, "FREE", u.Plan)

	challenge, err := s.client.Login(ctx, name+"@example.com", testPassword)
	require.NoError(t, err)
	require.True(t, challenge.OTPRequired)
	require.Equal(t, u.ID, challenge.UserID)

	sess, err := s.client.VerifyOTP(ctx, challenge.UserID, testCode)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token())
	return sess
}

// loginAdmin is like login but promotes the account to ADMIN first. The
// token itself still says FREE; the stored role is what counts.
func (s *testServer) loginAdmin(t *testing.T, name string) *tollgatesdk.Session {
	t.Helper()
	sess := s.login(t, name)
	require.NoError(t, s.store.Users().UpdateRolePlan(context.Background(), sess.User().ID, domain.RoleAdmin, domain.PlanFree, nil))
	return sess
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	sess := s.login(t, "alice")
	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)
	require.Equal(t, "alice@example.com", me.Email)

	// A code is good for one login only.
	_, err = s.client.VerifyOTP(ctx, me.ID, testCode)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeInvalidOTP), err)
	require.Equal(t, http.StatusUnauthorized, tollgatesdk.StatusCode(err))

	_, err = s.client.Login(ctx, "alice@example.com", "wrong password")
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeInvalidCredentials), err)

	_, err = s.client.Register(ctx, "alice", "other@example.com", testPassword)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeUserExists), err)
	require.Equal(t, http.StatusConflict, tollgatesdk.StatusCode(err))
}

func TestRejectsMissingAndBadTokens(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.client.NewSessionFromToken("").Me(ctx)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeUnauthenticated), err)

	_, err = s.client.NewSessionFromToken("not.a.token").Features(ctx)
	require.Equal(t, http.StatusUnauthorized, tollgatesdk.StatusCode(err))
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Post(s.url+"/v1/auth/register", "application/json", strings.NewReader(`{"username":`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"error":"invalid_request","error_description":"Invalid JSON in request body"}`, string(body))
}

func TestPremiumContent(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	sess := s.login(t, "bob")

	_, _, err := sess.PremiumContent(ctx)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeForbidden), err)

	u, err := sess.Subscribe(ctx, "premium")
	require.NoError(t, err)
	require.Equal(t, "PREMIUM", u.Plan)
	require.Equal(t, "PREMIUM", u.Role)

	// No session key yet: the catalog arrives in the clear and says so.
	content, encrypted, err := sess.PremiumContent(ctx)
	require.NoError(t, err)
	require.False(t, encrypted)
	require.Len(t, content.Content, 3)

	require.NoError(t, sess.EstablishSessionKey(ctx))
	require.True(t, sess.HasSessionKey())

	sealed, encrypted, err := sess.PremiumContent(ctx)
	require.NoError(t, err)
	require.True(t, encrypted)
	require.Equal(t, content, sealed)

	// A fresh key replaces the old one on both sides.
	require.NoError(t, sess.EstablishSessionKey(ctx))
	_, encrypted, err = sess.PremiumContent(ctx)
	require.NoError(t, err)
	require.True(t, encrypted)

	require.NoError(t, sess.DropSessionKey(ctx))
	_, encrypted, err = sess.PremiumContent(ctx)
	require.NoError(t, err)
	require.False(t, encrypted)

	_, err = sess.Subscribe(ctx, "FREE")
	require.NoError(t, err)
	_, _, err = sess.PremiumContent(ctx)
	require.Equal(t, http.StatusForbidden, tollgatesdk.StatusCode(err))
}

func TestSubscribeInvalidPlan(t *testing.T) {
	s := newTestServer(t)
	sess := s.login(t, "carol")

	_, err := sess.Subscribe(context.Background(), "GOLD")
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeInvalidPlan), err)
	require.Equal(t, http.StatusBadRequest, tollgatesdk.StatusCode(err))
}

func TestPlansAndFeatures(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	plans, err := s.client.Plans(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, plans)

	sess := s.login(t, "dave")
	free, err := sess.Features(ctx)
	require.NoError(t, err)

	_, err = sess.Subscribe(ctx, "PREMIUM")
	require.NoError(t, err)
	premium, err := sess.Features(ctx)
	require.NoError(t, err)
	require.Greater(t, len(premium), len(free))
}

func TestLicenseLifecycle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	user := s.login(t, "erin")
	admin := s.loginAdmin(t, "root")

	requested, err := user.RequestLicense(ctx)
	require.NoError(t, err)
	require.Equal(t, "pending", requested.Status)
	require.Equal(t, "PREMIUM", requested.PlanType)

	_, err = user.RequestLicense(ctx)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeLicensePending), err)

	// Only admins may approve.
	_, err = user.ApproveLicense(ctx, requested.ID)
	require.Equal(t, http.StatusForbidden, tollgatesdk.StatusCode(err))
	_, err = user.ListLicenses(ctx)
	require.Equal(t, http.StatusForbidden, tollgatesdk.StatusCode(err))

	all, err := admin.ListLicenses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	approved, err := admin.ApproveLicense(ctx, requested.ID)
	require.NoError(t, err)
	require.True(t, approved.RoleChanged)
	require.Equal(t, "PREMIUM", approved.Role)
	require.Equal(t, "approved", approved.License.Status)
	require.NotEmpty(t, approved.License.Signature)
	require.Equal(t, admin.User().ID, approved.License.ApprovedBy)

	_, err = admin.ApproveLicense(ctx, requested.ID)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeInvalidStateTransition), err)

	// The upgrade is visible on the existing token without logging in again.
	me, err := user.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "PREMIUM", me.Role)
	_, _, err = user.PremiumContent(ctx)
	require.NoError(t, err)

	verified, err := user.VerifyLicense(ctx, requested.ID)
	require.NoError(t, err)
	require.True(t, verified.Valid)
	require.Equal(t, service.MsgIntegrityIntact, verified.Message)

	mine, err := user.MyLicense(ctx)
	require.NoError(t, err)
	require.Equal(t, requested.ID, mine.ID)

	revoked, err := admin.RevokeLicense(ctx, requested.ID)
	require.NoError(t, err)
	require.Equal(t, "revoked", revoked.Status)

	verified, err = admin.VerifyLicense(ctx, requested.ID)
	require.NoError(t, err)
	require.False(t, verified.Valid)
	require.Equal(t, service.MsgRevoked, verified.Message)

	_, _, err = user.PremiumContent(ctx)
	require.Equal(t, http.StatusForbidden, tollgatesdk.StatusCode(err))
}

func TestLicenseVerifyOwnership(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	owner := s.login(t, "frank")
	other := s.login(t, "grace")

	l, err := owner.RequestLicense(ctx)
	require.NoError(t, err)

	_, err = other.VerifyLicense(ctx, l.ID)
	require.Equal(t, http.StatusForbidden, tollgatesdk.StatusCode(err))

	_, err = other.MyLicense(ctx)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeLicenseNotFound), err)
}

func TestAdminUsers(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	user := s.login(t, "heidi")
	admin := s.loginAdmin(t, "root")

	_, err := user.ListUsers(ctx)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeForbidden), err)

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.KeyAuthority)

	s.login(t, "ivan")

	resp, err := http.Get(s.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `tollgate_login_attempts_total{outcome="success"} 1`)
	require.Contains(t, string(body), "tollgate_session_keys 0")
}
