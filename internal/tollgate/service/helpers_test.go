package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/sessionkeys"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "tollgate-test"
	testPassword = "correct horse battery staple"
	testCode     = "123456"
)

var testSecret = []byte("test-secret-of-sufficient-length")

type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func (n *recordingNotifier) Deliver(_ context.Context, u domain.User, code string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.codes == nil {
		n.codes = map[string]string{}
	}
	n.codes[u.ID] = code
	return nil
}

func (n *recordingNotifier) last(userID string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[userID]
}

type testEnv struct {
	store    store.Store
	auth     *AuthService
	users    *UserService
	licenses *LicenseService
	subs     *SubscriptionService
	keys     *sessionkeys.Store
	notifier *recordingNotifier
	verifier *jwtx.HS256Verifier
}

func newTestEnv(t *testing.T) *testEnv {
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

	notifier := &recordingNotifier{}
	keys := sessionkeys.New()

	return &testEnv{
		store: st,
		auth: &AuthService{
			Store:    st,
			Signer:   signer,
			Hasher:   cryptox.NewPasswordHasher("pepper"),
			Notifier: notifier,
			Codes:    FixedCodeGenerator(testCode),
			Issuer:   testIssuer,
		},
		users:    &UserService{Store: st},
		licenses: &LicenseService{Store: st, Signer: licenseSigner},
		subs:     &SubscriptionService{Store: st},
		keys:     keys,
		notifier: notifier,
		verifier: verifier,
	}
}

func (e *testEnv) register(t *testing.T, name string) domain.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), name, name+"@example.com", testPassword)
	require.NoError(t, err)
	return u
}

func (e *testEnv) admin(t *testing.T, name string) domain.User {
	t.Helper()
	u := e.register(t, name)
	require.NoError(t, e.store.Users().UpdateRolePlan(context.Background(), u.ID, domain.RoleAdmin, domain.PlanFree, nil))
	u, err := e.users.Resolve(context.Background(), u.ID)
	require.NoError(t, err)
	return u
}
