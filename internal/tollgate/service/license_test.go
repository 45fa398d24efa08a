package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/entitlement"
	"github.com/stretchr/testify/require"
)

func TestLicenseRequest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "ivan")

	l, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.LicensePending, l.Status)
	require.Equal(t, domain.PlanPremium, l.PlanType)
	require.Equal(t, u.ID, l.UserID)
	require.Equal(t, domain.EncodeLicenseID(l.ID), l.EncodedLicenseID)
	require.False(t, l.Signed())

	_, err = env.licenses.Request(ctx, u.ID)
	require.ErrorIs(t, err, ErrLicensePending)

	mine, err := env.licenses.Mine(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, l.ID, mine.ID)

	_, err = env.licenses.Request(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.licenses.Mine(ctx, "nobody")
	require.ErrorIs(t, err, ErrLicenseNotFound)
}

func TestLicenseApprove(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t, "root")
	u := env.register(t, "judy")

	l, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)

	_, err = env.licenses.Approve(ctx, u, l.ID)
	require.ErrorIs(t, err, ErrForbidden, "non-admin cannot approve")

	res, err := env.licenses.Approve(ctx, admin, l.ID)
	require.NoError(t, err)
	require.Equal(t, domain.LicenseApproved, res.License.Status)
	require.True(t, res.RoleChanged)
	require.Equal(t, domain.RolePremium, res.Role)
	require.Equal(t, domain.PlanPremium, res.Plan)
	require.NotNil(t, res.License.Signature)
	require.Equal(t, admin.ID, *res.License.ApprovedBy)

	stored, err := env.store.Licenses().GetLicenseByID(ctx, l.ID)
	require.NoError(t, err)
	require.NoError(t, env.licenses.CheckSignature(stored))

	owner, err := env.users.Resolve(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RolePremium, owner.Role)
	require.NotNil(t, owner.EntitlementToken)
	_, err = entitlement.Check(*owner.EntitlementToken, u.ID, entitlement.FeaturePremiumContent, string(domain.PlanPremium))
	require.NoError(t, err)

	_, err = env.licenses.Approve(ctx, admin, l.ID)
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	_, err = env.licenses.Approve(ctx, admin, "LIC-missing")
	require.ErrorIs(t, err, ErrLicenseNotFound)
}

func TestLicenseApproveKeepsAdminRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t, "root")

	l, err := env.licenses.Request(ctx, admin.ID)
	require.NoError(t, err)

	res, err := env.licenses.Approve(ctx, admin, l.ID)
	require.NoError(t, err)
	require.False(t, res.RoleChanged)
	require.Equal(t, domain.RoleAdmin, res.Role)
	require.Equal(t, domain.PlanPremium, res.Plan)
}

func TestLicenseConcurrentApprovalSucceedsOnce(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t, "root")
	u := env.register(t, "mallory")

	l, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)

	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.licenses.Approve(ctx, admin, l.ID)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, ErrInvalidStateTransition):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	require.Equal(t, int32(7), conflicts.Load())
}

func TestLicenseRevoke(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t, "root")
	u := env.register(t, "niaj")

	l, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)

	_, err = env.licenses.Revoke(ctx, admin, l.ID)
	require.ErrorIs(t, err, ErrInvalidStateTransition, "pending cannot be revoked")

	_, err = env.licenses.Approve(ctx, admin, l.ID)
	require.NoError(t, err)

	_, err = env.licenses.Revoke(ctx, u, l.ID)
	require.ErrorIs(t, err, ErrForbidden)

	revoked, err := env.licenses.Revoke(ctx, admin, l.ID)
	require.NoError(t, err)
	require.Equal(t, domain.LicenseRevoked, revoked.Status)
	require.NotNil(t, revoked.RevokedAt)

	owner, err := env.users.Resolve(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleFree, owner.Role)
	require.Equal(t, domain.PlanFree, owner.Plan)
	require.Nil(t, owner.EntitlementToken)

	_, err = env.licenses.Revoke(ctx, admin, l.ID)
	require.ErrorIs(t, err, ErrInvalidStateTransition)
	_, err = env.licenses.Approve(ctx, admin, l.ID)
	require.ErrorIs(t, err, ErrInvalidStateTransition)

	// A fresh request is allowed once nothing is pending.
	_, err = env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)
}

func TestLicenseRevokeKeepsPlanWhileAnotherLicenseIsApproved(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t, "root")
	u := env.register(t, "olivia")

	first, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)
	_, err = env.licenses.Approve(ctx, admin, first.ID)
	require.NoError(t, err)

	second, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)
	_, err = env.licenses.Approve(ctx, admin, second.ID)
	require.NoError(t, err)

	_, err = env.licenses.Revoke(ctx, admin, first.ID)
	require.NoError(t, err)

	v, err := env.licenses.Verify(ctx, u, second.ID)
	require.NoError(t, err)
	require.True(t, v.Valid)

	owner, err := env.users.Resolve(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RolePremium, owner.Role)
	require.Equal(t, domain.PlanPremium, owner.Plan)
	require.NotNil(t, owner.EntitlementToken)

	// Revoking the last approved license drops the owner to FREE.
	_, err = env.licenses.Revoke(ctx, admin, second.ID)
	require.NoError(t, err)

	owner, err = env.users.Resolve(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleFree, owner.Role)
	require.Equal(t, domain.PlanFree, owner.Plan)
	require.Nil(t, owner.EntitlementToken)
}

func TestLicenseVerify(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t, "root")
	u := env.register(t, "olivia")
	other := env.register(t, "peggy")

	l, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)

	v, err := env.licenses.Verify(ctx, u, l.ID)
	require.NoError(t, err)
	require.False(t, v.Valid)
	require.Equal(t, MsgNoSignature, v.Message)
	require.Equal(t, domain.LicensePending, v.Status)

	_, err = env.licenses.Approve(ctx, admin, l.ID)
	require.NoError(t, err)

	v, err = env.licenses.Verify(ctx, u, l.ID)
	require.NoError(t, err)
	require.True(t, v.Valid)
	require.Equal(t, MsgIntegrityIntact, v.Message)

	v, err = env.licenses.Verify(ctx, admin, l.ID)
	require.NoError(t, err)
	require.True(t, v.Valid)

	_, err = env.licenses.Verify(ctx, other, l.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = env.licenses.Verify(ctx, u, "LIC-missing")
	require.ErrorIs(t, err, ErrLicenseNotFound)

	_, err = env.licenses.Revoke(ctx, admin, l.ID)
	require.NoError(t, err)

	v, err = env.licenses.Verify(ctx, u, l.ID)
	require.NoError(t, err)
	require.False(t, v.Valid)
	require.Equal(t, MsgRevoked, v.Message)
	require.Equal(t, domain.LicenseRevoked, v.Status)
}

func TestLicenseTamperDetection(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t, "root")
	u := env.register(t, "rupert")

	l, err := env.licenses.Request(ctx, u.ID)
	require.NoError(t, err)
	res, err := env.licenses.Approve(ctx, admin, l.ID)
	require.NoError(t, err)
	signed := res.License

	tests := []struct {
		name   string
		mutate func(*domain.License)
	}{
		{"plan", func(l *domain.License) { l.PlanType = domain.PlanFree }},
		{"owner", func(l *domain.License) { l.UserID = "someone-else" }},
		{"approver", func(l *domain.License) { other := "intruder"; l.ApprovedBy = &other }},
		{"approved at", func(l *domain.License) { at := l.ApprovedAt.Add(time.Millisecond); l.ApprovedAt = &at }},
		{"issued at", func(l *domain.License) { l.IssuedAt = l.IssuedAt.Add(-time.Second) }},
		{"signature", func(l *domain.License) { l.Signature = flipFirst(*l.Signature) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := signed
			tt.mutate(&c)
			require.ErrorIs(t, env.licenses.CheckSignature(c), ErrSignatureMismatch)
		})
	}

	// A verifier holding a different secret sees the stored record as tampered.
	otherSigner, err := cryptox.NewCanonicalSigner([]byte("a-completely-different-secret"))
	require.NoError(t, err)
	foreign := &LicenseService{Store: env.store, Signer: otherSigner}

	v, err := foreign.Verify(ctx, u, l.ID)
	require.NoError(t, err)
	require.False(t, v.Valid)
	require.Equal(t, MsgTampered, v.Message)
}

func flipFirst(s string) *string {
	b := []byte(s)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	out := string(b)
	return &out
}
