package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s store.Store, name string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleFree,
		Plan:         domain.PlanFree,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestMigrationsSeedCatalog(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	plans, err := s.Catalog().ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.Equal(t, domain.PlanFree, plans[0].Name)
	require.Equal(t, []string{"Basic Access"}, plans[0].Features)
	require.Equal(t, 20, plans[1].Price)
	require.Contains(t, plans[1].Features, "Premium Content")

	features, err := s.Catalog().ListFeatures(ctx)
	require.NoError(t, err)
	require.Len(t, features, 3)

	version, dirty, ok, err := s.MigrationVersion()
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)

	// Re-applying is a no-op.
	require.NoError(t, s.ApplyMigrations())
}

func TestUsersCRUD(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "alice")

	got, err := s.Users().GetUserByEmail(ctx, "  ALICE@example.com ")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Nil(t, got.EntitlementToken)

	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	token := "tok"
	require.NoError(t, s.Users().UpdateRolePlan(ctx, u.ID, domain.RolePremium, domain.PlanPremium, &token))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RolePremium, got.Role)
	require.Equal(t, domain.PlanPremium, got.Plan)
	require.Equal(t, "tok", *got.EntitlementToken)

	require.ErrorIs(t, s.Users().UpdateRolePlan(ctx, "missing", domain.RoleFree, domain.PlanFree, nil), store.ErrNotFound)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	createUser(t, s, "bob")
	users, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestOneTimeCodeLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "carol")
	now := time.Now()

	_, err := s.Users().GetOneTimeCode(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().SetOneTimeCode(ctx, domain.OneTimeCode{
		UserID: u.ID, Code: "123456", ExpiresAt: now.Add(5 * time.Minute),
	}))

	code, err := s.Users().GetOneTimeCode(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "123456", code.Code)
	require.Equal(t, now.Add(5*time.Minute).UnixMilli(), code.ExpiresAt.UnixMilli())

	n, err := s.Users().IncrementOneTimeCodeAttempts(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.ErrorIs(t, s.Users().ConsumeOneTimeCode(ctx, u.ID, "000000", now), store.ErrConditionFailed)
	require.ErrorIs(t, s.Users().ConsumeOneTimeCode(ctx, u.ID, "123456", now.Add(10*time.Minute)), store.ErrConditionFailed)
	require.NoError(t, s.Users().ConsumeOneTimeCode(ctx, u.ID, "123456", now))
	require.ErrorIs(t, s.Users().ConsumeOneTimeCode(ctx, u.ID, "123456", now), store.ErrConditionFailed)

	_, err = s.Users().IncrementOneTimeCodeAttempts(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestClearExpiredOneTimeCodes(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	now := time.Now()

	expired := createUser(t, s, "dave")
	live := createUser(t, s, "erin")
	require.NoError(t, s.Users().SetOneTimeCode(ctx, domain.OneTimeCode{UserID: expired.ID, Code: "111111", ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, s.Users().SetOneTimeCode(ctx, domain.OneTimeCode{UserID: live.ID, Code: "222222", ExpiresAt: now.Add(time.Minute)}))

	n, err := s.Users().ClearExpiredOneTimeCodes(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = s.Users().GetOneTimeCode(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Users().GetOneTimeCode(ctx, live.ID)
	require.NoError(t, err)
}

func TestLicenseTransitions(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	owner := createUser(t, s, "frank")
	admin := createUser(t, s, "grace")

	issued := time.UnixMilli(time.Now().UnixMilli()).UTC()
	id := idx.NewPrefixed(domain.LicenseIDPrefix).String()
	require.NoError(t, s.Licenses().CreateLicense(ctx, domain.License{
		ID:               id,
		UserID:           owner.ID,
		PlanType:         domain.PlanPremium,
		Status:           domain.LicensePending,
		IssuedAt:         issued,
		EncodedLicenseID: domain.EncodeLicenseID(id),
	}))

	pending, err := s.Licenses().HasPendingLicense(ctx, owner.ID)
	require.NoError(t, err)
	require.True(t, pending)

	require.ErrorIs(t, s.Licenses().RevokeLicense(ctx, id, time.Now()), store.ErrConditionFailed)

	approvedAt := issued.Add(time.Minute)
	require.NoError(t, s.Licenses().ApproveLicense(ctx, id, admin.ID, approvedAt, "sig"))
	require.ErrorIs(t, s.Licenses().ApproveLicense(ctx, id, admin.ID, approvedAt, "sig"), store.ErrConditionFailed)

	covered, err := s.Licenses().HasApprovedLicense(ctx, owner.ID, id)
	require.NoError(t, err)
	require.False(t, covered, "the excluded license does not count")
	covered, err = s.Licenses().HasApprovedLicense(ctx, owner.ID, "LIC-other")
	require.NoError(t, err)
	require.True(t, covered)

	got, err := s.Licenses().GetLicenseByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.LicenseApproved, got.Status)
	require.Equal(t, issued, got.IssuedAt)
	require.Equal(t, approvedAt, *got.ApprovedAt)
	require.Equal(t, admin.ID, *got.ApprovedBy)
	require.Equal(t, "sig", *got.Signature)

	require.NoError(t, s.Licenses().RevokeLicense(ctx, id, time.Now()))
	got, err = s.Licenses().GetLatestLicenseForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, domain.LicenseRevoked, got.Status)
	require.NotNil(t, got.RevokedAt)

	all, err := s.Licenses().ListLicenses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = s.Licenses().GetLatestLicenseForUser(ctx, admin.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "heidi")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().UpdateRolePlan(ctx, u.ID, domain.RolePremium, domain.PlanPremium, nil))
		return store.ErrConditionFailed
	})
	require.ErrorIs(t, err, store.ErrConditionFailed)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleFree, got.Role)
}
