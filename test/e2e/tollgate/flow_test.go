//go:build e2e

package tollgate_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRequiresSecondFactor verifies that a code is single use and that
// the session token reflects the stored identity.
func TestLoginRequiresSecondFactor(t *testing.T) {
	s := setupContainer(t)
	ctx := t.Context()

	sess := s.registerAndLogin(t, "alice")
	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "FREE", me.Role)

	_, err = s.client.VerifyOTP(ctx, me.ID, s.lastCode(t, me.ID))
	assertStatus(t, err, http.StatusUnauthorized, "reused code")

	_, err = s.client.Login(ctx, "alice@example.com", "wrong")
	assertStatus(t, err, http.StatusUnauthorized, "wrong password")
}

// TestEncryptedPremiumContent walks the hybrid key exchange end to end.
func TestEncryptedPremiumContent(t *testing.T) {
	s := setupContainer(t)
	ctx := t.Context()
	sess := s.registerAndLogin(t, "bob")

	_, _, err := sess.PremiumContent(ctx)
	assertStatus(t, err, http.StatusForbidden, "FREE caller")

	_, err = sess.Subscribe(ctx, "PREMIUM")
	require.NoError(t, err)

	content, encrypted, err := sess.PremiumContent(ctx)
	require.NoError(t, err)
	require.False(t, encrypted)
	require.NotEmpty(t, content.Content)

	require.NoError(t, sess.EstablishSessionKey(ctx))
	sealed, encrypted, err := sess.PremiumContent(ctx)
	require.NoError(t, err)
	require.True(t, encrypted)
	require.Equal(t, content, sealed)
}

// TestLicenseApprovalAndOfflineVerify approves a license over HTTP and then
// checks its signature with tollgatectl against the same database.
func TestLicenseApprovalAndOfflineVerify(t *testing.T) {
	s := setupContainer(t)
	ctx := t.Context()
	admin := s.createAdmin(t)
	user := s.registerAndLogin(t, "carol")

	l, err := user.RequestLicense(ctx)
	require.NoError(t, err)

	_, err = user.ApproveLicense(ctx, l.ID)
	assertStatus(t, err, http.StatusForbidden, "non-admin approve")

	res, err := admin.ApproveLicense(ctx, l.ID)
	require.NoError(t, err)
	require.True(t, res.RoleChanged)

	_, err = admin.ApproveLicense(ctx, l.ID)
	require.True(t, tollgatesdk.IsCode(err, tollgatesdk.ErrorCodeInvalidStateTransition), err)

	me, err := user.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "PREMIUM", me.Role)

	code, out := s.ctl(t, "license", "verify", l.ID)
	require.Equal(t, 0, code, out)
	require.Contains(t, out, "License integrity verified")

	code, out = s.ctl(t, "license", "verify", l.ID, "--secret", "not-the-secret")
	require.NotEqual(t, 0, code, out)

	revoked, err := admin.RevokeLicense(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, "revoked", revoked.Status)

	v, err := user.VerifyLicense(ctx, l.ID)
	require.NoError(t, err)
	require.False(t, v.Valid)
}

// TestAdminRoutesRequireAdmin verifies the admin surface rejects other roles.
func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := setupContainer(t)
	ctx := t.Context()
	admin := s.createAdmin(t)
	user := s.registerAndLogin(t, "dave")

	_, err := user.ListUsers(ctx)
	assertStatus(t, err, http.StatusForbidden, "non-admin list users")

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
