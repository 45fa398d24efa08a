package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/app"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
)

const licenseSecret = "cli-test-license-secret"

func TestMigrateCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(dbArgs(dir, "migrate", "status"))
	require.NoError(t, err)
	require.Contains(t, out, "schema: not initialized")

	out, err = executeCommand(dbArgs(dir, "migrate", "up"))
	require.NoError(t, err)
	require.Contains(t, out, "schema: version 1")

	out, err = executeCommand(dbArgs(dir, "migrate", "status"))
	require.NoError(t, err)
	require.Contains(t, out, "schema: version 1")
}

func TestAdminCreateCmd(t *testing.T) {
	readPassword = func(int) ([]byte, error) { return []byte("hunter2hunter2"), nil }
	t.Cleanup(func() { readPassword = term.ReadPassword })

	tests := []struct {
		name         string
		args         []string
		expectError  bool
		wantOutput   []string
		rejectOutput []string
	}{
		{
			name:       "generated password",
			args:       []string{"admin", "create", "root", "root@example.com"},
			wantOutput: []string{"created admin root", "password: "},
		},
		{
			name:         "chosen password",
			args:         []string{"admin", "create", "ops", "ops@example.com", "--password", "hunter2hunter2"},
			wantOutput:   []string{"created admin ops"},
			rejectOutput: []string{"password: "},
		},
		{
			name:         "prompted password",
			args:         []string{"admin", "create", "tty", "tty@example.com", "--prompt"},
			wantOutput:   []string{"Enter password: ", "created admin tty"},
			rejectOutput: []string{"password: hunter"},
		},
		{
			name:        "password and prompt together",
			args:        []string{"admin", "create", "both", "both@example.com", "--prompt", "--password", "hunter2hunter2"},
			expectError: true,
		},
		{
			name:        "invalid email",
			args:        []string{"admin", "create", "bad", "not-an-email"},
			expectError: true,
		},
		{
			name:        "missing arguments",
			args:        []string{"admin", "create", "root"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(dbArgs(t.TempDir(), tt.args...))
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				require.Contains(t, out, want)
			}
			for _, reject := range tt.rejectOutput {
				require.NotContains(t, out, reject)
			}
		})
	}
}

func TestUsersCmd(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(dbArgs(dir, "admin", "create", "root", "root@example.com"))
	require.NoError(t, err)

	out, err := executeCommand(dbArgs(dir, "users", "list"))
	require.NoError(t, err)
	require.Contains(t, out, "root@example.com")
	require.Contains(t, out, "ADMIN")

	out, err = executeCommand(dbArgs(dir, "users", "normalize"))
	require.NoError(t, err)
	require.Contains(t, out, "normalized 0 identities")
}

// seedApprovedLicense writes an approved license signed with secret and
// returns its id. The store is closed before returning.
func seedApprovedLicense(t *testing.T, dir, secret string) string {
	t.Helper()
	ctx := context.Background()

	db, err := app.OpenStore(filepath.Join(dir, "tollgate.db"))
	require.NoError(t, err)
	defer db.Close()

	signer, err := cryptox.NewCanonicalSigner([]byte(secret))
	require.NoError(t, err)
	auth := &service.AuthService{Store: db, Hasher: cryptox.NewPasswordHasher("")}
	users := &service.UserService{Store: db}
	licenses := &service.LicenseService{Store: db, Signer: signer}

	owner, err := auth.Register(ctx, "owner", "owner@example.com", "owner-password")
	require.NoError(t, err)
	admin, err := auth.Register(ctx, "root", "root@example.com", "root-password")
	require.NoError(t, err)
	admin, err = users.Promote(ctx, admin.ID)
	require.NoError(t, err)

	l, err := licenses.Request(ctx, owner.ID)
	require.NoError(t, err)
	res, err := licenses.Approve(ctx, admin, l.ID)
	require.NoError(t, err)
	require.Equal(t, domain.LicenseApproved, res.License.Status)
	return l.ID
}

func TestLicenseVerifyCmd(t *testing.T) {
	dir := t.TempDir()
	id := seedApprovedLicense(t, dir, licenseSecret)

	out, err := executeCommand(dbArgs(dir, "license", "verify", id, "--secret", licenseSecret))
	require.NoError(t, err)
	require.Contains(t, out, service.MsgIntegrityIntact)

	out, err = executeCommand(dbArgs(dir, "license", "verify", id, "--secret", "some-other-secret"))
	require.ErrorIs(t, err, errLicenseInvalid)
	require.Contains(t, out, service.MsgTampered)

	_, err = executeCommand(dbArgs(dir, "license", "verify", "LIC-missing", "--secret", licenseSecret))
	require.ErrorIs(t, err, service.ErrLicenseNotFound)

	out, err = executeCommand(dbArgs(dir, "license", "list"))
	require.NoError(t, err)
	require.Contains(t, out, id)
	require.Contains(t, out, "approved")

	revokeLicense(t, dir, licenseSecret, id)
	out, err = executeCommand(dbArgs(dir, "license", "verify", id, "--secret", licenseSecret))
	require.ErrorIs(t, err, errLicenseInvalid)
	require.Contains(t, out, service.MsgRevoked)
	require.NotContains(t, out, service.MsgIntegrityIntact)
}

// revokeLicense revokes id as the admin created by seedApprovedLicense.
func revokeLicense(t *testing.T, dir, secret, id string) {
	t.Helper()
	ctx := context.Background()

	db, err := app.OpenStore(filepath.Join(dir, "tollgate.db"))
	require.NoError(t, err)
	defer db.Close()

	signer, err := cryptox.NewCanonicalSigner([]byte(secret))
	require.NoError(t, err)
	admin, err := db.Users().GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)

	_, err = (&service.LicenseService{Store: db, Signer: signer}).Revoke(ctx, admin, id)
	require.NoError(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCommand([]string{"version"})
	require.NoError(t, err)
	require.Contains(t, out, "tollgatectl: "+VERSION)
}
