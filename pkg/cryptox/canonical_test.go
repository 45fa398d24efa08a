package cryptox_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func licenseFields() map[string]string {
	return map[string]string{
		"userId":     "01HZX5",
		"planType":   "PREMIUM",
		"licenseId":  "LIC-1",
		"issuedAt":   "2024-01-01T00:00:00.000Z",
		"approvedBy": "01HZX6",
		"approvedAt": "2024-01-02T00:00:00.000Z",
	}
}

func TestCanonicalize(t *testing.T) {
	out, err := cryptox.Canonicalize(licenseFields())
	require.NoError(t, err)
	require.Equal(t,
		`{"approvedAt":"2024-01-02T00:00:00.000Z","approvedBy":"01HZX6","issuedAt":"2024-01-01T00:00:00.000Z","licenseId":"LIC-1","planType":"PREMIUM","userId":"01HZX5"}`,
		string(out))
}

func TestCanonicalizeDoesNotEscapeHTML(t *testing.T) {
	out, err := cryptox.Canonicalize(map[string]string{"a": "<b>&"})
	require.NoError(t, err)
	require.Equal(t, `{"a":"<b>&"}`, string(out))
}

func TestCanonicalTime(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	ts := time.Date(2024, 1, 1, 10, 0, 0, 7_000_000, loc)
	require.Equal(t, "2024-01-01T00:00:00.007Z", cryptox.CanonicalTime(ts))
}

func TestSignMatchesHMAC(t *testing.T) {
	secret := []byte("test-secret")
	signer, err := cryptox.NewCanonicalSigner(secret)
	require.NoError(t, err)

	sig, err := signer.Sign(licenseFields())
	require.NoError(t, err)

	payload, err := cryptox.Canonicalize(licenseFields())
	require.NoError(t, err)
	h := hmac.New(sha256.New, secret)
	h.Write(payload)
	require.Equal(t, hex.EncodeToString(h.Sum(nil)), sig)
	require.True(t, signer.Verify(licenseFields(), sig))
}

func TestSignIsDeterministic(t *testing.T) {
	signer, err := cryptox.NewCanonicalSigner([]byte("k"))
	require.NoError(t, err)

	a, err := signer.Sign(licenseFields())
	require.NoError(t, err)
	b, err := signer.Sign(licenseFields())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestVerifyDetectsFieldDrift(t *testing.T) {
	signer, err := cryptox.NewCanonicalSigner([]byte("k"))
	require.NoError(t, err)
	sig, err := signer.Sign(licenseFields())
	require.NoError(t, err)

	for field := range licenseFields() {
		t.Run(field, func(t *testing.T) {
			fields := licenseFields()
			fields[field] += "x"
			require.False(t, signer.Verify(fields, sig))
		})
	}
}

func TestVerifyRejectsOtherSecretAndGarbage(t *testing.T) {
	a, err := cryptox.NewCanonicalSigner([]byte("a"))
	require.NoError(t, err)
	b, err := cryptox.NewCanonicalSigner([]byte("b"))
	require.NoError(t, err)

	sig, err := a.Sign(licenseFields())
	require.NoError(t, err)

	require.False(t, b.Verify(licenseFields(), sig))
	require.False(t, a.Verify(licenseFields(), "not-hex"))
	require.False(t, a.Verify(licenseFields(), ""))
	require.False(t, a.Verify(licenseFields(), sig[:10]))
}

func TestNewCanonicalSignerRejectsEmptySecret(t *testing.T) {
	_, err := cryptox.NewCanonicalSigner(nil)
	require.Error(t, err)
}
