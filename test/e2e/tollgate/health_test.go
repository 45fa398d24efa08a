//go:build e2e

package tollgate_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	s := setupContainer(t)

	health, err := s.client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the database and key authority checks.
func TestReadyzEndpoint(t *testing.T) {
	s := setupContainer(t)

	health, err := s.client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.KeyAuthority)
}

// TestPublicKeyEndpoint verifies the key authority publishes a PEM key.
func TestPublicKeyEndpoint(t *testing.T) {
	s := setupContainer(t)

	pem, err := s.client.PublicKey(t.Context())
	require.NoError(t, err)
	require.Contains(t, pem, "BEGIN PUBLIC KEY")
}
