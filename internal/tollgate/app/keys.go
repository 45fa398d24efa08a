package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
)

// Keys holds the process-lifetime key material.
type Keys struct {
	Authority     *cryptox.KeyAuthority
	Signer        *jwtx.HS256Signer
	Verifier      *jwtx.HS256Verifier
	LicenseSigner *cryptox.CanonicalSigner
}

// InitKeys builds the key authority and the HMAC secrets for session tokens
// and license signatures.
//
// The RSA key pair is always generated at startup and lives only in memory, so
// clients must repeat the key exchange after a restart. When no JWT secret is
// configured an ephemeral one is generated: every session token becomes
// invalid on restart. An ephemeral license secret additionally makes every
// previously approved license fail verification, which is logged loudly.
func InitKeys(cfg Config, logger *slog.Logger) (*Keys, error) {
	authority, err := cryptox.NewKeyAuthority(cfg.RSABits)
	if err != nil {
		return nil, fmt.Errorf("failed to create key authority: %w", err)
	}
	logger.Info("key authority ready", "bits", authority.Bits())

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = cryptox.MustGenerateSecret(cryptox.SecretSize256)
		logger.Warn("TOLLGATE_JWT_SECRET not set, using an ephemeral secret; sessions will not survive a restart")
	}

	licenseSecret := cfg.LicenseSecret
	if licenseSecret == "" {
		licenseSecret = jwtSecret
		logger.Warn("no license secret configured, signatures issued by this process cannot be verified after a restart")
	}

	signer, err := jwtx.NewSignerHS256([]byte(jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT secret: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(jwtSecret), cfg.Issuer, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT secret: %w", err)
	}
	licenseSigner, err := cryptox.NewCanonicalSigner([]byte(licenseSecret))
	if err != nil {
		return nil, fmt.Errorf("invalid license secret: %w", err)
	}

	return &Keys{
		Authority:     authority,
		Signer:        signer,
		Verifier:      verifier,
		LicenseSigner: licenseSigner,
	}, nil
}

// LicenseSigner builds only the license signer, for offline tooling.
func LicenseSigner(cfg Config) (*cryptox.CanonicalSigner, error) {
	if cfg.LicenseSecret == "" {
		return nil, fmt.Errorf("TOLLGATE_LICENSE_SECRET or TOLLGATE_JWT_SECRET must be set")
	}
	return cryptox.NewCanonicalSigner([]byte(cfg.LicenseSecret))
}
