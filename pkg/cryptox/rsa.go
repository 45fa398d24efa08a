package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// MinRSABits is the smallest modulus NewKeyAuthority accepts.
const MinRSABits = 2048

// ErrUnwrap is returned for every failure to unwrap a key. The cause is
// deliberately not distinguished.
var ErrUnwrap = errors.New("cryptox: unable to unwrap key")

// KeyAuthority owns the process-wide RSA keypair used to receive wrapped
// session keys. It is immutable after construction and safe for concurrent use.
// The private half never leaves the value.
type KeyAuthority struct {
	private   *rsa.PrivateKey
	publicPEM []byte
}

// NewKeyAuthority generates a fresh RSA keypair of the given size.
func NewKeyAuthority(bits int) (*KeyAuthority, error) {
	if bits < MinRSABits {
		return nil, fmt.Errorf("cryptox: RSA key size must be at least %d bits", MinRSABits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal public key: %w", err)
	}

	return &KeyAuthority{
		private:   privateKey,
		publicPEM: pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}),
	}, nil
}

// PublicKeyPEM returns the SPKI public key in PEM form.
func (a *KeyAuthority) PublicKeyPEM() string {
	return string(a.publicPEM)
}

// Bits reports the modulus size of the keypair.
func (a *KeyAuthority) Bits() int {
	return a.private.N.BitLen()
}

// Unwrap recovers a key wrapped with RSA-OAEP (SHA-256, empty label) against
// the authority's public key.
func (a *KeyAuthority) Unwrap(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != a.private.Size() {
		return nil, ErrUnwrap
	}
	plain, err := rsa.DecryptOAEP(sha256.New(), nil, a.private, ciphertext, nil)
	if err != nil {
		return nil, ErrUnwrap
	}
	return plain, nil
}

// ParsePublicKeyPEM parses a PEM encoded SPKI RSA public key.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, errors.New("cryptox: no PUBLIC KEY block found")
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to parse public key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("cryptox: expected RSA public key, got %T", key)
	}
	return rsaKey, nil
}

// WrapKey wraps key for the holder of pub using RSA-OAEP with SHA-256.
func WrapKey(pub *rsa.PublicKey, key []byte) ([]byte, error) {
	out, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to wrap key: %w", err)
	}
	return out, nil
}
