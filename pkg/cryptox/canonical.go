package cryptox

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"
)

// CanonicalTimeLayout renders instants in UTC with millisecond precision and a
// literal Z suffix, e.g. 2024-01-01T00:00:00.000Z.
const CanonicalTimeLayout = "2006-01-02T15:04:05.000Z"

// CanonicalTime formats t with CanonicalTimeLayout.
func CanonicalTime(t time.Time) string {
	return t.UTC().Format(CanonicalTimeLayout)
}

// CanonicalSigner signs and verifies field sets with HMAC-SHA256. The fields
// are serialized as compact JSON with keys in lexicographic order, so the same
// set always produces the same bytes regardless of construction order.
type CanonicalSigner struct {
	secret []byte
}

// NewCanonicalSigner returns a signer keyed with secret.
func NewCanonicalSigner(secret []byte) (*CanonicalSigner, error) {
	if len(secret) == 0 {
		return nil, errors.New("cryptox: signing secret must not be empty")
	}
	return &CanonicalSigner{secret: append([]byte(nil), secret...)}, nil
}

// Canonicalize returns the canonical serialization of fields.
func Canonicalize(fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// encoding/json writes map keys in sorted order.
	if err := enc.Encode(fields); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Sign returns the lowercase hex HMAC-SHA256 of the canonical fields.
func (s *CanonicalSigner) Sign(fields map[string]string) (string, error) {
	sum, err := s.mac(fields)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// Verify recomputes the signature over fields and compares it with signature
// in constant time. A malformed signature simply fails to verify.
func (s *CanonicalSigner) Verify(fields map[string]string, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	got, err := s.mac(fields)
	if err != nil {
		return false
	}
	return hmac.Equal(got, want)
}

func (s *CanonicalSigner) mac(fields map[string]string) ([]byte, error) {
	payload, err := Canonicalize(fields)
	if err != nil {
		return nil, err
	}
	h := hmac.New(sha256.New, s.secret)
	h.Write(payload)
	return h.Sum(nil), nil
}
