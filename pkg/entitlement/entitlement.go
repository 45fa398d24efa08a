// Package entitlement encodes and decodes the feature entitlement token stored
// on an identity.
//
// A token is the standard base64 encoding of
//
//	subject|feature|plan|issuedAtMillis
//
// The encoding provides neither confidentiality nor integrity. Anyone holding
// a token can read it and anyone can forge one, so a token is only meaningful
// once its fields have been compared against the caller's authenticated
// identity and plan. Pair it with a signed record when integrity matters.
package entitlement

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Feature names carried by tokens.
const (
	FeaturePremiumContent = "PREMIUM_CONTENT"
)

const (
	separator = "|"
	numFields = 4
)

var (
	// ErrMalformedToken is returned when a token cannot be decoded into a Claim.
	ErrMalformedToken = errors.New("entitlement: malformed token")
	// ErrMismatch is returned by Check when a well formed token does not
	// belong to the caller.
	ErrMismatch = errors.New("entitlement: token does not match caller")
	// ErrInvalidField is returned by Validate when a field contains the
	// separator.
	ErrInvalidField = errors.New("entitlement: field contains separator")
)

// Claim is the decoded form of a token.
type Claim struct {
	Subject  string
	Feature  string
	Plan     string
	IssuedAt time.Time
}

// NewClaim returns a claim issued at now, truncated to millisecond precision.
func NewClaim(subject, feature, plan string, now time.Time) Claim {
	return Claim{
		Subject:  subject,
		Feature:  feature,
		Plan:     plan,
		IssuedAt: time.UnixMilli(now.UnixMilli()).UTC(),
	}
}

// Validate reports whether c survives an Encode/Decode round trip. Subject,
// feature and plan must not contain "|".
func (c Claim) Validate() error {
	for _, f := range []string{c.Subject, c.Feature, c.Plan} {
		if strings.Contains(f, separator) {
			return ErrInvalidField
		}
	}
	return nil
}

// Encode serializes c into a token. Callers should Validate c first: a field
// containing "|" yields a token that Decode rejects.
func Encode(c Claim) string {
	raw := strings.Join([]string{
		c.Subject,
		c.Feature,
		c.Plan,
		strconv.FormatInt(c.IssuedAt.UnixMilli(), 10),
	}, separator)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token. Any base64 error or a field count other than four
// yields ErrMalformedToken.
func Decode(token string) (Claim, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Claim{}, ErrMalformedToken
	}

	parts := strings.Split(string(raw), separator)
	if len(parts) != numFields {
		return Claim{}, ErrMalformedToken
	}

	ms, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Claim{}, ErrMalformedToken
	}

	return Claim{
		Subject:  parts[0],
		Feature:  parts[1],
		Plan:     parts[2],
		IssuedAt: time.UnixMilli(ms).UTC(),
	}, nil
}

// Check decodes token and confirms it names subject, feature and plan.
func Check(token, subject, feature, plan string) (Claim, error) {
	c, err := Decode(token)
	if err != nil {
		return Claim{}, err
	}
	if c.Subject != subject || c.Feature != feature || c.Plan != plan {
		return c, ErrMismatch
	}
	return c, nil
}
