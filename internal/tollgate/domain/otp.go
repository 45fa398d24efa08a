package domain

import "time"

// OneTimeCodeLength is the number of ASCII digits in a login code.
const OneTimeCodeLength = 6

// MaxOneTimeCodeAttempts is the number of wrong submissions after which a
// pending code is discarded.
const MaxOneTimeCodeAttempts = 5

// OneTimeCode is the pending second factor for an identity.
type OneTimeCode struct {
	UserID    string
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Expired reports whether the code is no longer usable at now.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// LoginChallenge is returned after a successful password check.
type LoginChallenge struct {
	UserID      string
	OTPRequired bool // always true
}

// Session is the outcome of a completed login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
