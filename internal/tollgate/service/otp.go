package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// CodeGenerator produces a fresh numeric one-time code.
type CodeGenerator func(now time.Time) (string, error)

// TOTPCodeGenerator derives each code from a throwaway random TOTP secret, so
// codes are uniformly distributed six digit strings that are never reused
// across logins.
func TOTPCodeGenerator(period time.Duration) CodeGenerator {
	seconds := uint(period / time.Second)
	if seconds == 0 {
		seconds = 30
	}
	return func(now time.Time) (string, error) {
		secret := make([]byte, 20)
		if _, err := rand.Read(secret); err != nil {
			return "", err
		}
		return totp.GenerateCodeCustom(
			base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret),
			now,
			totp.ValidateOpts{
				Period:    seconds,
				Digits:    otp.DigitsSix,
				Algorithm: otp.AlgorithmSHA1,
			},
		)
	}
}

// FixedCodeGenerator always returns code. Intended for tests.
func FixedCodeGenerator(code string) CodeGenerator {
	return func(time.Time) (string, error) { return code, nil }
}

// OTPNotifier delivers a freshly issued one-time code out of band.
type OTPNotifier interface {
	Deliver(ctx context.Context, user domain.User, code string, expiresAt time.Time) error
}

// LogNotifier writes codes to the operator log channel. It stands in for a
// real delivery mechanism such as email or SMS.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Deliver(ctx context.Context, user domain.User, code string, expiresAt time.Time) error {
	n.Logger.InfoContext(ctx, "one-time code issued",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("code", code),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}
