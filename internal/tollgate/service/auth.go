package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/metrics"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/idx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// DefaultCodeTTL is how long a one-time code stays valid.
const DefaultCodeTTL = 5 * time.Minute

// AuthService drives the two-step login: credentials, then a one-time code
// delivered out of band, then a session token.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Hasher   *cryptox.PasswordHasher
	Notifier OTPNotifier
	Codes    CodeGenerator
	Metrics  *metrics.Metrics
	Issuer   string
	TokenTTL time.Duration
	CodeTTL  time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultSessionTTL
}

// Register creates a FREE identity.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleFree,
		Plan:         domain.PlanFree,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// Login checks credentials and, on success, issues a one-time code through
// the notifier. Unknown emails and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.LoginChallenge, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.LoginChallenge{}, err
		}
		// Burn the same hashing work as a real check.
		_ = s.Hasher.Verify(password, s.placeholderHash())
		s.Metrics.Login(false)
		return domain.LoginChallenge{}, ErrInvalidCredentials
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("user_id", u.ID))
		s.Metrics.Login(false)
		return domain.LoginChallenge{}, ErrInvalidCredentials
	}

	now := s.now()
	code, err := s.Codes(now)
	if err != nil {
		return domain.LoginChallenge{}, err
	}
	pending := domain.OneTimeCode{
		UserID:    u.ID,
		Code:      code,
		ExpiresAt: now.Add(s.codeTTL()),
	}
	if err := s.Store.Users().SetOneTimeCode(ctx, pending); err != nil {
		return domain.LoginChallenge{}, err
	}
	if err := s.Notifier.Deliver(ctx, u, code, pending.ExpiresAt); err != nil {
		_ = s.Store.Users().ClearOneTimeCode(ctx, u.ID)
		return domain.LoginChallenge{}, err
	}

	s.Metrics.Login(true)
	l.Info("one-time code issued", slog.String("user_id", u.ID))
	return domain.LoginChallenge{UserID: u.ID, OTPRequired: true}, nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("placeholder")
	})
	return s.dummyHash
}

// VerifyOTP completes a login. A code is accepted at most once; it is
// discarded on expiry and after MaxOneTimeCodeAttempts wrong submissions.
func (s *AuthService) VerifyOTP(ctx context.Context, userID, code string) (domain.Session, error) {
	l := slogx.FromContext(ctx).With(slog.String("user_id", userID))
	now := s.now()

	code = strings.TrimSpace(code)
	if !isOneTimeCode(code) {
		s.Metrics.OTPVerification(false)
		return domain.Session{}, ErrInvalidOTP
	}

	pending, err := s.Store.Users().GetOneTimeCode(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.OTPVerification(false)
			return domain.Session{}, ErrInvalidOTP
		}
		return domain.Session{}, err
	}

	if pending.Expired(now) {
		if err := s.Store.Users().ClearOneTimeCode(ctx, userID); err != nil {
			return domain.Session{}, err
		}
		l.Info("expired one-time code submitted")
		s.Metrics.OTPVerification(false)
		return domain.Session{}, ErrInvalidOTP
	}

	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(code)) != 1 {
		attempts, err := s.Store.Users().IncrementOneTimeCodeAttempts(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, err
		}
		if attempts >= domain.MaxOneTimeCodeAttempts {
			if err := s.Store.Users().ClearOneTimeCode(ctx, userID); err != nil {
				return domain.Session{}, err
			}
			l.Warn("one-time code discarded after too many attempts", slog.Int("attempts", attempts))
		}
		s.Metrics.OTPVerification(false)
		return domain.Session{}, ErrInvalidOTP
	}

	// Conditional clear: concurrent submissions of the same code race here and
	// only one wins.
	if err := s.Store.Users().ConsumeOneTimeCode(ctx, userID, code, now); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			s.Metrics.OTPVerification(false)
			return domain.Session{}, ErrInvalidOTP
		}
		return domain.Session{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Session{}, err
	}
	u = normalizeUser(u)

	claims := jwtx.NewSessionClaims(u.ID, string(u.Role), s.Issuer, s.tokenTTL(), now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Session{}, err
	}

	s.Metrics.OTPVerification(true)
	l.Info("login completed")
	return domain.Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: u}, nil
}

func isOneTimeCode(s string) bool {
	if len(s) != domain.OneTimeCodeLength {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
