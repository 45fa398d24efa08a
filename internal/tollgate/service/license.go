package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/metrics"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/idx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// Verification messages returned to callers.
const (
	MsgNoSignature     = "No digital signature found on license"
	MsgTampered        = "Tampering detected! Signature mismatch"
	MsgRevoked         = "License has been revoked"
	MsgIntegrityIntact = "License integrity verified"
)

// LicenseService owns the license lifecycle pending -> approved -> revoked
// and the signatures that make approved records tamper evident.
type LicenseService struct {
	Store   store.Store
	Signer  *cryptox.CanonicalSigner
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// now is truncated to milliseconds, the precision signatures cover.
func (s *LicenseService) now() time.Time {
	t := time.Now()
	if s.Now != nil {
		t = s.Now()
	}
	return time.UnixMilli(t.UnixMilli()).UTC()
}

// Request files a pending PREMIUM license for userID.
func (s *LicenseService) Request(ctx context.Context, userID string) (domain.License, error) {
	id := idx.NewPrefixed(domain.LicenseIDPrefix).String()
	l := domain.License{
		ID:               id,
		UserID:           userID,
		PlanType:         domain.PlanPremium,
		Status:           domain.LicensePending,
		IssuedAt:         s.now(),
		EncodedLicenseID: domain.EncodeLicenseID(id),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		pending, err := tx.Licenses().HasPendingLicense(ctx, userID)
		if err != nil {
			return err
		}
		if pending {
			return ErrLicensePending
		}
		return tx.Licenses().CreateLicense(ctx, l)
	})
	if err != nil {
		return domain.License{}, err
	}

	s.Metrics.LicenseEvent(string(domain.LicensePending))
	slogx.FromContext(ctx).Info("license requested",
		slog.String("license_id", l.ID), slog.String("user_id", userID))
	return l, nil
}

// Mine returns the most recent license owned by userID.
func (s *LicenseService) Mine(ctx context.Context, userID string) (domain.License, error) {
	l, err := s.Store.Licenses().GetLatestLicenseForUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.License{}, ErrLicenseNotFound
	}
	return l, err
}

// List returns every license.
func (s *LicenseService) List(ctx context.Context) ([]domain.License, error) {
	return s.Store.Licenses().ListLicenses(ctx)
}

// Approve signs a pending license and upgrades its owner, all in one
// transaction. Approving anything but a pending license yields
// ErrInvalidStateTransition; of several concurrent approvals exactly one
// succeeds.
func (s *LicenseService) Approve(ctx context.Context, admin domain.User, licenseID string) (domain.ApprovalResult, error) {
	if !admin.IsAdmin() {
		return domain.ApprovalResult{}, ErrForbidden
	}

	now := s.now()
	var result domain.ApprovalResult

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		l, err := getLicense(ctx, tx, licenseID)
		if err != nil {
			return err
		}
		if l.Status != domain.LicensePending {
			return fmt.Errorf("%w: license is %s", ErrInvalidStateTransition, l.Status)
		}

		approver := admin.ID
		l.ApprovedBy = &approver
		l.ApprovedAt = &now

		// Signature is computed over the final values before anything is written.
		sig, err := s.Signer.Sign(l.SigningFields())
		if err != nil {
			return err
		}
		l.Signature = &sig

		if err := tx.Licenses().ApproveLicense(ctx, l.ID, approver, now, sig); err != nil {
			if errors.Is(err, store.ErrConditionFailed) {
				return ErrInvalidStateTransition
			}
			return err
		}
		l.Status = domain.LicenseApproved

		owner, err := tx.Users().GetUserByID(ctx, l.UserID)
		if err != nil {
			return err
		}
		owner = normalizeUser(owner)
		before := owner.Role

		owner, err = applyPlan(ctx, tx, owner, l.PlanType, now)
		if err != nil {
			return err
		}

		result = domain.ApprovalResult{
			License:     l,
			RoleChanged: before != owner.Role,
			Role:        owner.Role,
			Plan:        owner.Plan,
		}
		return nil
	})
	if err != nil {
		return domain.ApprovalResult{}, err
	}

	s.Metrics.LicenseEvent(string(domain.LicenseApproved))
	slogx.FromContext(ctx).Info("license approved",
		slog.String("license_id", licenseID),
		slog.String("approved_by", admin.ID),
		slog.String("owner_role", string(result.Role)),
	)
	return result, nil
}

// Revoke moves an approved license to revoked. Unless the owner still holds
// another approved license, they drop back to the FREE plan and their
// entitlement token is cleared.
func (s *LicenseService) Revoke(ctx context.Context, admin domain.User, licenseID string) (domain.License, error) {
	if !admin.IsAdmin() {
		return domain.License{}, ErrForbidden
	}

	now := s.now()
	var out domain.License

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		l, err := getLicense(ctx, tx, licenseID)
		if err != nil {
			return err
		}
		if l.Status != domain.LicenseApproved {
			return fmt.Errorf("%w: license is %s", ErrInvalidStateTransition, l.Status)
		}

		if err := tx.Licenses().RevokeLicense(ctx, l.ID, now); err != nil {
			if errors.Is(err, store.ErrConditionFailed) {
				return ErrInvalidStateTransition
			}
			return err
		}
		l.Status = domain.LicenseRevoked
		l.RevokedAt = &now

		covered, err := tx.Licenses().HasApprovedLicense(ctx, l.UserID, l.ID)
		if err != nil {
			return err
		}
		if !covered {
			owner, err := tx.Users().GetUserByID(ctx, l.UserID)
			if err != nil {
				return err
			}
			if _, err := applyPlan(ctx, tx, normalizeUser(owner), domain.PlanFree, now); err != nil {
				return err
			}
		}

		out = l
		return nil
	})
	if err != nil {
		return domain.License{}, err
	}

	s.Metrics.LicenseEvent(string(domain.LicenseRevoked))
	slogx.FromContext(ctx).Info("license revoked",
		slog.String("license_id", licenseID), slog.String("revoked_by", admin.ID))
	return out, nil
}

// Verify checks the signature of a license against its current field values.
// Only the owner or an admin may verify.
func (s *LicenseService) Verify(ctx context.Context, caller domain.User, licenseID string) (domain.LicenseVerification, error) {
	l, err := getLicense(ctx, s.Store, licenseID)
	if err != nil {
		return domain.LicenseVerification{}, err
	}
	if l.UserID != caller.ID && !caller.IsAdmin() {
		return domain.LicenseVerification{}, ErrForbidden
	}

	res, err := s.Classify(l)
	if err != nil {
		return domain.LicenseVerification{}, err
	}
	if res.Message == MsgTampered {
		slogx.FromContext(ctx).Warn("license signature mismatch", slog.String("license_id", l.ID))
	}

	s.Metrics.LicenseVerification(verificationResult(res))
	return res, nil
}

// Classify reports whether l is valid. A missing signature is checked first,
// then a mismatch, then revocation.
func (s *LicenseService) Classify(l domain.License) (domain.LicenseVerification, error) {
	res := domain.LicenseVerification{Status: l.Status}
	switch err := s.CheckSignature(l); {
	case errors.Is(err, ErrNoSignature):
		res.Message = MsgNoSignature
	case errors.Is(err, ErrSignatureMismatch):
		res.Message = MsgTampered
	case err != nil:
		return domain.LicenseVerification{}, err
	case l.Status == domain.LicenseRevoked:
		res.Message = MsgRevoked
	default:
		res.Valid = true
		res.Message = MsgIntegrityIntact
	}
	return res, nil
}

// CheckSignature returns nil when l carries a signature matching its fields,
// ErrNoSignature when it has none, and ErrSignatureMismatch otherwise.
func (s *LicenseService) CheckSignature(l domain.License) error {
	if !l.Signed() {
		return ErrNoSignature
	}
	if !s.Signer.Verify(l.SigningFields(), *l.Signature) {
		return ErrSignatureMismatch
	}
	return nil
}

func verificationResult(v domain.LicenseVerification) string {
	switch {
	case v.Valid:
		return "valid"
	case v.Message == MsgNoSignature:
		return "unsigned"
	case v.Message == MsgRevoked:
		return "revoked"
	default:
		return "tampered"
	}
}

// Get returns a license by id without any ownership check. Intended for
// operator tooling.
func (s *LicenseService) Get(ctx context.Context, licenseID string) (domain.License, error) {
	return getLicense(ctx, s.Store, licenseID)
}

func getLicense(ctx context.Context, s store.Store, id string) (domain.License, error) {
	l, err := s.Licenses().GetLicenseByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.License{}, ErrLicenseNotFound
	}
	return l, err
}
