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
	"github.com/aussiebroadwan/tollgate/pkg/entitlement"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

type SubscriptionService struct {
	Store   store.Store
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (s *SubscriptionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Subscribe moves userID onto the requested plan through the role/plan
// decision table and refreshes the entitlement token accordingly.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, plan string) (domain.User, error) {
	requested, ok := domain.NormalizePlan(plan)
	if !ok {
		return domain.User{}, ErrInvalidPlan
	}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		out, err = applyPlan(ctx, tx, normalizeUser(u), requested, s.now())
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	s.Metrics.PlanChange(string(out.Plan))
	slogx.FromContext(ctx).Info("subscription changed",
		slog.String("user_id", out.ID),
		slog.String("plan", string(out.Plan)),
		slog.String("role", string(out.Role)),
	)
	return out, nil
}

// Plans lists the purchasable plans.
func (s *SubscriptionService) Plans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return s.Store.Catalog().ListPlans(ctx)
}

// Features lists the features u may use.
func (s *SubscriptionService) Features(ctx context.Context, u domain.User) ([]domain.Feature, error) {
	all, err := s.Store.Catalog().ListFeatures(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Feature, 0, len(all))
	for _, f := range all {
		if f.AccessLevel.Allows(u.Role, u.Plan) {
			out = append(out, f)
		}
	}
	return out, nil
}

// applyPlan is the only path by which plan changes write role and plan. PREMIUM mints a fresh
// entitlement token; FREE clears it.
func applyPlan(ctx context.Context, tx store.Store, u domain.User, plan domain.Plan, now time.Time) (domain.User, error) {
	role, plan, err := domain.ResolvePlanChange(u.Role, plan)
	if err != nil {
		return domain.User{}, ErrInvalidPlan
	}

	var token *string
	if plan == domain.PlanPremium {
		claim := entitlement.NewClaim(u.ID, entitlement.FeaturePremiumContent, string(plan), now)
		if err := claim.Validate(); err != nil {
			return domain.User{}, fmt.Errorf("failed to mint entitlement: %w", err)
		}
		t := entitlement.Encode(claim)
		token = &t
	}

	if err := tx.Users().UpdateRolePlan(ctx, u.ID, role, plan, token); err != nil {
		return domain.User{}, err
	}

	u.Role = role
	u.Plan = plan
	u.EntitlementToken = token
	return u, nil
}
