package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// Resolve loads the current state of an identity. Authorization decisions
// are always made against this, never against claims carried in a token.
func (s *UserService) Resolve(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return normalizeUser(u), nil
}

// List returns every identity.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = normalizeUser(users[i])
	}
	return users, nil
}

// NormalizeIdentities rewrites stored roles and plans that are not in
// canonical form (e.g. "premium" or " Free "). Values that cannot be mapped
// are reset to FREE. It returns the number of identities changed.
func (s *UserService) NormalizeIdentities(ctx context.Context) (int, error) {
	l := slogx.FromContext(ctx)

	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, u := range users {
		n := normalizeUser(u)
		if n.Role == u.Role && n.Plan == u.Plan {
			continue
		}
		if err := s.Store.Users().UpdateRolePlan(ctx, u.ID, n.Role, n.Plan, u.EntitlementToken); err != nil {
			return changed, err
		}
		l.Info("normalized identity",
			slog.String("user_id", u.ID),
			slog.String("role", string(n.Role)),
			slog.String("plan", string(n.Plan)),
		)
		changed++
	}
	return changed, nil
}

// Promote grants ADMIN to userID. The plan and entitlement are left alone,
// so an admin on PREMIUM keeps premium content access.
func (s *UserService) Promote(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Resolve(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if u.IsAdmin() {
		return u, nil
	}
	if err := s.Store.Users().UpdateRolePlan(ctx, u.ID, domain.RoleAdmin, u.Plan, u.EntitlementToken); err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("identity promoted to admin", slog.String("user_id", u.ID))
	u.Role = domain.RoleAdmin
	return u, nil
}

func normalizeUser(u domain.User) domain.User {
	role, ok := domain.NormalizeRole(string(u.Role))
	if !ok {
		role = domain.RoleFree
	}
	plan, ok := domain.NormalizePlan(string(u.Plan))
	if !ok {
		plan = domain.PlanFree
	}
	u.Role = role
	u.Plan = plan
	return u
}
