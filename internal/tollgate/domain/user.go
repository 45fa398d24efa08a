package domain

import (
	"strings"
	"time"
)

// Role is the authorization role of an identity.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RolePremium Role = "PREMIUM"
	RoleFree    Role = "FREE"
)

// Plan is the subscription plan of an identity.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

// NormalizeRole trims and upper-cases r. ok is false for unknown roles.
func NormalizeRole(r string) (Role, bool) {
	switch role := Role(strings.ToUpper(strings.TrimSpace(r))); role {
	case RoleAdmin, RolePremium, RoleFree:
		return role, true
	default:
		return role, false
	}
}

// NormalizePlan trims and upper-cases p. ok is false for unknown plans.
func NormalizePlan(p string) (Plan, bool) {
	switch plan := Plan(strings.ToUpper(strings.TrimSpace(p))); plan {
	case PlanFree, PlanPremium:
		return plan, true
	default:
		return plan, false
	}
}

type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string // argon2 encoded
	Role             Role
	Plan             Plan
	EntitlementToken *string // nullable, see pkg/entitlement
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAdmin reports whether u holds the ADMIN role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
