package domain

import "errors"

// ErrUnknownRoleOrPlan is returned by ResolvePlanChange for inputs outside the
// decision table.
var ErrUnknownRoleOrPlan = errors.New("unknown role or plan")

// ResolvePlanChange is the single place where a plan change is translated into
// a role. Admins keep their role on any plan; everyone else takes the role
// named after the plan.
//
//	ADMIN   + FREE    -> ADMIN,   FREE
//	ADMIN   + PREMIUM -> ADMIN,   PREMIUM
//	PREMIUM + FREE    -> FREE,    FREE
//	PREMIUM + PREMIUM -> PREMIUM, PREMIUM
//	FREE    + FREE    -> FREE,    FREE
//	FREE    + PREMIUM -> PREMIUM, PREMIUM
func ResolvePlanChange(current Role, requested Plan) (Role, Plan, error) {
	switch requested {
	case PlanFree, PlanPremium:
	default:
		return "", "", ErrUnknownRoleOrPlan
	}

	switch current {
	case RoleAdmin:
		return RoleAdmin, requested, nil
	case RolePremium, RoleFree:
		if requested == PlanPremium {
			return RolePremium, PlanPremium, nil
		}
		return RoleFree, PlanFree, nil
	default:
		return "", "", ErrUnknownRoleOrPlan
	}
}

// SubscriptionPlan is a purchasable plan and the features it unlocks.
type SubscriptionPlan struct {
	Name     Plan
	Price    int
	Features []string
}

// AccessLevel gates a Feature.
type AccessLevel string

const (
	AccessAll         AccessLevel = "ALL"
	AccessPremiumOnly AccessLevel = "PREMIUM_ONLY"
	AccessAdminOnly   AccessLevel = "ADMIN_ONLY"
)

// Feature is a named capability with an access level.
type Feature struct {
	Name        string
	AccessLevel AccessLevel
}

// Allows reports whether an identity with role and plan may use the feature.
func (l AccessLevel) Allows(role Role, plan Plan) bool {
	switch l {
	case AccessAll:
		return true
	case AccessPremiumOnly:
		return role == RoleAdmin || plan == PlanPremium
	case AccessAdminOnly:
		return role == RoleAdmin
	default:
		return false
	}
}
