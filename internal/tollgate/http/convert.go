package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

// currentUser returns the identity resolved by the authn middleware.
func currentUser(r *http.Request) (domain.User, bool) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		return domain.User{}, false
	}
	u, ok := p.Record.(domain.User)
	return u, ok
}

func toUser(u domain.User) tollgatesdk.User {
	return tollgatesdk.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Plan:      string(u.Plan),
		CreatedAt: u.CreatedAt,
	}
}

func toLicense(l domain.License) tollgatesdk.License {
	out := tollgatesdk.License{
		ID:               l.ID,
		UserID:           l.UserID,
		PlanType:         string(l.PlanType),
		Status:           string(l.Status),
		IssuedAt:         l.IssuedAt,
		ApprovedAt:       l.ApprovedAt,
		EncodedLicenseID: l.EncodedLicenseID,
		RevokedAt:        l.RevokedAt,
	}
	if l.ApprovedBy != nil {
		out.ApprovedBy = *l.ApprovedBy
	}
	if l.Signature != nil {
		out.Signature = *l.Signature
	}
	return out
}

func toPlan(p domain.SubscriptionPlan) tollgatesdk.Plan {
	return tollgatesdk.Plan{Name: string(p.Name), Price: p.Price, Features: p.Features}
}

func toFeature(f domain.Feature) tollgatesdk.Feature {
	return tollgatesdk.Feature{Name: f.Name, AccessLevel: string(f.AccessLevel)}
}
