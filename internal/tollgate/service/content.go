package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/metrics"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/entitlement"
	"github.com/aussiebroadwan/tollgate/pkg/sessionkeys"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// PremiumCatalog is the content served to entitled identities.
var PremiumCatalog = domain.PremiumContent{
	Message: "Welcome to the Premium Content!",
	Content: []domain.ContentItem{
		{ID: 1, Title: "Exclusive Market Analysis", Body: "The market is trending upwards due to..."},
		{ID: 2, Title: "Advanced Security Reports", Body: "New vulnerabilities found in..."},
		{ID: 3, Title: "Priority Support Channel", Body: "Contact us at vip@support.com"},
	},
}

type ContentService struct {
	Keys    *sessionkeys.Store
	Metrics *metrics.Metrics
}

// Premium returns the premium catalog for u, sealed under u's session key
// when one exists. u must be on the PREMIUM plan and hold a matching
// entitlement token.
func (s *ContentService) Premium(ctx context.Context, u domain.User) (domain.Envelope, error) {
	if u.Plan != domain.PlanPremium {
		return domain.Envelope{}, ErrForbidden
	}
	if err := checkEntitlement(u); err != nil {
		slogx.FromContext(ctx).Info("entitlement rejected",
			slog.String("user_id", u.ID), slog.String("reason", err.Error()))
		return domain.Envelope{}, ErrNotEntitled
	}
	return s.Deliver(ctx, u.ID, PremiumCatalog)
}

// Deliver wraps payload for identity. Without a session key the payload is
// returned in the clear, explicitly marked Encrypted=false.
func (s *ContentService) Deliver(ctx context.Context, identity string, payload any) (domain.Envelope, error) {
	l := slogx.FromContext(ctx).With(slog.String("user_id", identity))

	key, ok := s.Keys.Get(identity)
	if !ok {
		l.Warn("no session key, sending content unencrypted")
		s.Metrics.ContentDelivered(false)
		return domain.Envelope{Encrypted: false, Plain: payload}, nil
	}
	defer clear(key)

	sealed, err := cryptox.Seal(payload, key)
	if err != nil {
		return domain.Envelope{}, err
	}

	s.Metrics.ContentDelivered(true)
	l.Debug("content sealed")
	return domain.Envelope{Encrypted: true, Sealed: &sealed}, nil
}

func checkEntitlement(u domain.User) error {
	if u.EntitlementToken == nil || *u.EntitlementToken == "" {
		return errors.New("no entitlement")
	}
	_, err := entitlement.Check(*u.EntitlementToken, u.ID, entitlement.FeaturePremiumContent, string(domain.PlanPremium))
	return err
}
