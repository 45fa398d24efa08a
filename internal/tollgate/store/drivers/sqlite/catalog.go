package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
)

type catalogRepo struct {
	q querier
}

func (r *catalogRepo) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT name, price, features FROM subscription_plans ORDER BY price, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SubscriptionPlan
	for rows.Next() {
		var (
			p        domain.SubscriptionPlan
			name     string
			features string
		)
		if err := rows.Scan(&name, &p.Price, &features); err != nil {
			return nil, err
		}
		p.Name = domain.Plan(name)
		// features is a JSON array of names.
		if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
			return nil, fmt.Errorf("plan %s: decode features: %w", name, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *catalogRepo) ListFeatures(ctx context.Context) ([]domain.Feature, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT name, access_level FROM features ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Feature
	for rows.Next() {
		var f domain.Feature
		var level string
		if err := rows.Scan(&f.Name, &level); err != nil {
			return nil, err
		}
		f.AccessLevel = domain.AccessLevel(level)
		out = append(out, f)
	}
	return out, rows.Err()
}
