package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
)

type licensesRepo struct {
	q querier
}

const licenseColumns = `id, user_id, plan_type, status, issued_at, approved_by, approved_at, signature, encoded_license_id, revoked_at`

func scanLicense(row interface{ Scan(...any) error }) (domain.License, error) {
	var (
		l                   domain.License
		plan, status        string
		issuedAt            int64
		approvedBy, sig     sql.NullString
		approvedAt, revoked sql.NullInt64
	)
	if err := row.Scan(&l.ID, &l.UserID, &plan, &status, &issuedAt, &approvedBy, &approvedAt, &sig, &l.EncodedLicenseID, &revoked); err != nil {
		return domain.License{}, err
	}
	l.PlanType = domain.Plan(plan)
	l.Status = domain.LicenseStatus(status)
	l.IssuedAt = fromMillis(issuedAt)
	l.ApprovedBy = mapNullStringPtr(approvedBy)
	l.ApprovedAt = mapNullMillis(approvedAt)
	l.Signature = mapNullStringPtr(sig)
	l.RevokedAt = mapNullMillis(revoked)
	return l, nil
}

func (r *licensesRepo) list(ctx context.Context, query string, args ...any) ([]domain.License, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.License
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *licensesRepo) CreateLicense(ctx context.Context, l domain.License) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO licenses (`+licenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, string(l.PlanType), string(l.Status), toMillis(l.IssuedAt),
		mapOptionalString(l.ApprovedBy), mapOptionalMillis(l.ApprovedAt), mapOptionalString(l.Signature),
		l.EncodedLicenseID, mapOptionalMillis(l.RevokedAt),
	)
	return mapConstraint(err)
}

func (r *licensesRepo) GetLicenseByID(ctx context.Context, id string) (domain.License, error) {
	l, err := scanLicense(r.q.QueryRowContext(ctx, `SELECT `+licenseColumns+` FROM licenses WHERE id = ?`, id))
	if err != nil {
		return domain.License{}, mapNotFound(err)
	}
	return l, nil
}

func (r *licensesRepo) GetLatestLicenseForUser(ctx context.Context, userID string) (domain.License, error) {
	l, err := scanLicense(r.q.QueryRowContext(ctx, `
		SELECT `+licenseColumns+` FROM licenses
		WHERE user_id = ?
		ORDER BY issued_at DESC, id DESC
		LIMIT 1`, userID))
	if err != nil {
		return domain.License{}, mapNotFound(err)
	}
	return l, nil
}

func (r *licensesRepo) HasPendingLicense(ctx context.Context, userID string) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM licenses WHERE user_id = ? AND status = ?`,
		userID, string(domain.LicensePending),
	).Scan(&n)
	return n > 0, err
}

func (r *licensesRepo) HasApprovedLicense(ctx context.Context, userID, excludeID string) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM licenses WHERE user_id = ? AND status = ? AND id <> ?`,
		userID, string(domain.LicenseApproved), excludeID,
	).Scan(&n)
	return n > 0, err
}

func (r *licensesRepo) ListLicenses(ctx context.Context) ([]domain.License, error) {
	return r.list(ctx, `SELECT `+licenseColumns+` FROM licenses ORDER BY issued_at DESC, id DESC`)
}

func (r *licensesRepo) ApproveLicense(
	ctx context.Context,
	id, approvedBy string,
	approvedAt time.Time,
	signature string,
) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE licenses SET status = ?, approved_by = ?, approved_at = ?, signature = ?
		WHERE id = ? AND status = ?`,
		string(domain.LicenseApproved), approvedBy, toMillis(approvedAt), signature,
		id, string(domain.LicensePending),
	))
}

func (r *licensesRepo) RevokeLicense(ctx context.Context, id string, revokedAt time.Time) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE licenses SET status = ?, revoked_at = ?
		WHERE id = ? AND status = ?`,
		string(domain.LicenseRevoked), toMillis(revokedAt),
		id, string(domain.LicenseApproved),
	))
}
