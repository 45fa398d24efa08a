package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, email, password_hash, role, plan, entitlement_token, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u                    domain.User
		role, plan           string
		entitlement          sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &plan, &entitlement, &createdAt, &updatedAt); err != nil {
		return domain.User{}, err
	}
	// Role and plan are returned as stored; normalization is the service's job.
	u.Role = domain.Role(role)
	u.Plan = domain.Plan(plan)
	u.EntitlementToken = mapNullStringPtr(entitlement)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := toMillis(time.Now())
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, plan, entitlement_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash,
		string(u.Role), string(u.Plan), mapOptionalString(u.EntitlementToken), now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) UpdateRolePlan(
	ctx context.Context,
	userID string,
	role domain.Role,
	plan domain.Plan,
	entitlement *string,
) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET role = ?, plan = ?, entitlement_token = ?, updated_at = ?
		WHERE id = ?`,
		string(role), string(plan), mapOptionalString(entitlement), toMillis(time.Now()), userID,
	)
	return notFoundIfNone(res, err)
}

func (r *usersRepo) SetOneTimeCode(ctx context.Context, code domain.OneTimeCode) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET otp_code = ?, otp_expires_at = ?, otp_attempts = 0
		WHERE id = ?`,
		code.Code, toMillis(code.ExpiresAt), code.UserID,
	)
	return notFoundIfNone(res, err)
}

func (r *usersRepo) GetOneTimeCode(ctx context.Context, userID string) (domain.OneTimeCode, error) {
	var (
		code      sql.NullString
		expiresAt sql.NullInt64
		attempts  int
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT otp_code, otp_expires_at, otp_attempts FROM users WHERE id = ?`, userID,
	).Scan(&code, &expiresAt, &attempts)
	if err != nil {
		return domain.OneTimeCode{}, mapNotFound(err)
	}
	if !code.Valid || !expiresAt.Valid {
		return domain.OneTimeCode{}, store.ErrNotFound
	}
	return domain.OneTimeCode{
		UserID:    userID,
		Code:      code.String,
		ExpiresAt: fromMillis(expiresAt.Int64),
		Attempts:  attempts,
	}, nil
}

func (r *usersRepo) ConsumeOneTimeCode(ctx context.Context, userID, code string, now time.Time) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE users SET otp_code = NULL, otp_expires_at = NULL, otp_attempts = 0
		WHERE id = ? AND otp_code = ? AND otp_expires_at > ?`,
		userID, code, toMillis(now),
	))
}

func (r *usersRepo) IncrementOneTimeCodeAttempts(ctx context.Context, userID string) (int, error) {
	var attempts int
	err := r.q.QueryRowContext(ctx, `
		UPDATE users SET otp_attempts = otp_attempts + 1
		WHERE id = ? AND otp_code IS NOT NULL
		RETURNING otp_attempts`,
		userID,
	).Scan(&attempts)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return attempts, nil
}

func (r *usersRepo) ClearOneTimeCode(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE users SET otp_code = NULL, otp_expires_at = NULL, otp_attempts = 0
		WHERE id = ?`,
		userID,
	)
	return err
}

func (r *usersRepo) ClearExpiredOneTimeCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET otp_code = NULL, otp_expires_at = NULL, otp_attempts = 0
		WHERE otp_code IS NOT NULL AND otp_expires_at <= ?`,
		toMillis(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// notFoundIfNone maps an UPDATE by primary key that matched nothing to
// ErrNotFound.
func notFoundIfNone(res sql.Result, err error) error {
	err = expectOne(res, err)
	if errors.Is(err, store.ErrConditionFailed) {
		return store.ErrNotFound
	}
	return err
}
