package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConditionFailed is returned by conditional updates whose guard did not
	// match any row (e.g. the record is no longer in the expected state).
	ErrConditionFailed = errors.New("store: condition failed")
)

// Store is the root data access interface. Concrete drivers implement this and
// expose sub-repositories so transactional work always goes through Tx.
type Store interface {
	Users() Users
	Licenses() Licenses
	Catalog() Catalog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn only the
	// tx argument may be used for data access.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during the credential step of login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. Duplicate username or email yields
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns every user ordered by creation (oldest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateRolePlan sets role, plan and entitlement token together and bumps
	// updated_at. A nil entitlement clears it.
	UpdateRolePlan(ctx context.Context, userID string, role domain.Role, plan domain.Plan, entitlement *string) error

	// SetOneTimeCode stores a pending code, replacing any previous one and
	// resetting the attempt counter.
	SetOneTimeCode(ctx context.Context, code domain.OneTimeCode) error

	// GetOneTimeCode returns the pending code, or ErrNotFound when none is set.
	GetOneTimeCode(ctx context.Context, userID string) (domain.OneTimeCode, error)

	// ConsumeOneTimeCode clears the pending code only if it still equals code
	// and has not expired at now. It returns ErrConditionFailed otherwise, so
	// at most one caller can consume a given code.
	ConsumeOneTimeCode(ctx context.Context, userID, code string, now time.Time) error

	// IncrementOneTimeCodeAttempts bumps the failed attempt counter and
	// returns the new value.
	IncrementOneTimeCodeAttempts(ctx context.Context, userID string) (int, error)

	// ClearOneTimeCode discards any pending code.
	ClearOneTimeCode(ctx context.Context, userID string) error

	// ClearExpiredOneTimeCodes discards every code expired at now (housekeeping).
	ClearExpiredOneTimeCodes(ctx context.Context, now time.Time) (int64, error)
}

type Licenses interface {
	// CreateLicense inserts a new license record.
	CreateLicense(ctx context.Context, l domain.License) error

	// GetLicenseByID fetches a license.
	GetLicenseByID(ctx context.Context, id string) (domain.License, error)

	// GetLatestLicenseForUser returns the most recently issued license owned
	// by userID.
	GetLatestLicenseForUser(ctx context.Context, userID string) (domain.License, error)

	// HasPendingLicense reports whether userID has a license awaiting approval.
	HasPendingLicense(ctx context.Context, userID string) (bool, error)

	// HasApprovedLicense reports whether userID holds an approved license
	// other than excludeID.
	HasApprovedLicense(ctx context.Context, userID, excludeID string) (bool, error)

	// ListLicenses returns every license, newest first.
	ListLicenses(ctx context.Context) ([]domain.License, error)

	// ApproveLicense moves a pending license to approved with the given
	// approver, instant and signature. Returns ErrConditionFailed when the
	// license is not pending.
	ApproveLicense(ctx context.Context, id, approvedBy string, approvedAt time.Time, signature string) error

	// RevokeLicense moves an approved license to revoked. Returns
	// ErrConditionFailed when the license is not approved.
	RevokeLicense(ctx context.Context, id string, revokedAt time.Time) error
}

type Catalog interface {
	// ListPlans returns the subscription plans ordered by price.
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)

	// ListFeatures returns every feature ordered by name.
	ListFeatures(ctx context.Context) ([]domain.Feature, error)
}
