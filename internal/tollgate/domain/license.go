package domain

import (
	"encoding/base64"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
)

// LicenseIDPrefix is prepended to the ULID of every license.
const LicenseIDPrefix = "LIC-"

// LicenseStatus is the lifecycle state of a license.
type LicenseStatus string

const (
	LicensePending  LicenseStatus = "pending"
	LicenseApproved LicenseStatus = "approved"
	LicenseRevoked  LicenseStatus = "revoked"
)

type License struct {
	ID               string
	UserID           string
	PlanType         Plan
	Status           LicenseStatus
	IssuedAt         time.Time
	ApprovedBy       *string
	ApprovedAt       *time.Time
	Signature        *string
	EncodedLicenseID string
	RevokedAt        *time.Time
}

// EncodeLicenseID returns the opaque token form of a license id.
func EncodeLicenseID(id string) string {
	return base64.StdEncoding.EncodeToString([]byte(id))
}

// Signed reports whether the license carries everything needed to verify its
// signature.
func (l *License) Signed() bool {
	return l.ApprovedBy != nil && l.ApprovedAt != nil && l.Signature != nil && *l.Signature != ""
}

// SigningFields returns the exact field set covered by the license signature.
// Callers must check Signed (or set the approval fields) first.
func (l *License) SigningFields() map[string]string {
	fields := map[string]string{
		"issuedAt":  cryptox.CanonicalTime(l.IssuedAt),
		"licenseId": l.ID,
		"planType":  string(l.PlanType),
		"userId":    l.UserID,
	}
	if l.ApprovedAt != nil {
		fields["approvedAt"] = cryptox.CanonicalTime(*l.ApprovedAt)
	}
	if l.ApprovedBy != nil {
		fields["approvedBy"] = *l.ApprovedBy
	}
	return fields
}

// LicenseVerification is the outcome of checking a license signature.
type LicenseVerification struct {
	Valid   bool
	Message string
	Status  LicenseStatus
}

// ApprovalResult describes the effect of approving a license on its owner.
type ApprovalResult struct {
	License     License
	RoleChanged bool
	Role        Role
	Plan        Plan
}
