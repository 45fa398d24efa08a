package tollgatesdk

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error" example:"invalid_request"`
	ErrorDescription string `json:"error_description,omitempty" example:"request body is not valid JSON"`
}

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginResponse is returned after the credential step. The one-time code is
// delivered out of band.
type LoginResponse struct {
	UserID      string `json:"user_id" example:"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	OTPRequired bool   `json:"otp_required" example:"true"`
	Message     string `json:"message" example:"one-time code sent"`
}

type VerifyOTPRequest struct {
	UserID string `json:"user_id" example:"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	Code   string `json:"otp" example:"123456"`
}

// SessionResponse carries the bearer token to present in X-Auth-Token.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type User struct {
	ID        string    `json:"id" example:"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	Role      string    `json:"role" example:"FREE"`
	Plan      string    `json:"plan" example:"FREE"`
	CreatedAt time.Time `json:"created_at"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

// ============================================================================
// Crypto
// ============================================================================

type PublicKeyResponse struct {
	PublicKey string `json:"public_key" example:"-----BEGIN PUBLIC KEY-----\n..."`
}

// SessionKeyRequest carries a 32 byte AES key wrapped with RSA-OAEP/SHA-256
// under the service public key, base64 encoded.
type SessionKeyRequest struct {
	EncryptedKey string `json:"encrypted_key"`
}

type MessageResponse struct {
	Message string `json:"message" example:"session key established"`
}

// ============================================================================
// Content
// ============================================================================

// ContentEnvelope wraps every content response. When Encrypted is true Data
// holds a Sealed value; otherwise Data is the payload itself.
type ContentEnvelope struct {
	Encrypted bool            `json:"encrypted"`
	Data      json.RawMessage `json:"data" swaggertype:"object"`
}

// Sealed is an AES-256-CBC ciphertext and its IV, both hex.
type Sealed = cryptox.Sealed

type ContentItem struct {
	ID    int    `json:"id" example:"1"`
	Title string `json:"title" example:"Exclusive Market Analysis"`
	Body  string `json:"body" example:"The market is trending upwards due to..."`
}

type PremiumContent struct {
	Message string        `json:"msg" example:"Welcome to the Premium Content!"`
	Content []ContentItem `json:"content"`
}

// ============================================================================
// Subscriptions
// ============================================================================

type Plan struct {
	Name     string   `json:"name" example:"PREMIUM"`
	Price    int      `json:"price" example:"20"`
	Features []string `json:"features"`
}

type PlansResponse struct {
	Plans []Plan `json:"plans"`
}

type SubscribeRequest struct {
	Plan string `json:"plan" example:"PREMIUM"`
}

type Feature struct {
	Name        string `json:"name" example:"Premium Analytics"`
	AccessLevel string `json:"access_level" example:"PREMIUM_ONLY"`
}

type FeaturesResponse struct {
	Features []Feature `json:"features"`
}

// ============================================================================
// Licenses
// ============================================================================

type License struct {
	ID               string     `json:"license_id" example:"LIC-01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	UserID           string     `json:"user_id"`
	PlanType         string     `json:"plan_type" example:"PREMIUM"`
	Status           string     `json:"status" example:"pending"`
	IssuedAt         time.Time  `json:"issued_at"`
	ApprovedBy       string     `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	Signature        string     `json:"signature,omitempty"`
	EncodedLicenseID string     `json:"encoded_license_id"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
}

type LicensesResponse struct {
	Licenses []License `json:"licenses"`
}

type ApproveLicenseResponse struct {
	License     License `json:"license"`
	RoleChanged bool    `json:"role_changed"`
	Role        string  `json:"role" example:"PREMIUM"`
	Plan        string  `json:"plan" example:"PREMIUM"`
}

type VerifyLicenseResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message" example:"License integrity verified"`
	Status  string `json:"status" example:"approved"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database     string `json:"database"`
	KeyAuthority string `json:"key_authority"`
}
