package domain

import (
	"fmt"
	"time"
)

// Account roles
const (
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Account statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// FormatDisplayID builds the human-readable account code from a role and its
// per-role sequence number, e.g. "customer-000001".
func FormatDisplayID(role string, seq int64) string {
	return fmt.Sprintf("%s-%06d", role, seq)
}

// User represents a storefront account
type User struct {
	ID           uint
	DisplayID    string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	Avatar       string
	Address      string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the account has completed email verification.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// OtpChallenge is the single outstanding one-time code for a user. Email is a
// snapshot of the address the code was sent to at issuance time.
type OtpChallenge struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge is inert at instant now. A challenge
// whose ExpiresAt equals now exactly is already expired.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
