package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	// NextSequence atomically advances and returns the per-role display-id
	// counter. Two concurrent calls for the same role never observe the
	// same value.
	NextSequence(ctx context.Context, role string) (int64, error)
}

// OtpRepository defines challenge data access operations. A user holds at
// most one challenge; Upsert replaces any prior one for the same user.
type OtpRepository interface {
	Upsert(ctx context.Context, challenge *OtpChallenge) error
	FindByUser(ctx context.Context, userID uint) (*OtpChallenge, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

// AuthService defines the authentication flows
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*User, error)
	VerifyEmail(ctx context.Context, email, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

// OTPService issues and confirms one-time codes
type OTPService interface {
	// Issue generates a fresh code for the user, replaces any outstanding
	// challenge and delivers the code through the notifier.
	Issue(ctx context.Context, user *User) (*OtpChallenge, error)
	// Confirm checks the submitted code against the outstanding challenge
	// and consumes it on success. Code equality is checked before expiry.
	Confirm(ctx context.Context, userID uint, code string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string) (string, error)
	GenerateRefreshToken(userID uint) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// OTPNotifier delivers a one-time code to a user. Implementations pick the
// destination (email address or phone number) from the user record. A failed
// delivery must return an error, never fail silently.
type OTPNotifier interface {
	SendOTP(user *User, code string, ttl time.Duration) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
