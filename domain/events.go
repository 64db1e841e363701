package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Account lifecycle events
	UserRegisteredEvent    AuditEventType = "USER_REGISTERED"
	EmailVerifiedEvent     AuditEventType = "EMAIL_VERIFIED"
	EmailVerifyFailedEvent AuditEventType = "EMAIL_VERIFICATION_FAILED"
	OTPIssuedEvent         AuditEventType = "OTP_ISSUED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailedEvent  AuditEventType = "USER_LOGIN_FAILED"
	PasswordResetEvent    AuditEventType = "PASSWORD_RESET"
	PasswordForgotEvent   AuditEventType = "PASSWORD_FORGOT_REQUESTED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// AuditLogger defines operations for audit logging
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates an audit event stamped with the current time.
func NewAuditEvent(eventType AuditEventType, userID uint, email string, err error) *AuditEvent {
	ev := &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		Timestamp: time.Now().UTC(),
		Success:   err == nil,
	}
	if err != nil {
		ev.ErrorMsg = err.Error()
	}
	return ev
}
