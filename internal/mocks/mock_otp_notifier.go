package mocks

import (
	"sync"
	"time"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// SentOTP records one delivery attempt
type SentOTP struct {
	User *domain.User
	Code string
	TTL  time.Duration
}

// MockOTPNotifier implements domain.OTPNotifier for testing
type MockOTPNotifier struct {
	SendOTPFunc func(user *domain.User, code string, ttl time.Duration) error

	mu   sync.Mutex
	sent []SentOTP
}

// NewMockOTPNotifier creates a new MockOTPNotifier with default behaviors
func NewMockOTPNotifier() *MockOTPNotifier {
	return &MockOTPNotifier{}
}

// SendOTP records the delivery and succeeds unless overridden
func (m *MockOTPNotifier) SendOTP(user *domain.User, code string, ttl time.Duration) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentOTP{User: user, Code: code, TTL: ttl})
	m.mu.Unlock()
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(user, code, ttl)
	}
	return nil
}

// Sent returns the recorded deliveries
func (m *MockOTPNotifier) Sent() []SentOTP {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentOTP, len(m.sent))
	copy(out, m.sent)
	return out
}
