package mocks

import (
	"context"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc   func(ctx context.Context, user *domain.User) (*domain.OtpChallenge, error)
	ConfirmFunc func(ctx context.Context, userID uint, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue issues a challenge
func (m *MockOTPService) Issue(ctx context.Context, user *domain.User) (*domain.OtpChallenge, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user)
	}
	return &domain.OtpChallenge{UserID: user.ID, Email: user.Email, Code: "123456"}, nil
}

// Confirm confirms a code
func (m *MockOTPService) Confirm(ctx context.Context, userID uint, code string) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, userID, code)
	}
	return nil
}
