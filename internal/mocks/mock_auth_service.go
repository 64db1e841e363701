package mocks

import (
	"context"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, name, email, password, role string) (*domain.User, error)
	VerifyEmailFunc    func(ctx context.Context, email, code string) (*domain.AuthResult, error)
	ResendOTPFunc      func(ctx context.Context, email string) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, email, code, newPassword string) error
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)

	// Calls counts invocations per operation, letting boundary tests assert
	// the engine was never reached.
	Calls map[string]int
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{Calls: make(map[string]int)}
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	m.Calls["Register"]++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password, role)
	}
	return &domain.User{ID: 1, Name: name, Email: email, Role: role, Status: domain.StatusInactive}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	m.Calls["VerifyEmail"]++
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockAuthService) ResendOTP(ctx context.Context, email string) error {
	m.Calls["ResendOTP"]++
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	m.Calls["ForgotPassword"]++
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	m.Calls["ResetPassword"]++
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	m.Calls["Login"]++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	m.Calls["Refresh"]++
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}
