package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// AuthServiceImpl implements domain.AuthService. It orchestrates the
// credential lifecycle: register, verify, resend, forgot/reset password,
// login and token refresh.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	auditor     domain.AuditLogger
	accessTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	auditor domain.AuditLogger,
	accessTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		auditor:     auditor,
		accessTTL:   accessTTL,
	}
}

// Register implements domain.AuthService. Self-registered accounts start
// inactive and must verify their email before they can log in.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	seq, err := s.userRepo.NextSequence(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to assign display id: %w", err)
	}

	user := &domain.User{
		DisplayID:    domain.FormatDisplayID(role, seq),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		Status:       domain.StatusInactive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Delivery failure fails the whole registration; the account row stays
	// inactive and a retry reissues the challenge.
	if _, err := s.otpSvc.Issue(ctx, user); err != nil {
		s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.OTPIssuedEvent, user.ID, email, err))
		return nil, err
	}

	s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID, email, nil))
	return user, nil
}

// VerifyEmail implements domain.AuthService. A correct, unexpired code
// activates the account, consumes the challenge and issues a token pair.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.IsActive() {
		return nil, domain.ErrAlreadyActive
	}

	if err := s.otpSvc.Confirm(ctx, user.ID, code); err != nil {
		s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.EmailVerifyFailedEvent, user.ID, email, err))
		return nil, err
	}

	user.Status = domain.StatusActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}

	s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.EmailVerifiedEvent, user.ID, email, nil))
	return s.issueTokens(user)
}

// ResendOTP implements domain.AuthService. Only pending (inactive) accounts
// can ask for a new verification code; issuing one invalidates the previous.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.IsActive() {
		return domain.ErrAlreadyActive
	}

	if _, err := s.otpSvc.Issue(ctx, user); err != nil {
		return err
	}

	s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.OTPIssuedEvent, user.ID, email, nil))
	return nil
}

// ForgotPassword implements domain.AuthService. Inactive accounts must
// finish email verification first, not reset their password. Callers at the
// HTTP boundary collapse ErrUserNotFound and ErrUserInactive into a generic
// acknowledgement so account existence does not leak.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !user.IsActive() {
		return domain.ErrUserInactive
	}

	if _, err := s.otpSvc.Issue(ctx, user); err != nil {
		return err
	}

	s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordForgotEvent, user.ID, email, nil))
	return nil
}

// ResetPassword implements domain.AuthService. The new password always
// passes through the hasher before persistence.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !user.IsActive() {
		return domain.ErrUserInactive
	}

	if err := s.otpSvc.Confirm(ctx, user.ID, code); err != nil {
		s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, user.ID, email, err))
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, user.ID, email, nil))
	return nil
}

// Login implements domain.AuthService. Password verification happens before
// the activation check, mirroring the verification-gated account lifecycle.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailedEvent, 0, email, err))
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailedEvent, user.ID, email, domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}

	s.auditor.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID, email, nil))
	return s.issueTokens(user)
}

// Refresh implements domain.AuthService. A valid refresh token yields a new
// access token; the refresh token itself is returned unchanged (no rotation).
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// issueTokens mints a fresh token pair for the user.
func (s *AuthServiceImpl) issueTokens(user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
