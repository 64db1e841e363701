package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// OTPServiceImpl implements domain.OTPService
type OTPServiceImpl struct {
	otpRepo  domain.OtpRepository
	notifier domain.OTPNotifier
	config   OTPConfig
	now      func() time.Time
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OtpRepository, notifier domain.OTPNotifier, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:  otpRepo,
		notifier: notifier,
		config:   config,
		now:      time.Now,
	}
}

// Issue implements domain.OTPService. A fresh code replaces any outstanding
// challenge for the user, so the previous code is invalid the moment a new
// one is requested. Delivery failure fails the whole issuance and removes
// the stored challenge; a retry regenerates everything.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User) (*domain.OtpChallenge, error) {
	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	challenge := &domain.OtpChallenge{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: s.now().Add(s.config.TTL),
	}

	if err := s.otpRepo.Upsert(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	if err := s.notifier.SendOTP(user, code, s.config.TTL); err != nil {
		// Do not leave a deliverable code behind that the user never saw
		_ = s.otpRepo.DeleteByUser(ctx, user.ID)
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return challenge, nil
}

// Confirm implements domain.OTPService. Code equality is checked before
// expiry, so a wrong code on an expired challenge reports ErrOTPInvalid.
// A confirmed challenge is consumed and cannot be replayed.
func (s *OTPServiceImpl) Confirm(ctx context.Context, userID uint, code string) error {
	challenge, err := s.otpRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	if challenge.Code != code {
		return domain.ErrOTPInvalid
	}

	if challenge.Expired(s.now()) {
		return domain.ErrOTPExpired
	}

	if err := s.otpRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to consume OTP challenge: %w", err)
	}

	return nil
}

// generateCode produces a uniformly random decimal code, each digit drawn
// independently from crypto/rand.
func (s *OTPServiceImpl) generateCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
