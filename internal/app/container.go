package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/config"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/infrastructure/audit"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/infrastructure/auth"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/infrastructure/database"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/infrastructure/notifications"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/infrastructure/repositories"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo domain.UserRepository
	OtpRepo  domain.OtpRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Notifier    domain.OTPNotifier
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	Auditor     domain.AuditLogger
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	c.DB = gdb

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OtpRepo = repositories.NewOtpRepository(c.RedisClient)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	c.Auditor = audit.NewLogAuditor()

	c.Notifier, err = buildNotifier(cfg)
	if err != nil {
		return nil, err
	}

	c.OTPSvc = services.NewOTPService(c.OtpRepo, c.Notifier, services.OTPConfig{
		Length: cfg.OTPLength,
		TTL:    cfg.OTPTTL,
	})

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, c.Auditor, cfg.AccessTTL)

	return c, nil
}

// buildNotifier selects the OTP delivery channel from config.
func buildNotifier(cfg *config.Config) (domain.OTPNotifier, error) {
	switch cfg.NotifierChannel {
	case "email":
		return notifications.NewSMTPService(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom), nil
	case "sms":
		return notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom), nil
	default:
		return nil, fmt.Errorf("unknown notifier channel %q", cfg.NotifierChannel)
	}
}
