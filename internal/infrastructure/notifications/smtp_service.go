package notifications

import (
	"fmt"
	"log"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// SMTPService implements domain.OTPNotifier by sending one-time codes over
// SMTP (SendGrid, Mailgun, SES or any plain SMTP relay).
type SMTPService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService creates a new SMTP notifier. If host is empty the service
// runs in mock mode and logs codes instead of sending, which keeps local
// development working without a mail relay.
func NewSMTPService(host string, port int, username, password, from string) domain.OTPNotifier {
	svc := &SMTPService{from: from}
	if host != "" {
		svc.dialer = gomail.NewDialer(host, port, username, password)
	}
	return svc
}

// SendOTP implements domain.OTPNotifier
func (s *SMTPService) SendOTP(user *domain.User, code string, ttl time.Duration) error {
	if s.dialer == nil {
		log.Printf("[MOCK MAIL] To: %s, OTP: %s, valid for %d minutes", user.Email, code, int(ttl.Minutes()))
		return nil
	}

	minutes := int(ttl.Minutes())
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your OTP code is %s. It expires in %d minutes.", code, minutes))
	m.AddAlternative("text/html", fmt.Sprintf(
		"<p>Hello %s,</p><p>Your OTP code is <strong>%s</strong>.</p><p>The code expires in %d minutes. If you did not request this, ignore this email.</p>",
		user.Name, code, minutes))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email to %s: %w", user.Email, err)
	}
	return nil
}
