package notifications

import (
	"fmt"
	"log"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// TwilioService implements domain.OTPNotifier over SMS. It is the alternate
// delivery channel for accounts that registered a phone number.
type TwilioService struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioService creates a new Twilio notifier
func NewTwilioService(accountSID, authToken, fromNumber string) domain.OTPNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client:     client,
		fromNumber: fromNumber,
	}
}

// SendOTP implements domain.OTPNotifier
func (t *TwilioService) SendOTP(user *domain.User, code string, ttl time.Duration) error {
	if user.Phone == "" {
		return fmt.Errorf("user %d has no phone number on file", user.ID)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(ttl.Minutes()))

	// Without credentials, log instead of sending
	if t.fromNumber == "" {
		log.Printf("[MOCK SMS] To: %s, Message: %s", user.Phone, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return nil
}
