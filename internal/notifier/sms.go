package notifier

import (
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/bkoseoglu/messageboard/internal/config"
)

// TwilioSender sends SMS messages through Twilio
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *slog.Logger
}

// NewTwilioSender creates a Twilio SMS sender, or nil when no account is
// configured so callers can skip SMS delivery entirely
func NewTwilioSender(cfg *config.Config, logger *slog.Logger) *TwilioSender {
	if cfg.TwilioAccountSID == "" {
		logger.Warn("⚠️ [SMS] No Twilio account configured, SMS delivery disabled")
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioSender{
		client: client,
		from:   cfg.TwilioFromNumber,
		logger: logger,
	}
}

// Send delivers a text message to the given phone number
func (s *TwilioSender) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		s.logger.Error("❌ [SMS] Failed to send SMS", "to", to, "error", err)
		return err
	}

	s.logger.Info("📱 [SMS] SMS sent", "to", to)
	return nil
}
