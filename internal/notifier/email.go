package notifier

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/bkoseoglu/messageboard/internal/config"
)

// Mailer sends transactional emails over SMTP
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
	logger      *slog.Logger
}

// NewMailer creates a new SMTP mailer instance
func NewMailer(cfg *config.Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		dialer:      gomail.NewDialer(cfg.SMTPHost, int(cfg.SMTPPort), cfg.SMTPUser, cfg.SMTPPassword),
		from:        cfg.EmailFrom,
		frontendURL: cfg.FrontendURL,
		logger:      logger,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("❌ [Mailer] Failed to send email", "to", to, "subject", subject, "error", err)
		return err
	}

	m.logger.Info("📧 [Mailer] Email sent", "to", to, "subject", subject)
	return nil
}

// SendResetPasswordEmail mails the reset link carrying the reset token
func (m *Mailer) SendResetPasswordEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`Dear user,
To reset your password, click on this link: %s
If you did not request any password resets, then ignore this email.`, resetURL)

	return m.send(to, "Reset password", body)
}

// SendVerificationEmail mails the verification link carrying the verify token
func (m *Mailer) SendVerificationEmail(to, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`Dear user,
To verify your email, click on this link: %s
If you did not create an account, then ignore this email.`, verifyURL)

	return m.send(to, "Email Verification", body)
}
