// Package notifier delivers outbound emails and SMS messages. Senders are
// plain dependencies handed to the handlers that need them; nothing in here
// is a process-wide singleton.
package notifier

// EmailSender sends transactional emails for the auth flows
type EmailSender interface {
	SendResetPasswordEmail(to, token string) error
	SendVerificationEmail(to, token string) error
}

// SMSSender sends short notification texts
type SMSSender interface {
	Send(to, body string) error
}
