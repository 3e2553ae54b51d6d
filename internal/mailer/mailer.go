// Package mailer delivers confirmation codes out-of-band.
package mailer

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer sends the one-time confirmation code to a freshly signed-up
// (or re-signed-up) account.
type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

// SMTPMailer delivers codes through a real SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendConfirmationCode(to, username, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your confirmation code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour confirmation code is: %s\n", username, code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation code: %w", err)
	}
	return nil
}

// LogMailer writes codes to the log instead of sending mail. Used in
// development when no SMTP host is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(to, username, code string) error {
	m.logger.Info("confirmation code issued",
		"to", to,
		"username", username,
		"code", code,
	)
	return nil
}
