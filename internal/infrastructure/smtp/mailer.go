// Package smtp sends plain-text notification emails over SMTP.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"
)

// Config carries SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends notifications through an SMTP relay.
type Mailer struct {
	cfg Config
}

// NewMailer constructs a mailer.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a plain-text message. The context deadline bounds the whole
// exchange; expiry surfaces as the context error.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp host is not configured")
	}
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	if from == "" {
		return fmt.Errorf("smtp from address is not configured")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" || m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
