package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"medibook/internal/config"
)

// ErrDisabled is returned by Send when email delivery is switched off.
var ErrDisabled = errors.New("mailer disabled")

const sendTimeout = 15 * time.Second

// Sender delivers an already-built message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends plain-text notification emails over SMTP.
type Mailer struct {
	enabled bool
	from    string
	sender  Sender
}

// New creates a Mailer from configuration.
func New(cfg config.MailerConfig) *Mailer {
	return &Mailer{
		enabled: cfg.Enabled,
		from:    cfg.DefaultFrom,
		sender:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NewWithSender creates an enabled Mailer that hands messages to sender.
func NewWithSender(from string, sender Sender) *Mailer {
	return &Mailer{enabled: true, from: from, sender: sender}
}

// Enabled reports whether Send will attempt delivery.
func (m *Mailer) Enabled() bool {
	return m != nil && m.enabled
}

// Send delivers one message, giving up when ctx is done or after the
// send timeout, whichever comes first.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return ErrDisabled
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- m.sender.DialAndSend(msg)
	}()

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
