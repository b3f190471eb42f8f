package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"medibook/internal/config"
)

type recordingSender struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if s.block != nil {
		<-s.block
	}
	s.sent = append(s.sent, m...)
	return s.err
}

func TestSendBuildsMessage(t *testing.T) {
	sender := &recordingSender{}
	m := NewWithSender("clinic@example.com", sender)

	err := m.Send(context.Background(), "jane@example.com", "Appointment confirmed", "See you soon.")
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"clinic@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"jane@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Appointment confirmed"}, msg.GetHeader("Subject"))
}

func TestSendDisabled(t *testing.T) {
	m := New(config.MailerConfig{Enabled: false, Host: "localhost", Port: 25})
	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send(context.Background(), "a@b.co", "s", "b"), ErrDisabled)

	var nilMailer *Mailer
	assert.False(t, nilMailer.Enabled())
}

func TestSendWrapsSenderError(t *testing.T) {
	cause := errors.New("535 authentication failed")
	m := NewWithSender("clinic@example.com", &recordingSender{err: cause})

	err := m.Send(context.Background(), "jane@example.com", "s", "b")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "jane@example.com")
}

func TestSendHonorsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	m := NewWithSender("clinic@example.com", &recordingSender{block: block})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Send(ctx, "jane@example.com", "s", "b")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
