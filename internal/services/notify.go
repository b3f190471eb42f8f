package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gorm.io/gorm"

	"medibook/internal/models"
)

// Mailer is the optional email channel that mirrors in-app notifications.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, body string) error
}

const fallbackDoctorName = "the doctor"

// BookingMessage is the notification text for a confirmed booking.
func BookingMessage(doctorName string) string {
	if strings.TrimSpace(doctorName) == "" {
		doctorName = fallbackDoctorName
	}
	return fmt.Sprintf("Your appointment with %s is confirmed.", doctorName)
}

// CancellationMessage is the notification text for a cancelled appointment.
func CancellationMessage(appointmentID uint) string {
	return fmt.Sprintf("Your appointment #%d has been cancelled.", appointmentID)
}

// emailNotifier sends the email copy of a notification once the database
// transaction that created it has committed. Sending happens in the
// background, so SMTP latency never reaches the caller and delivery problems
// are only logged.
type emailNotifier struct {
	db       *gorm.DB
	mailer   Mailer
	log      *slog.Logger
	inflight *sync.WaitGroup
}

func (n emailNotifier) deliver(ctx context.Context, userID uint, subject, message string) {
	if n.mailer == nil || !n.mailer.Enabled() {
		return
	}

	var user models.User
	if err := n.db.WithContext(ctx).Select("id", "email").First(&user, userID).Error; err != nil {
		n.log.WarnContext(ctx, "notification email skipped: user lookup failed",
			slog.Uint64("user_id", uint64(userID)), slog.Any("error", err))
		return
	}

	// The copy outlives the request; a client disconnect must not drop it.
	sendCtx := context.WithoutCancel(ctx)
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		if err := n.mailer.Send(sendCtx, user.Email, subject, message); err != nil {
			n.log.WarnContext(sendCtx, "notification email failed",
				slog.Uint64("user_id", uint64(userID)), slog.Any("error", err))
			return
		}
		n.log.DebugContext(sendCtx, "notification email sent", slog.Uint64("user_id", uint64(userID)))
	}()
}
