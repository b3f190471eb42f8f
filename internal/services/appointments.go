package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medibook/internal/models"
)

// DefaultCancellationReason is recorded when the patient gives no reason.
const DefaultCancellationReason = "User cancelled"

// BookRequest carries a booking as submitted by a patient.
type BookRequest struct {
	PatientID       uint
	DoctorID        uint
	ServiceName     string
	AppointmentDate string
	Notes           string
}

// AppointmentService owns the appointment lifecycle: booking, cancellation,
// and the notifications both produce.
type AppointmentService struct {
	db     *gorm.DB
	notify emailNotifier
	log    *slog.Logger
}

// NewAppointmentService creates an AppointmentService. mailer may be nil.
func NewAppointmentService(db *gorm.DB, mailer Mailer, log *slog.Logger) *AppointmentService {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentService{
		db:     db,
		notify: emailNotifier{db: db, mailer: mailer, log: log, inflight: &sync.WaitGroup{}},
		log:    log,
	}
}

// Wait blocks until every email copy already handed off has been sent or
// has failed. serve calls it during shutdown.
func (s *AppointmentService) Wait() {
	s.notify.inflight.Wait()
}

// ParseAppointmentDate keeps only the calendar date of raw. It accepts a bare
// date or a date followed by a time part separated by 'T' or a space.
func ParseAppointmentDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	datePart := raw
	if i := strings.IndexAny(raw, "T "); i >= 0 {
		datePart = raw[:i]
	}
	d, err := time.Parse(models.DateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return d, nil
}

// Book creates a confirmed appointment and its notification in one
// transaction and returns the stored row.
func (s *AppointmentService) Book(ctx context.Context, req BookRequest) (*models.Appointment, error) {
	date, err := ParseAppointmentDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	var (
		appt    models.Appointment
		message string
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.Where("name = ?", req.ServiceName).First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %q", ErrServiceNotFound, req.ServiceName)
			}
			return fmt.Errorf("lookup service: %w", err)
		}

		var doctor models.Doctor
		if err := tx.Select("id", "name").First(&doctor, req.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrDoctorNotFound, req.DoctorID)
			}
			return fmt.Errorf("lookup doctor: %w", err)
		}

		created := models.Appointment{
			PatientID:       req.PatientID,
			DoctorID:        doctor.ID,
			ServiceID:       service.ID,
			AppointmentDate: datatypes.Date(date),
			Notes:           req.Notes,
			Status:          models.StatusConfirmed,
		}
		if err := tx.Omit(clause.Associations).Create(&created).Error; err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}

		message = BookingMessage(doctor.Name)
		if err := tx.Create(&models.Notification{UserID: req.PatientID, Message: message}).Error; err != nil {
			return fmt.Errorf("insert booking notification: %w", err)
		}

		if err := tx.First(&appt, created.ID).Error; err != nil {
			return fmt.Errorf("reload appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "appointment booked",
		slog.Uint64("appointment_id", uint64(appt.ID)),
		slog.Uint64("patient_id", uint64(appt.PatientID)),
		slog.Uint64("doctor_id", uint64(appt.DoctorID)))
	s.notify.deliver(ctx, req.PatientID, "Appointment confirmed", message)
	return &appt, nil
}

// Cancel moves an appointment owned by actingUserID to cancelled, writing the
// audit record and notification in the same transaction. An appointment can
// be cancelled only once.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, actingUserID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancellationReason
	}

	var message string
	var patientID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appt models.Appointment
		if err := tx.First(&appt, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("lookup appointment: %w", err)
		}
		if appt.PatientID != actingUserID {
			return ErrNotOwner
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status IN ?", appt.ID, []string{string(models.StatusPending), string(models.StatusConfirmed)}).
			Update("status", string(models.StatusCancelled))
		if res.Error != nil {
			return fmt.Errorf("update appointment status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCancelled
		}

		cancellation := models.Cancellation{
			AppointmentID:    appt.ID,
			Reason:           reason,
			CancellationDate: time.Now().UTC(),
		}
		if err := tx.Create(&cancellation).Error; err != nil {
			return fmt.Errorf("insert cancellation: %w", err)
		}

		message = CancellationMessage(appt.ID)
		patientID = appt.PatientID
		if err := tx.Create(&models.Notification{UserID: appt.PatientID, Message: message}).Error; err != nil {
			return fmt.Errorf("insert cancellation notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "appointment cancelled",
		slog.Uint64("appointment_id", uint64(appointmentID)),
		slog.String("reason", reason))
	s.notify.deliver(ctx, patientID, "Appointment cancelled", message)
	return nil
}

// ListForPatient returns the patient's appointments joined with service and
// doctor details, latest date first.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID uint) ([]models.AppointmentView, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, id DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	views := make([]models.AppointmentView, len(appointments))
	for i := range appointments {
		views[i] = appointments[i].View()
	}
	return views, nil
}
