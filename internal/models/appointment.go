package models

import (
	"time"

	"gorm.io/datatypes"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// DateLayout is the wire format of appointment dates.
const DateLayout = "2006-01-02"

// Cancellable reports whether an appointment in this status may still be cancelled.
func (s AppointmentStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment represents a booked visit. Only the calendar date is stored.
type Appointment struct {
	BaseModel
	PatientID       uint              `gorm:"not null;index"`
	DoctorID        uint              `gorm:"not null;index"`
	ServiceID       uint              `gorm:"not null;index"`
	AppointmentDate datatypes.Date    `gorm:"not null;index"`
	Notes           string            `gorm:"type:text"`
	Status          AppointmentStatus `gorm:"size:20;not null;default:'confirmed';index"`

	// Relations
	Patient User    `gorm:"foreignKey:PatientID"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID"`
	Service Service `gorm:"foreignKey:ServiceID"`
}

// AppointmentView is the JSON shape of an appointment. The joined fields are
// filled only when the relations were preloaded.
type AppointmentView struct {
	ID              uint              `json:"id"`
	PatientID       uint              `json:"patient_id"`
	DoctorID        uint              `json:"doctor_id"`
	ServiceID       uint              `json:"service_id"`
	AppointmentDate string            `json:"appointment_date"`
	Notes           string            `json:"notes"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	Service         string            `json:"service,omitempty"`
	DoctorName      string            `json:"doctor_name,omitempty"`
	Specialization  string            `json:"specialization,omitempty"`
}

// View converts the row into its response shape.
func (a *Appointment) View() AppointmentView {
	return AppointmentView{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		ServiceID:       a.ServiceID,
		AppointmentDate: time.Time(a.AppointmentDate).Format(DateLayout),
		Notes:           a.Notes,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		Service:         a.Service.Name,
		DoctorName:      a.Doctor.Name,
		Specialization:  a.Doctor.Specialization,
	}
}

// Cancellation is the audit record written when a patient cancels.
type Cancellation struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID    uint      `gorm:"not null;uniqueIndex" json:"appointment_id"`
	Reason           string    `gorm:"size:500" json:"reason"`
	CancellationDate time.Time `json:"cancellation_date"`
	CreatedAt        time.Time `json:"created_at"`
}
