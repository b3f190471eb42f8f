package services

import "errors"

var (
	ErrServiceNotFound         = errors.New("service not found")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrNotOwner                = errors.New("not the owner of this resource")
	ErrAlreadyCancelled        = errors.New("appointment is already cancelled")
	ErrInvalidDate             = errors.New("invalid appointment date")
	ErrInvalidRating           = errors.New("rating must be between 1 and 5")
	ErrNoQualifyingAppointment = errors.New("no confirmed appointment with this doctor")
)
