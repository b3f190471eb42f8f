package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"medibook/internal/middleware"
	"medibook/internal/services"
	"medibook/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments *services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
// The patient is always the authenticated user.
type CreateAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	Service         string `json:"service" binding:"required"`
	Notes           string `json:"notes"`
}

// CreateAppointment books a confirmed appointment for the authenticated patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appt, err := h.Appointments.Book(c.Request.Context(), services.BookRequest{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		ServiceName:     req.Service,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidDate):
		utils.BadRequest(c, "Invalid appointment date, expected YYYY-MM-DD")
		return
	case errors.Is(err, services.ErrServiceNotFound):
		utils.NotFound(c, "Service not found")
		return
	case errors.Is(err, services.ErrDoctorNotFound):
		utils.NotFound(c, "Doctor not found")
		return
	default:
		utils.InternalServerError(c, "Failed to create appointment", err)
		return
	}

	utils.Created(c, appt.View())
}

// GetAppointmentsForUser lists the authenticated patient's appointments. The
// route's owner check guarantees the path user is the caller.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointments, err := h.Appointments.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments", err)
		return
	}
	utils.Success(c, appointments)
}

// CancelAppointmentRequest is the optional body of a cancellation.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CancelAppointment cancels one of the caller's own appointments.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointmentID, err := middleware.ParseID(c.Param("appointmentId"))
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID format")
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	err = h.Appointments.Cancel(c.Request.Context(), appointmentID, userID, req.Reason)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrAppointmentNotFound):
		utils.NotFound(c, "Appointment not found")
		return
	case errors.Is(err, services.ErrNotOwner):
		utils.Forbidden(c, "Unauthorized")
		return
	case errors.Is(err, services.ErrAlreadyCancelled):
		utils.BadRequest(c, "Appointment is already cancelled")
		return
	default:
		utils.InternalServerError(c, "Failed to cancel appointment", err)
		return
	}

	utils.Message(c, "Appointment cancelled successfully")
}
