package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"medibook/internal/middleware"
	"medibook/internal/services"
	"medibook/internal/utils"
)

// ReviewHandler handles doctor reviews.
type ReviewHandler struct {
	Reviews *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

// SubmitReviewRequest represents the request body for rating a doctor.
type SubmitReviewRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// SubmitReview creates or replaces the caller's review of a doctor.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	review, err := h.Reviews.Submit(c.Request.Context(), services.SubmitReviewRequest{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoQualifyingAppointment):
		utils.BadRequest(c, "You can only review doctors you have had appointments with")
		return
	case errors.Is(err, services.ErrInvalidRating):
		utils.BadRequest(c, "Rating must be between 1 and 5")
		return
	default:
		utils.InternalServerError(c, "Failed to submit review", err)
		return
	}

	utils.Created(c, review)
}

// GetDoctorReviews lists a doctor's reviews, newest first. An unknown doctor
// has no reviews.
func (h *ReviewHandler) GetDoctorReviews(c *gin.Context) {
	doctorID, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID format")
		return
	}

	reviews, err := h.Reviews.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch reviews", err)
		return
	}
	utils.Success(c, reviews)
}
