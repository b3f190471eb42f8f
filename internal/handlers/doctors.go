package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"medibook/internal/middleware"
	"medibook/internal/models"
	"medibook/internal/services"
	"medibook/internal/storage"
	"medibook/internal/utils"
)

// ImageResolver turns a stored image object key into a URL clients can load.
type ImageResolver interface {
	ImageURL(ctx context.Context, key string) (string, error)
}

// DoctorHandler serves the public doctor directory.
type DoctorHandler struct {
	DB      *gorm.DB
	Reviews *services.ReviewService
	Images  ImageResolver
	Log     *slog.Logger
}

// NewDoctorHandler creates a new DoctorHandler. images may be nil, in which
// case image_url values are returned as stored.
func NewDoctorHandler(db *gorm.DB, reviews *services.ReviewService, images ImageResolver, log *slog.Logger) *DoctorHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DoctorHandler{DB: db, Reviews: reviews, Images: images, Log: log}
}

// ListDoctors returns every doctor ordered by name, each with its reviews.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	ctx := c.Request.Context()

	var doctors []models.Doctor
	if err := h.DB.WithContext(ctx).Order("name").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors", err)
		return
	}

	ids := lo.Map(doctors, func(d models.Doctor, _ int) uint { return d.ID })
	reviews, err := h.Reviews.ListForDoctors(ctx, ids)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors", err)
		return
	}
	byDoctor := lo.GroupBy(reviews, func(r models.ReviewView) uint { return r.DoctorID })

	views := lo.Map(doctors, func(d models.Doctor, _ int) models.DoctorView {
		return h.view(ctx, &d, byDoctor[d.ID])
	})
	utils.Success(c, views)
}

// GetDoctor returns one doctor with its reviews.
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	ctx := c.Request.Context()

	doctorID, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	var doctor models.Doctor
	if err := h.DB.WithContext(ctx).First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch doctor details", err)
		}
		return
	}

	reviews, err := h.Reviews.ListForDoctor(ctx, doctor.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctor details", err)
		return
	}

	utils.Success(c, h.view(ctx, &doctor, reviews))
}

func (h *DoctorHandler) view(ctx context.Context, d *models.Doctor, reviews []models.ReviewView) models.DoctorView {
	days, err := d.ParseAvailableDays()
	if err != nil {
		h.Log.WarnContext(ctx, "malformed available_days, returning empty list",
			slog.Uint64("doctor_id", uint64(d.ID)), slog.Any("error", err))
	}

	v := d.View(days, reviews)
	if h.Images != nil && storage.IsObjectKey(d.ImageURL) {
		url, err := h.Images.ImageURL(ctx, d.ImageURL)
		if err != nil {
			h.Log.WarnContext(ctx, "doctor image presign failed",
				slog.Uint64("doctor_id", uint64(d.ID)), slog.Any("error", err))
		} else {
			v.ImageURL = url
		}
	}
	return v
}
