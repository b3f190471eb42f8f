package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medibook/internal/models"
)

// Rating bounds accepted by Submit.
const (
	MinRating = 1
	MaxRating = 5
)

// SubmitReviewRequest is a patient's rating of a doctor.
type SubmitReviewRequest struct {
	PatientID uint
	DoctorID  uint
	Rating    int
	Comment   string
}

// ReviewService stores doctor reviews.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a ReviewService.
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Submit stores the patient's review of the doctor, replacing rating and
// comment when one already exists. The patient must hold at least one
// confirmed appointment with the doctor.
func (s *ReviewService) Submit(ctx context.Context, req SubmitReviewRequest) (*models.ReviewView, error) {
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, ErrInvalidRating
	}

	var stored models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var qualifying int64
		err := tx.Model(&models.Appointment{}).
			Where("patient_id = ? AND doctor_id = ? AND status = ?", req.PatientID, req.DoctorID, string(models.StatusConfirmed)).
			Count(&qualifying).Error
		if err != nil {
			return fmt.Errorf("count qualifying appointments: %w", err)
		}
		if qualifying == 0 {
			return ErrNoQualifyingAppointment
		}

		review := models.Review{
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		err = tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "patient_id"}, {Name: "doctor_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
			}).
			Create(&review).Error
		if err != nil {
			return fmt.Errorf("upsert review: %w", err)
		}

		return tx.Preload("Patient").
			Where("patient_id = ? AND doctor_id = ?", req.PatientID, req.DoctorID).
			First(&stored).Error
	})
	if err != nil {
		return nil, err
	}

	view := stored.View()
	return &view, nil
}

// ListForDoctor returns a doctor's reviews with reviewer names, newest first.
func (s *ReviewService) ListForDoctor(ctx context.Context, doctorID uint) ([]models.ReviewView, error) {
	return s.listWhere(ctx, "doctor_id = ?", doctorID)
}

// ListForDoctors returns reviews for every id in doctorIDs, newest first.
func (s *ReviewService) ListForDoctors(ctx context.Context, doctorIDs []uint) ([]models.ReviewView, error) {
	if len(doctorIDs) == 0 {
		return []models.ReviewView{}, nil
	}
	return s.listWhere(ctx, "doctor_id IN ?", doctorIDs)
}

func (s *ReviewService) listWhere(ctx context.Context, query string, args ...any) ([]models.ReviewView, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Where(query, args...).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	views := make([]models.ReviewView, len(reviews))
	for i := range reviews {
		views[i] = reviews[i].View()
	}
	return views, nil
}
