package models

import "time"

// Review is a patient's rating of a doctor. A patient holds at most one review
// per doctor; resubmitting overwrites it.
type Review struct {
	BaseModel
	PatientID uint   `gorm:"not null;uniqueIndex:idx_reviews_patient_doctor"`
	DoctorID  uint   `gorm:"not null;uniqueIndex:idx_reviews_patient_doctor;index"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`

	Patient User `gorm:"foreignKey:PatientID"`
}

// ReviewView is a review joined with the reviewer's name.
type ReviewView struct {
	ID          uint      `json:"id"`
	PatientID   uint      `json:"patient_id"`
	DoctorID    uint      `json:"doctor_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	PatientName string    `json:"patient_name"`
}

// View converts the row into its response shape; Patient must be preloaded
// for PatientName to be set.
func (r *Review) View() ReviewView {
	return ReviewView{
		ID:          r.ID,
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		PatientName: r.Patient.FullName,
	}
}
