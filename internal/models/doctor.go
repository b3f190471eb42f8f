package models

import (
	"encoding/json"
	"time"
)

// Doctor is a bookable practitioner from the directory.
type Doctor struct {
	BaseModel
	Name           string `gorm:"size:255;not null;index"`
	Specialization string `gorm:"size:255"`
	Location       string `gorm:"size:255"`
	ImageURL       string `gorm:"size:1024"`
	// AvailableDays holds a JSON array of weekday names. It is kept as text
	// so a malformed value still loads and can be reported per doctor.
	AvailableDays string `gorm:"type:text"`
}

// DoctorView is the directory entry returned by the API.
type DoctorView struct {
	ID             uint         `json:"id"`
	Name           string       `json:"name"`
	Specialization string       `json:"specialization"`
	Location       string       `json:"location"`
	ImageURL       string       `json:"image_url"`
	AvailableDays  []string     `json:"available_days"`
	CreatedAt      time.Time    `json:"created_at"`
	Reviews        []ReviewView `json:"reviews"`
}

// ParseAvailableDays decodes the stored weekday list. A nil slice is never
// returned so the field always serializes as an array.
func (d *Doctor) ParseAvailableDays() ([]string, error) {
	days := []string{}
	if len(d.AvailableDays) == 0 {
		return days, nil
	}
	if err := json.Unmarshal([]byte(d.AvailableDays), &days); err != nil {
		return []string{}, err
	}
	if days == nil {
		days = []string{}
	}
	return days, nil
}

// View builds the response shape; availableDays and reviews are supplied by
// the caller because both need lookups or error handling.
func (d *Doctor) View(availableDays []string, reviews []ReviewView) DoctorView {
	if reviews == nil {
		reviews = []ReviewView{}
	}
	return DoctorView{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Location:       d.Location,
		ImageURL:       d.ImageURL,
		AvailableDays:  availableDays,
		CreatedAt:      d.CreatedAt,
		Reviews:        reviews,
	}
}
