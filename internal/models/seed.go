package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// SeedResult counts the rows Seed inserted; existing rows are left alone.
type SeedResult struct {
	Services  int
	Doctors   int
	Locations int
}

var defaultServices = []Service{
	{Name: "General Consultation", Description: "Routine check-up and primary care visit.", Price: 50},
	{Name: "Dental Checkup", Description: "Examination and cleaning.", Price: 80},
	{Name: "Eye Examination", Description: "Vision test and eye health assessment.", Price: 70},
	{Name: "Pediatric Consultation", Description: "Visit for children and adolescents.", Price: 60},
	{Name: "Cardiology Consultation", Description: "Heart health assessment with ECG.", Price: 120},
}

var defaultDoctors = []struct {
	Doctor
	Days []string
}{
	{Doctor{Name: "Dr. Sarah Johnson", Specialization: "General Practitioner", Location: "Downtown Clinic"}, []string{"Monday", "Wednesday", "Friday"}},
	{Doctor{Name: "Dr. Michael Chen", Specialization: "Dentist", Location: "Northside Dental"}, []string{"Tuesday", "Thursday"}},
	{Doctor{Name: "Dr. Emily Rodriguez", Specialization: "Ophthalmologist", Location: "Vision Center"}, []string{"Monday", "Tuesday", "Saturday"}},
	{Doctor{Name: "Dr. James Wilson", Specialization: "Pediatrician", Location: "Downtown Clinic"}, []string{"Wednesday", "Thursday", "Friday"}},
	{Doctor{Name: "Dr. Aisha Patel", Specialization: "Cardiologist", Location: "Heart Institute"}, []string{"Monday", "Thursday"}},
}

var defaultLocations = []Location{
	{Name: "Downtown Clinic", Address: "12 Main Street"},
	{Name: "Heart Institute", Address: "400 Cardio Avenue"},
	{Name: "Northside Dental", Address: "88 North Road"},
	{Name: "Vision Center", Address: "5 Lens Boulevard"},
}

// Seed inserts the reference catalog (services, doctors, locations) keyed by
// name, so running it twice is harmless.
func Seed(db *gorm.DB) (SeedResult, error) {
	var res SeedResult
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, s := range defaultServices {
			created, err := firstOrCreate(tx, &s, "name = ?", s.Name)
			if err != nil {
				return fmt.Errorf("seed service %q: %w", s.Name, err)
			}
			if created {
				res.Services++
			}
		}

		for _, d := range defaultDoctors {
			days, err := json.Marshal(d.Days)
			if err != nil {
				return err
			}
			doctor := d.Doctor
			doctor.AvailableDays = string(days)
			created, err := firstOrCreate(tx, &doctor, "name = ?", doctor.Name)
			if err != nil {
				return fmt.Errorf("seed doctor %q: %w", doctor.Name, err)
			}
			if created {
				res.Doctors++
			}
		}

		for _, l := range defaultLocations {
			created, err := firstOrCreate(tx, &l, "name = ?", l.Name)
			if err != nil {
				return fmt.Errorf("seed location %q: %w", l.Name, err)
			}
			if created {
				res.Locations++
			}
		}
		return nil
	})
	return res, err
}

func firstOrCreate(tx *gorm.DB, value any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(value).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.Create(value).Error; err != nil {
		return false, err
	}
	return true, nil
}
