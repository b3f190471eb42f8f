package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		LogLevel:     gormlogger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	first, err := Seed(db)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Services: 5, Doctors: 5, Locations: 4}, first)

	second, err := Seed(db)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, second)

	var doctors int64
	require.NoError(t, db.Model(&Doctor{}).Count(&doctors).Error)
	assert.EqualValues(t, 5, doctors)

	var sarah Doctor
	require.NoError(t, db.Where("name = ?", "Dr. Sarah Johnson").First(&sarah).Error)
	days, err := sarah.ParseAvailableDays()
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Wednesday", "Friday"}, days)
}

func TestDialectorForUnknownDriver(t *testing.T) {
	_, err := OpenDB(DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestParseAvailableDays(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"unset", "", []string{}, false},
		{"list", `["Tuesday","Thursday"]`, []string{"Tuesday", "Thursday"}, false},
		{"json null", `null`, []string{}, false},
		{"malformed", `Monday, Friday`, []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Doctor{AvailableDays: tt.raw}
			got, err := d.ParseAvailableDays()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDoctorViewAlwaysHasReviewArray(t *testing.T) {
	d := Doctor{Name: "Dr. Who"}
	out, err := json.Marshal(d.View([]string{}, nil))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"reviews":[]`)
	assert.Contains(t, string(out), `"available_days":[]`)
}

func TestUserPasswordAndSanitize(t *testing.T) {
	u := User{FullName: "Jane Doe", Email: "jane@example.com", Phone: "+16502530000"}
	require.NoError(t, u.SetPassword("hunter22"))
	assert.NotEqual(t, "hunter22", u.Password)
	assert.True(t, u.CheckPassword("hunter22"))
	assert.False(t, u.CheckPassword("hunter23"))

	out, err := json.Marshal(u.Sanitize())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "password")
	assert.NotContains(t, string(out), u.Password)
	assert.Contains(t, string(out), `"full_name":"Jane Doe"`)

	summary := u.Summary()
	assert.Equal(t, "jane@example.com", summary.Email)
	assert.Equal(t, "Jane Doe", summary.FullName)
}

func TestAppointmentStatusCancellable(t *testing.T) {
	assert.True(t, StatusPending.Cancellable())
	assert.True(t, StatusConfirmed.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
}

func TestAppointmentViewFormatsDate(t *testing.T) {
	a := Appointment{
		AppointmentDate: datatypes.Date(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		Status:          StatusConfirmed,
		Service:         Service{Name: "General Consultation"},
		Doctor:          Doctor{Name: "Dr. Sarah Johnson", Specialization: "General Practitioner"},
	}
	v := a.View()
	assert.Equal(t, "2025-03-01", v.AppointmentDate)
	assert.Equal(t, "General Consultation", v.Service)
	assert.Equal(t, "Dr. Sarah Johnson", v.DoctorName)
	assert.Equal(t, "General Practitioner", v.Specialization)
}
