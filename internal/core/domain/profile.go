package domain

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile holds the patient-specific data captured at registration.
type PatientProfile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// DoctorProfile holds the clinician-specific data captured at registration.
type DoctorProfile struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	LicenseNumber   string    `json:"license_number"`
	ExperienceYears int       `json:"experience_years"`
	Specialty       string    `json:"specialty"`
	Bio             string    `json:"bio"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewPatientProfile(userID, document, phone string, birthDate time.Time) *PatientProfile {
	return &PatientProfile{
		ID:        uuid.NewString(),
		UserID:    userID,
		Document:  document,
		Phone:     phone,
		BirthDate: birthDate,
		CreatedAt: time.Now().UTC(),
	}
}

func NewDoctorProfile(userID, licenseNumber string, experienceYears int, specialty, bio string) *DoctorProfile {
	return &DoctorProfile{
		ID:              uuid.NewString(),
		UserID:          userID,
		LicenseNumber:   licenseNumber,
		ExperienceYears: experienceYears,
		Specialty:       specialty,
		Bio:             bio,
		CreatedAt:       time.Now().UTC(),
	}
}
