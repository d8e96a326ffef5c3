package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/identity-service/internal/core/domain"
)

const (
	patientsCollection = "patient_profiles"
	doctorsCollection  = "doctor_profiles"
)

// ProfileRepository implements the ProfileDirectory port on MongoDB.
type ProfileRepository struct {
	patients *mongo.Collection
	doctors  *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		patients: db.Collection(patientsCollection),
		doctors:  db.Collection(doctorsCollection),
	}
}

type mongoPatient struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	Document  string `bson:"document"`
	Phone     string `bson:"phone"`
	BirthDate int64  `bson:"birth_date"`
	CreatedAt int64  `bson:"created_at"`
}

type mongoDoctor struct {
	ID              string `bson:"_id"`
	UserID          string `bson:"user_id"`
	LicenseNumber   string `bson:"license_number"`
	ExperienceYears int    `bson:"experience_years"`
	Specialty       string `bson:"specialty"`
	Bio             string `bson:"bio"`
	CreatedAt       int64  `bson:"created_at"`
}

func (r *ProfileRepository) SavePatient(ctx context.Context, p *domain.PatientProfile) error {
	doc := mongoPatient{
		ID:        p.ID,
		UserID:    p.UserID,
		Document:  p.Document,
		Phone:     p.Phone,
		BirthDate: p.BirthDate.Unix(),
		CreatedAt: p.CreatedAt.Unix(),
	}
	if _, err := r.patients.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert patient profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) SaveDoctor(ctx context.Context, d *domain.DoctorProfile) error {
	doc := mongoDoctor{
		ID:              d.ID,
		UserID:          d.UserID,
		LicenseNumber:   d.LicenseNumber,
		ExperienceYears: d.ExperienceYears,
		Specialty:       d.Specialty,
		Bio:             d.Bio,
		CreatedAt:       d.CreatedAt.Unix(),
	}
	if _, err := r.doctors.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert doctor profile: %w", err)
	}
	return nil
}
