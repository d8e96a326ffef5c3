package ports

import (
	"context"

	"github.com/clinicore/identity-service/internal/core/domain"
)

// UserDirectory is the persistent identity store consumed by the workflows.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id string, hash domain.PasswordHash) error
}

// ProfileDirectory persists the role-specific profiles captured at
// registration.
type ProfileDirectory interface {
	SavePatient(ctx context.Context, profile *domain.PatientProfile) error
	SaveDoctor(ctx context.Context, profile *domain.DoctorProfile) error
}
