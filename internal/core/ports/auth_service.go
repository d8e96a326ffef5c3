package ports

import (
	"context"
	"time"

	"github.com/clinicore/identity-service/internal/core/domain"
)

// AuthService authenticates credentials and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.AccessToken, error)
}

// PatientProfileInput carries the patient data required when registering a
// patient.
type PatientProfileInput struct {
	Document  string
	Phone     string
	BirthDate time.Time
}

// DoctorProfileInput carries the clinician data required when registering a
// doctor.
type DoctorProfileInput struct {
	LicenseNumber   string
	ExperienceYears int
	Specialty       string
	Bio             string
}

// RegisterUserInput is the full registration request, including the role of
// the actor performing it.
type RegisterUserInput struct {
	ActorRole string
	FirstName string
	LastName  string
	Email     string
	Role      string
	Patient   *PatientProfileInput
	Doctor    *DoctorProfileInput
}

// RegistrationService creates identities and activates them.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	Activate(ctx context.Context, email, code string) error
}

// PasswordService covers the recovery, reset, and authenticated-update flows.
type PasswordService interface {
	RequestRecovery(ctx context.Context, email string, meta RecoveryRequestMeta) error
	Reset(ctx context.Context, email, code, newPassword string) error
	Update(ctx context.Context, userID, currentPassword, newPassword string) error
}

// RecoveryRequestMeta is request context echoed into the recovery email so
// the recipient can recognize (or disown) the request.
type RecoveryRequestMeta struct {
	RequestedAt time.Time
	IP          string
	UserAgent   string
}

// AdminService performs the one-time admin bootstrap.
type AdminService interface {
	CreateInitialAdmin(ctx context.Context, firstName, lastName, email string) (*domain.User, error)
}
