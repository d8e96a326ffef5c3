package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/identity-service/internal/core/domain"
	"github.com/clinicore/identity-service/internal/core/ports"
)

// activationCodeTTL is how long a newly issued activation code stays
// redeemable.
const activationCodeTTL = 15 * time.Minute

// RegistrationService creates inactive identities and activates them with
// one-time codes.
type RegistrationService struct {
	users       ports.UserDirectory
	profiles    ports.ProfileDirectory
	hasher      ports.CredentialHasher
	passwords   ports.PasswordGenerator
	codes       ports.CodeGenerator
	store       ports.EphemeralStateStore
	authz       ports.AuthorizationPolicy
	emailPolicy ports.EmailDomainPolicy
	events      ports.EventPublisher
	log         zerolog.Logger
}

func NewRegistrationService(
	users ports.UserDirectory,
	profiles ports.ProfileDirectory,
	hasher ports.CredentialHasher,
	passwords ports.PasswordGenerator,
	codes ports.CodeGenerator,
	store ports.EphemeralStateStore,
	authz ports.AuthorizationPolicy,
	emailPolicy ports.EmailDomainPolicy,
	events ports.EventPublisher,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:       users,
		profiles:    profiles,
		hasher:      hasher,
		passwords:   passwords,
		codes:       codes,
		store:       store,
		authz:       authz,
		emailPolicy: emailPolicy,
		events:      events,
		log:         log,
	}
}

// Register creates an inactive identity with a generated temporary password,
// stores its activation code, and publishes a user-registered event for
// out-of-band credential delivery. Delivery failure is not this workflow's
// concern.
func (s *RegistrationService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	actorRole, err := domain.ParseRole(input.ActorRole)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanRegister(actorRole) {
		return nil, domain.ErrUnauthorizedRegistration
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if !s.emailPolicy.IsAllowed(email, role) {
		return nil, domain.ErrEmailDomainNotAllowed
	}

	// Profile requirements are validated before anything is persisted.
	if role == domain.RolePatient && input.Patient == nil {
		return nil, domain.ErrMissingProfile
	}
	if role == domain.RoleDoctor && input.Doctor == nil {
		return nil, domain.ErrMissingProfile
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	temporary := s.passwords.Generate()
	hash, err := s.hasher.Hash(temporary)
	if err != nil {
		return nil, fmt.Errorf("hash temporary password: %w", err)
	}

	user, err := s.users.Save(ctx, domain.NewUser(input.FirstName, input.LastName, email, hash, role))
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	switch role {
	case domain.RolePatient:
		p := domain.NewPatientProfile(user.ID, input.Patient.Document, input.Patient.Phone, input.Patient.BirthDate)
		if err := s.profiles.SavePatient(ctx, p); err != nil {
			return nil, fmt.Errorf("save patient profile: %w", err)
		}
	case domain.RoleDoctor:
		d := domain.NewDoctorProfile(user.ID, input.Doctor.LicenseNumber, input.Doctor.ExperienceYears, input.Doctor.Specialty, input.Doctor.Bio)
		if err := s.profiles.SaveDoctor(ctx, d); err != nil {
			return nil, fmt.Errorf("save doctor profile: %w", err)
		}
	}

	code := s.codes.Generate()
	record := domain.ActivationRecord{UserID: user.ID, Email: email.String(), Code: code}
	value, err := record.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal activation record: %w", err)
	}
	if err := s.store.Set(ctx, domain.ActivationKey(user.ID), value, activationCodeTTL); err != nil {
		return nil, fmt.Errorf("store activation code: %w", err)
	}

	event := domain.UserRegisteredEvent{
		UserID:            user.ID,
		Email:             email.String(),
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		TemporaryPassword: temporary,
		ActivationCode:    code,
		ExpiresInMinutes:  int(activationCodeTTL / time.Minute),
	}
	if err := s.events.Publish(ctx, domain.SubjectUserRegistered, event); err != nil {
		return nil, fmt.Errorf("publish user registered: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// Activate redeems an activation code and flips the identity to active.
//
// The activation record is deliberately left in the store until its TTL
// expires: a second activation with the same still-live code re-applies the
// same idempotent state change instead of failing.
func (s *RegistrationService) Activate(ctx context.Context, rawEmail, code string) error {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("activate lookup: %w", err)
	}

	raw, ok, err := s.store.Get(ctx, domain.ActivationKey(user.ID))
	if err != nil {
		return fmt.Errorf("activation code read: %w", err)
	}
	if !ok {
		return domain.ErrActivationCodeExpired
	}
	record, err := domain.UnmarshalActivationRecord(raw)
	if err != nil {
		return fmt.Errorf("decode activation record: %w", err)
	}
	if record.Code != code {
		return domain.ErrInvalidActivationCode
	}

	if err := s.users.SetActive(ctx, user.ID, true); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("account activated")
	return nil
}
