package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicore/identity-service/internal/core/domain"
	"github.com/clinicore/identity-service/internal/core/ports"
)

const adminCreatedTemplate = "admin_created"

// AdminService performs the one-time admin bootstrap. Unlike registration,
// credential delivery is synchronous: this path runs once, interactively, at
// system setup, and the operator wants to know immediately whether the mail
// went out.
type AdminService struct {
	users       ports.UserDirectory
	hasher      ports.CredentialHasher
	passwords   ports.PasswordGenerator
	emailPolicy ports.EmailDomainPolicy
	renderer    ports.TemplateRenderer
	sender      ports.NotificationSender
	log         zerolog.Logger
}

func NewAdminService(
	users ports.UserDirectory,
	hasher ports.CredentialHasher,
	passwords ports.PasswordGenerator,
	emailPolicy ports.EmailDomainPolicy,
	renderer ports.TemplateRenderer,
	sender ports.NotificationSender,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:       users,
		hasher:      hasher,
		passwords:   passwords,
		emailPolicy: emailPolicy,
		renderer:    renderer,
		sender:      sender,
		log:         log,
	}
}

// CreateInitialAdmin creates the single admin identity, pre-activated, and
// mails its temporary password inline.
func (s *AdminService) CreateInitialAdmin(ctx context.Context, firstName, lastName, rawEmail string) (*domain.User, error) {
	existing, err := s.users.FindByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrAdminAlreadyExists
	}

	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	if !s.emailPolicy.IsAllowed(email, domain.RoleAdmin) {
		return nil, domain.ErrEmailDomainNotAllowed
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("admin email lookup: %w", err)
	}

	temporary := s.passwords.Generate()
	hash, err := s.hasher.Hash(temporary)
	if err != nil {
		return nil, fmt.Errorf("hash temporary password: %w", err)
	}

	user := domain.NewUser(firstName, lastName, email, hash, domain.RoleAdmin)
	user.Active = true
	user, err = s.users.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("save admin: %w", err)
	}

	body, err := s.renderer.Render(adminCreatedTemplate, map[string]any{
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"email":              user.Email.String(),
		"temporary_password": temporary,
	})
	if err != nil {
		return nil, fmt.Errorf("render admin mail: %w", err)
	}
	if err := s.sender.Send(ctx, user.Email.String(), "Your Admin Account Has Been Created", body); err != nil {
		return nil, fmt.Errorf("send admin mail: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("initial admin created")
	return user, nil
}
