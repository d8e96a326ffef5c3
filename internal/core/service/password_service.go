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

// recoveryCodeTTL is how long a recovery code stays redeemable.
const recoveryCodeTTL = 45 * time.Minute

const recoveryTemplate = "password_recovery"

// PasswordService covers recovery-code issuance, recovery-code redemption,
// and authenticated in-place password changes.
type PasswordService struct {
	users    ports.UserDirectory
	hasher   ports.CredentialHasher
	codes    ports.CodeGenerator
	store    ports.EphemeralStateStore
	renderer ports.TemplateRenderer
	sender   ports.NotificationSender
	log      zerolog.Logger
}

func NewPasswordService(
	users ports.UserDirectory,
	hasher ports.CredentialHasher,
	codes ports.CodeGenerator,
	store ports.EphemeralStateStore,
	renderer ports.TemplateRenderer,
	sender ports.NotificationSender,
	log zerolog.Logger,
) *PasswordService {
	return &PasswordService{
		users:    users,
		hasher:   hasher,
		codes:    codes,
		store:    store,
		renderer: renderer,
		sender:   sender,
		log:      log,
	}
}

// RequestRecovery issues a one-time recovery code and mails it to the user.
// Any still-live code for the email is deleted before the new one is written,
// so only the newest code ever verifies. No side effect happens before the
// identity lookup succeeds.
func (s *PasswordService) RequestRecovery(ctx context.Context, rawEmail string, meta ports.RecoveryRequestMeta) error {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("recovery lookup: %w", err)
	}

	key := domain.RecoveryKey(email)
	if _, ok, err := s.store.Get(ctx, key); err != nil {
		return fmt.Errorf("recovery code read: %w", err)
	} else if ok {
		// Explicit supersession: the previous code is invalidated before the
		// new one exists.
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("recovery code supersede: %w", err)
		}
	}

	code := s.codes.Generate()
	record := domain.RecoveryRecord{UserID: user.ID, Email: email.String(), Code: code}
	value, err := record.Marshal()
	if err != nil {
		return fmt.Errorf("marshal recovery record: %w", err)
	}
	if err := s.store.Set(ctx, key, value, recoveryCodeTTL); err != nil {
		return fmt.Errorf("store recovery code: %w", err)
	}

	requestedAt := meta.RequestedAt
	if requestedAt.IsZero() {
		requestedAt = time.Now().UTC()
	}
	body, err := s.renderer.Render(recoveryTemplate, map[string]any{
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"recovery_code":      code,
		"expiration_minutes": int(recoveryCodeTTL / time.Minute),
		"requested_at":       requestedAt.Format(time.RFC1123),
		"request_ip":         meta.IP,
		"request_user_agent": meta.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("render recovery mail: %w", err)
	}
	if err := s.sender.Send(ctx, email.String(), "Reset your password", body); err != nil {
		return fmt.Errorf("send recovery mail: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("recovery code issued")
	return nil
}

// Reset redeems a recovery code and replaces the password. The recovery
// record is deleted on success (unlike activation, whose record is left to
// expire).
func (s *PasswordService) Reset(ctx context.Context, rawEmail, code, newPassword string) error {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return err
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("reset lookup: %w", err)
	}

	key := domain.RecoveryKey(email)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("recovery code read: %w", err)
	}
	if !ok {
		return domain.ErrRecoveryCodeExpired
	}
	record, err := domain.UnmarshalRecoveryRecord(raw)
	if err != nil {
		return fmt.Errorf("decode recovery record: %w", err)
	}
	// A mismatched code is indistinguishable from an expired one on purpose.
	if record.Code != code {
		return domain.ErrRecoveryCodeExpired
	}

	if s.hasher.Verify(newPassword, user.PasswordHash) {
		return domain.ErrSamePassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("recovery code cleanup: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// Update changes the password of an already-authenticated user after
// verifying the current one.
func (s *PasswordService) Update(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("update lookup: %w", err)
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrCurrentPasswordIncorrect
	}
	if s.hasher.Verify(newPassword, user.PasswordHash) {
		return domain.ErrSamePassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password updated")
	return nil
}
