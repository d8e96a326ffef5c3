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

const (
	defaultAttemptLimit = 5
	defaultLockoutTTL   = 15 * time.Minute
	defaultTokenTTL     = time.Hour
)

// AuthService implements throttled credential verification and token
// issuance.
type AuthService struct {
	users        ports.UserDirectory
	hasher       ports.CredentialHasher
	tokens       ports.TokenIssuer
	store        ports.EphemeralStateStore
	attemptLimit int
	lockoutTTL   time.Duration
	tokenTTL     time.Duration
	log          zerolog.Logger
}

func NewAuthService(
	users ports.UserDirectory,
	hasher ports.CredentialHasher,
	tokens ports.TokenIssuer,
	store ports.EphemeralStateStore,
	attemptLimit int,
	lockoutTTL, tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if attemptLimit <= 0 {
		attemptLimit = defaultAttemptLimit
	}
	if lockoutTTL <= 0 {
		lockoutTTL = defaultLockoutTTL
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		store:        store,
		attemptLimit: attemptLimit,
		lockoutTTL:   lockoutTTL,
		tokenTTL:     tokenTTL,
		log:          log,
	}
}

// Login verifies credentials and returns a signed access token.
//
// The attempt counter is consulted before any directory lookup, so a blocked
// email never touches the directory. Unknown email and bad password increment
// the counter identically, to avoid revealing account existence. Each failure
// re-sets the counter TTL, sliding the lockout window forward; a success
// deletes the counter entirely.
func (s *AuthService) Login(ctx context.Context, rawEmail, password string) (domain.AccessToken, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return domain.AccessToken{}, err
	}
	if password == "" {
		return domain.AccessToken{}, domain.ErrInvalidCredentials
	}

	key := domain.LoginAttemptsKey(email)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("login attempts read: %w", err)
	}
	attempts := 0
	if ok {
		attempts = domain.DecodeAttempts(raw)
	}
	if attempts >= s.attemptLimit {
		s.log.Warn().Str("email", email.String()).Int("attempts", attempts).Msg("login blocked")
		return domain.AccessToken{}, domain.ErrAccountBlocked
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if ferr := s.recordFailure(ctx, key, attempts); ferr != nil {
				return domain.AccessToken{}, ferr
			}
			return domain.AccessToken{}, domain.ErrInvalidCredentials
		}
		return domain.AccessToken{}, fmt.Errorf("login lookup: %w", err)
	}

	// Inactive accounts are reported as such without touching the counter.
	if !user.Active {
		return domain.AccessToken{}, domain.ErrUserInactive
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		if ferr := s.recordFailure(ctx, key, attempts); ferr != nil {
			return domain.AccessToken{}, ferr
		}
		return domain.AccessToken{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(user, s.tokenTTL))
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}

	// Delete, not reset to zero: the next failure starts a fresh window.
	if err := s.store.Delete(ctx, key); err != nil {
		return domain.AccessToken{}, fmt.Errorf("login attempts clear: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string, attempts int) error {
	if err := s.store.Set(ctx, key, domain.EncodeAttempts(attempts+1), s.lockoutTTL); err != nil {
		return fmt.Errorf("login attempts write: %w", err)
	}
	return nil
}
