package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/identity-service/internal/core/domain"
)

const (
	testAttemptLimit = 3
	testLockoutTTL   = 15 * time.Minute
)

func newTestAuthService(users *stubUsers, store *stubStore) *AuthService {
	return NewAuthService(users, stubHasher{}, stubTokens{}, store,
		testAttemptLimit, testLockoutTTL, time.Hour, zerolog.Nop())
}

func activeUser(email string, password string) *domain.User {
	u := domain.NewUser("Grace", "Hopper", mustEmail(email), domain.PasswordHash("h:"+password), domain.RolePatient)
	u.Active = true
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUsers()
	users.add(activeUser("grace@example.com", "Right#Pass1"))
	store := newStubStore()
	svc := newTestAuthService(users, store)

	token, err := svc.Login(context.Background(), "grace@example.com", "Right#Pass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if token.TokenType != "bearer" {
		t.Fatalf("unexpected token type %q", token.TokenType)
	}
}

func TestAuthService_Login_SuccessClearsCounter(t *testing.T) {
	users := newStubUsers()
	users.add(activeUser("grace@example.com", "Right#Pass1"))
	store := newStubStore()
	svc := newTestAuthService(users, store)

	key := domain.LoginAttemptsKey(mustEmail("grace@example.com"))
	store.entries[key] = storedEntry{value: domain.EncodeAttempts(2), ttl: testLockoutTTL}

	if _, err := svc.Login(context.Background(), "grace@example.com", "Right#Pass1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, ok := store.entries[key]; ok {
		t.Fatalf("expected attempt counter to be deleted after success")
	}
}

func TestAuthService_Login_WrongPasswordIncrementsCounter(t *testing.T) {
	users := newStubUsers()
	users.add(activeUser("grace@example.com", "Right#Pass1"))
	store := newStubStore()
	svc := newTestAuthService(users, store)

	if _, err := svc.Login(context.Background(), "grace@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	key := domain.LoginAttemptsKey(mustEmail("grace@example.com"))
	entry, ok := store.entries[key]
	if !ok {
		t.Fatalf("expected attempt counter after failure")
	}
	if got := domain.DecodeAttempts(entry.value); got != 1 {
		t.Fatalf("expected counter 1, got %d", got)
	}
	if entry.ttl != testLockoutTTL {
		t.Fatalf("expected counter TTL %v, got %v", testLockoutTTL, entry.ttl)
	}
}

func TestAuthService_Login_UnknownEmailCountsLikeWrongPassword(t *testing.T) {
	users := newStubUsers()
	store := newStubStore()
	svc := newTestAuthService(users, store)

	// Unknown email must be indistinguishable from a wrong password.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	key := domain.LoginAttemptsKey(mustEmail("ghost@example.com"))
	entry, ok := store.entries[key]
	if !ok {
		t.Fatalf("expected attempt counter for unknown email")
	}
	if got := domain.DecodeAttempts(entry.value); got != 1 {
		t.Fatalf("expected counter 1, got %d", got)
	}
}

func TestAuthService_Login_BlockedBeforeLookup(t *testing.T) {
	users := newStubUsers()
	users.add(activeUser("grace@example.com", "Right#Pass1"))
	store := newStubStore()
	svc := newTestAuthService(users, store)

	key := domain.LoginAttemptsKey(mustEmail("grace@example.com"))
	store.entries[key] = storedEntry{value: domain.EncodeAttempts(testAttemptLimit), ttl: testLockoutTTL}

	if _, err := svc.Login(context.Background(), "grace@example.com", "Right#Pass1"); !errors.Is(err, domain.ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
	if users.findByEmailCalls != 0 {
		t.Fatalf("blocked login must not touch the directory, got %d lookups", users.findByEmailCalls)
	}
}

func TestAuthService_Login_LimitReachedAfterConsecutiveFailures(t *testing.T) {
	users := newStubUsers()
	users.add(activeUser("grace@example.com", "Right#Pass1"))
	store := newStubStore()
	svc := newTestAuthService(users, store)

	for i := 0; i < testAttemptLimit; i++ {
		if _, err := svc.Login(context.Background(), "grace@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Even the correct password is refused once the limit is reached, and the
	// directory is no longer consulted.
	lookups := users.findByEmailCalls
	if _, err := svc.Login(context.Background(), "grace@example.com", "Right#Pass1"); !errors.Is(err, domain.ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
	if users.findByEmailCalls != lookups {
		t.Fatalf("blocked attempt performed a directory lookup")
	}
}

func TestAuthService_Login_EachFailureSlidesWindow(t *testing.T) {
	users := newStubUsers()
	users.add(activeUser("grace@example.com", "Right#Pass1"))
	store := newStubStore()
	svc := newTestAuthService(users, store)

	key := domain.LoginAttemptsKey(mustEmail("grace@example.com"))
	for i := 0; i < 2; i++ {
		_, _ = svc.Login(context.Background(), "grace@example.com", "wrong")
		if entry := store.entries[key]; entry.ttl != testLockoutTTL {
			t.Fatalf("failure %d: expected TTL reset to %v, got %v", i+1, testLockoutTTL, entry.ttl)
		}
	}
	if got := domain.DecodeAttempts(store.entries[key].value); got != 2 {
		t.Fatalf("expected counter 2, got %d", got)
	}
}

func TestAuthService_Login_InactiveUserDoesNotTouchCounter(t *testing.T) {
	users := newStubUsers()
	inactive := domain.NewUser("Ada", "Lovelace", mustEmail("ada@example.com"),
		domain.PasswordHash("h:Right#Pass1"), domain.RolePatient)
	users.add(inactive)
	store := newStubStore()
	svc := newTestAuthService(users, store)

	if _, err := svc.Login(context.Background(), "ada@example.com", "Right#Pass1"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Fatalf("inactive login must not write an attempt counter")
	}
}

func TestAuthService_Login_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(newStubUsers(), newStubStore())

	if _, err := svc.Login(context.Background(), "not-an-email", "whatever"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestAuthService_Login_EmptyPassword(t *testing.T) {
	users := newStubUsers()
	users.add(activeUser("grace@example.com", "Right#Pass1"))
	store := newStubStore()
	svc := newTestAuthService(users, store)

	if _, err := svc.Login(context.Background(), "grace@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
