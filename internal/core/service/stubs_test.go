package service

import (
	"context"
	"time"

	"github.com/clinicore/identity-service/internal/core/domain"
)

// In-memory collaborators shared by the workflow tests.

type stubUsers struct {
	byID             map[string]*domain.User
	findByEmailCalls int
	saveErr          error
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubUsers) add(u *domain.User) *domain.User {
	s.byID[u.ID] = cloneUser(u)
	return u
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	s.findByEmailCalls++
	for _, u := range s.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.byID {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (s *stubUsers) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	for _, u := range s.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	s.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (s *stubUsers) SetActive(_ context.Context, id string, active bool) error {
	u, ok := s.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, id string, hash domain.PasswordHash) error {
	u, ok := s.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type stubProfiles struct {
	patients []*domain.PatientProfile
	doctors  []*domain.DoctorProfile
}

func (s *stubProfiles) SavePatient(_ context.Context, p *domain.PatientProfile) error {
	s.patients = append(s.patients, p)
	return nil
}

func (s *stubProfiles) SaveDoctor(_ context.Context, d *domain.DoctorProfile) error {
	s.doctors = append(s.doctors, d)
	return nil
}

type storedEntry struct {
	value []byte
	ttl   time.Duration
}

// stubStore records every mutation in ops ("set <key>" / "delete <key>") so
// tests can assert ordering, e.g. that supersession deletes before writing.
type stubStore struct {
	entries map[string]storedEntry
	ops     []string
}

func newStubStore() *stubStore {
	return &stubStore{entries: make(map[string]storedEntry)}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *stubStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.entries[key] = storedEntry{value: value, ttl: ttl}
	s.ops = append(s.ops, "set "+key)
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	delete(s.entries, key)
	s.ops = append(s.ops, "delete "+key)
	return nil
}

// stubHasher is deterministic so tests can predict digests.
type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (domain.PasswordHash, error) {
	return domain.PasswordHash("h:" + plaintext), nil
}

func (stubHasher) Verify(plaintext string, digest domain.PasswordHash) bool {
	return digest == domain.PasswordHash("h:"+plaintext)
}

type stubTokens struct{}

func (stubTokens) Issue(claims domain.TokenClaims) (domain.AccessToken, error) {
	return domain.AccessToken{
		Token:     "signed-" + claims.Subject,
		TokenType: "bearer",
		ExpiresIn: claims.ExpiresIn,
		ExpiresAt: time.Now().Add(time.Duration(claims.ExpiresIn) * time.Second),
	}, nil
}

func (stubTokens) Verify(token string) (domain.TokenClaims, error) {
	return domain.TokenClaims{}, domain.ErrInvalidToken
}

type fixedPasswordGen struct{ value string }

func (g fixedPasswordGen) Generate() string { return g.value }

// seqCodeGen hands out codes in order; the last code repeats.
type seqCodeGen struct {
	codes []string
	next  int
}

func (g *seqCodeGen) Generate() string {
	code := g.codes[g.next]
	if g.next < len(g.codes)-1 {
		g.next++
	}
	return code
}

type publishedEvent struct {
	subject string
	payload any
}

type stubPublisher struct {
	events []publishedEvent
	err    error
}

func (s *stubPublisher) Publish(_ context.Context, subject string, payload any) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, publishedEvent{subject: subject, payload: payload})
	return nil
}

type renderCall struct {
	name string
	data map[string]any
}

type stubRenderer struct {
	calls []renderCall
	err   error
}

func (s *stubRenderer) Render(name string, data map[string]any) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.calls = append(s.calls, renderCall{name: name, data: data})
	return "rendered:" + name, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type stubSender struct {
	mails []sentMail
	err   error
}

func (s *stubSender) Send(_ context.Context, recipient, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.mails = append(s.mails, sentMail{to: recipient, subject: subject, body: body})
	return nil
}

type stubRegistrarPolicy struct {
	allowed map[domain.Role]bool
}

func (s stubRegistrarPolicy) CanRegister(actingRole domain.Role) bool {
	return s.allowed[actingRole]
}

type stubEmailPolicy struct {
	blockedDomains map[string]bool
}

func (s stubEmailPolicy) IsAllowed(email domain.Email, _ domain.Role) bool {
	return !s.blockedDomains[email.Domain()]
}

func mustEmail(raw string) domain.Email {
	email, err := domain.NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return email
}
