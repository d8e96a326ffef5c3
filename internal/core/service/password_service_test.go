package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/identity-service/internal/core/domain"
	"github.com/clinicore/identity-service/internal/core/ports"
)

type passwordFixture struct {
	users    *stubUsers
	store    *stubStore
	renderer *stubRenderer
	sender   *stubSender
	codes    *seqCodeGen
	svc      *PasswordService
}

func newPasswordFixture() *passwordFixture {
	f := &passwordFixture{
		users:    newStubUsers(),
		store:    newStubStore(),
		renderer: &stubRenderer{},
		sender:   &stubSender{},
		codes:    &seqCodeGen{codes: []string{"K7M2P9", "Q4R8T1"}},
	}
	f.svc = NewPasswordService(f.users, stubHasher{}, f.codes, f.store,
		f.renderer, f.sender, zerolog.Nop())
	return f
}

func (f *passwordFixture) addUser(email, password string) *domain.User {
	u := domain.NewUser("Rosa", "Luna", mustEmail(email), domain.PasswordHash("h:"+password), domain.RolePatient)
	u.Active = true
	return f.users.add(u)
}

func TestPasswordService_RequestRecovery_Success(t *testing.T) {
	f := newPasswordFixture()
	user := f.addUser("rosa@example.com", "Old#Pass11")

	meta := ports.RecoveryRequestMeta{
		RequestedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		IP:          "203.0.113.7",
		UserAgent:   "Mozilla/5.0",
	}
	if err := f.svc.RequestRecovery(context.Background(), "rosa@example.com", meta); err != nil {
		t.Fatalf("request recovery failed: %v", err)
	}

	key := domain.RecoveryKey(mustEmail("rosa@example.com"))
	entry, ok := f.store.entries[key]
	if !ok {
		t.Fatalf("recovery record not stored")
	}
	if entry.ttl != 45*time.Minute {
		t.Fatalf("expected recovery TTL 45m, got %v", entry.ttl)
	}
	record, err := domain.UnmarshalRecoveryRecord(entry.value)
	if err != nil {
		t.Fatalf("decode recovery record: %v", err)
	}
	if record.Code != "K7M2P9" || record.UserID != user.ID {
		t.Fatalf("unexpected recovery record %+v", record)
	}

	if len(f.renderer.calls) != 1 {
		t.Fatalf("expected one render call, got %d", len(f.renderer.calls))
	}
	data := f.renderer.calls[0].data
	if data["recovery_code"] != "K7M2P9" {
		t.Fatalf("code missing from template data: %v", data)
	}
	if data["request_ip"] != "203.0.113.7" || data["request_user_agent"] != "Mozilla/5.0" {
		t.Fatalf("request metadata missing from template data: %v", data)
	}

	if len(f.sender.mails) != 1 {
		t.Fatalf("expected one mail, got %d", len(f.sender.mails))
	}
	if f.sender.mails[0].to != "rosa@example.com" {
		t.Fatalf("mail sent to %q", f.sender.mails[0].to)
	}
}

func TestPasswordService_RequestRecovery_SupersedesOldCode(t *testing.T) {
	f := newPasswordFixture()
	f.addUser("rosa@example.com", "Old#Pass11")

	if err := f.svc.RequestRecovery(context.Background(), "rosa@example.com", ports.RecoveryRequestMeta{}); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if err := f.svc.RequestRecovery(context.Background(), "rosa@example.com", ports.RecoveryRequestMeta{}); err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	key := domain.RecoveryKey(mustEmail("rosa@example.com"))
	record, err := domain.UnmarshalRecoveryRecord(f.store.entries[key].value)
	if err != nil {
		t.Fatalf("decode recovery record: %v", err)
	}
	if record.Code != "Q4R8T1" {
		t.Fatalf("expected newest code to win, got %q", record.Code)
	}

	// The old record is removed before the new one is written.
	want := []string{"set " + key, "delete " + key, "set " + key}
	if len(f.store.ops) != len(want) {
		t.Fatalf("unexpected store ops %v", f.store.ops)
	}
	for i, op := range want {
		if f.store.ops[i] != op {
			t.Fatalf("op %d: expected %q, got %q", i, op, f.store.ops[i])
		}
	}
}

func TestPasswordService_RequestRecovery_UnknownEmail(t *testing.T) {
	f := newPasswordFixture()

	err := f.svc.RequestRecovery(context.Background(), "ghost@example.com", ports.RecoveryRequestMeta{})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(f.store.entries) != 0 || len(f.sender.mails) != 0 {
		t.Fatalf("failed lookup must have no side effects")
	}
}

func TestPasswordService_Reset_Success(t *testing.T) {
	f := newPasswordFixture()
	user := f.addUser("rosa@example.com", "Old#Pass11")
	if err := f.svc.RequestRecovery(context.Background(), "rosa@example.com", ports.RecoveryRequestMeta{}); err != nil {
		t.Fatalf("request recovery failed: %v", err)
	}

	if err := f.svc.Reset(context.Background(), "rosa@example.com", "K7M2P9", "New#Pass22"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	stored, _ := f.users.FindByID(context.Background(), user.ID)
	if stored.PasswordHash != domain.PasswordHash("h:New#Pass22") {
		t.Fatalf("password not updated: %q", stored.PasswordHash)
	}

	// Unlike activation, the recovery record is consumed on success.
	if _, ok := f.store.entries[domain.RecoveryKey(mustEmail("rosa@example.com"))]; ok {
		t.Fatalf("recovery record must be deleted after a successful reset")
	}
}

func TestPasswordService_Reset_WrongCodeReportsExpired(t *testing.T) {
	f := newPasswordFixture()
	user := f.addUser("rosa@example.com", "Old#Pass11")
	if err := f.svc.RequestRecovery(context.Background(), "rosa@example.com", ports.RecoveryRequestMeta{}); err != nil {
		t.Fatalf("request recovery failed: %v", err)
	}

	err := f.svc.Reset(context.Background(), "rosa@example.com", "WRONG1", "New#Pass22")
	if !errors.Is(err, domain.ErrRecoveryCodeExpired) {
		t.Fatalf("expected ErrRecoveryCodeExpired for wrong code, got %v", err)
	}

	stored, _ := f.users.FindByID(context.Background(), user.ID)
	if stored.PasswordHash != domain.PasswordHash("h:Old#Pass11") {
		t.Fatalf("password must be unchanged after a failed reset")
	}
	if _, ok := f.store.entries[domain.RecoveryKey(mustEmail("rosa@example.com"))]; !ok {
		t.Fatalf("record must survive a failed reset")
	}
}

func TestPasswordService_Reset_NoRecord(t *testing.T) {
	f := newPasswordFixture()
	f.addUser("rosa@example.com", "Old#Pass11")

	err := f.svc.Reset(context.Background(), "rosa@example.com", "K7M2P9", "New#Pass22")
	if !errors.Is(err, domain.ErrRecoveryCodeExpired) {
		t.Fatalf("expected ErrRecoveryCodeExpired, got %v", err)
	}
}

func TestPasswordService_Reset_SamePassword(t *testing.T) {
	f := newPasswordFixture()
	f.addUser("rosa@example.com", "Old#Pass11")
	if err := f.svc.RequestRecovery(context.Background(), "rosa@example.com", ports.RecoveryRequestMeta{}); err != nil {
		t.Fatalf("request recovery failed: %v", err)
	}

	err := f.svc.Reset(context.Background(), "rosa@example.com", "K7M2P9", "Old#Pass11")
	if !errors.Is(err, domain.ErrSamePassword) {
		t.Fatalf("expected ErrSamePassword, got %v", err)
	}
}

func TestPasswordService_Reset_WeakPassword(t *testing.T) {
	f := newPasswordFixture()
	f.addUser("rosa@example.com", "Old#Pass11")

	err := f.svc.Reset(context.Background(), "rosa@example.com", "K7M2P9", "weak")
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestPasswordService_Update_Success(t *testing.T) {
	f := newPasswordFixture()
	user := f.addUser("rosa@example.com", "Old#Pass11")

	if err := f.svc.Update(context.Background(), user.ID, "Old#Pass11", "New#Pass22"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, _ := f.users.FindByID(context.Background(), user.ID)
	if stored.PasswordHash != domain.PasswordHash("h:New#Pass22") {
		t.Fatalf("password not updated: %q", stored.PasswordHash)
	}
}

func TestPasswordService_Update_WrongCurrentPassword(t *testing.T) {
	f := newPasswordFixture()
	user := f.addUser("rosa@example.com", "Old#Pass11")

	err := f.svc.Update(context.Background(), user.ID, "Wrong#Pass1", "New#Pass22")
	if !errors.Is(err, domain.ErrCurrentPasswordIncorrect) {
		t.Fatalf("expected ErrCurrentPasswordIncorrect, got %v", err)
	}
}

func TestPasswordService_Update_SamePassword(t *testing.T) {
	f := newPasswordFixture()
	user := f.addUser("rosa@example.com", "Old#Pass11")

	err := f.svc.Update(context.Background(), user.ID, "Old#Pass11", "Old#Pass11")
	if !errors.Is(err, domain.ErrSamePassword) {
		t.Fatalf("expected ErrSamePassword, got %v", err)
	}
}

func TestPasswordService_Update_UnknownUser(t *testing.T) {
	f := newPasswordFixture()

	err := f.svc.Update(context.Background(), "missing-id", "Old#Pass11", "New#Pass22")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
