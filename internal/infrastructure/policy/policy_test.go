package policy

import (
	"testing"

	"github.com/clinicore/identity-service/internal/core/domain"
)

func mustEmail(t *testing.T, raw string) domain.Email {
	t.Helper()
	email, err := domain.NewEmail(raw)
	if err != nil {
		t.Fatalf("bad test email %q: %v", raw, err)
	}
	return email
}

func TestRegistrarPolicy(t *testing.T) {
	p := NewRegistrarPolicy([]domain.Role{domain.RoleAdmin, domain.RoleReceptionist})

	if !p.CanRegister(domain.RoleAdmin) || !p.CanRegister(domain.RoleReceptionist) {
		t.Fatalf("configured roles must be allowed")
	}
	if p.CanRegister(domain.RoleDoctor) || p.CanRegister(domain.RolePatient) {
		t.Fatalf("unconfigured roles must be denied")
	}
}

func TestRegistrarPolicy_EmptyDefaultsToAdmin(t *testing.T) {
	p := NewRegistrarPolicy(nil)

	if !p.CanRegister(domain.RoleAdmin) {
		t.Fatalf("admin must always be allowed")
	}
	if p.CanRegister(domain.RoleReceptionist) {
		t.Fatalf("only admin is allowed by default")
	}
}

func TestStaffEmailPolicy(t *testing.T) {
	p := NewStaffEmailPolicy([]string{"Clinicore.Health"})

	corporate := mustEmail(t, "ana@clinicore.health")
	personal := mustEmail(t, "ana@example.com")

	if !p.IsAllowed(corporate, domain.RoleDoctor) {
		t.Fatalf("corporate domain must be allowed for staff")
	}
	if p.IsAllowed(personal, domain.RoleDoctor) {
		t.Fatalf("personal domain must be rejected for staff")
	}
	if p.IsAllowed(personal, domain.RoleAdmin) {
		t.Fatalf("personal domain must be rejected for admins")
	}

	// Patients are exempt from the domain policy.
	if !p.IsAllowed(personal, domain.RolePatient) {
		t.Fatalf("patients may use any domain")
	}
}
