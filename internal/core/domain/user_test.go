package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"patient", "doctor", "receptionist", "admin"} {
		role, err := ParseRole(valid)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", valid, err)
		}
		if string(role) != valid {
			t.Fatalf("role mangled: %q", role)
		}
	}
	for _, invalid := range []string{"", "Admin", "superuser", "nurse"} {
		if _, err := ParseRole(invalid); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole for %q, got %v", invalid, err)
		}
	}
}

func TestRole_IsStaff(t *testing.T) {
	if RolePatient.IsStaff() {
		t.Fatalf("patient is not staff")
	}
	for _, staff := range []Role{RoleDoctor, RoleReceptionist, RoleAdmin} {
		if !staff.IsStaff() {
			t.Fatalf("%s should be staff", staff)
		}
	}
}

func TestNewUser(t *testing.T) {
	email, _ := NewEmail("rosa@example.com")
	user := NewUser("Rosa", "Luna", email, PasswordHash("h"), RolePatient)

	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Active {
		t.Fatalf("new users must start inactive")
	}
	if user.CreatedAt.IsZero() || !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Fatalf("unexpected timestamps: %v / %v", user.CreatedAt, user.UpdatedAt)
	}
}
