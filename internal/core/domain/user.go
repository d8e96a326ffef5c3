package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of identity roles.
type Role string

const (
	RolePatient      Role = "patient"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
	RoleAdmin        Role = "admin"
)

// ParseRole converts a string to a Role, rejecting anything outside the set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleReceptionist, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// IsStaff reports whether the role belongs to clinic personnel rather than a
// patient. Staff roles are subject to the corporate email domain policy.
func (r Role) IsStaff() bool {
	return r == RoleDoctor || r == RoleReceptionist || r == RoleAdmin
}

// User models an identity in the directory. Users are created inactive and
// become active through the activation workflow; the admin bootstrap path is
// the only one that creates a pre-activated user. The role is fixed at
// creation.
type User struct {
	ID           string       `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        Email        `json:"email"`
	PasswordHash PasswordHash `json:"-"`
	Role         Role         `json:"role"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewUser builds an inactive user with a fresh id and creation timestamps.
func NewUser(firstName, lastName string, email Email, hash PasswordHash, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
