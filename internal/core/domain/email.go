package domain

import (
	"regexp"
	"strings"
)

// A TLD label may be up to 63 octets (RFC 1035).
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@([a-zA-Z0-9]+(-[a-zA-Z0-9]+)*\.)+[a-zA-Z]{2,63}$`)

// Email is a validated, normalized (trimmed, lowercased) email address.
// The normalized form is what ephemeral store keys are built from, so
// normalization must stay stable across versions.
type Email string

// NewEmail validates and normalizes an email address.
func NewEmail(raw string) (Email, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || len(s) > 255 {
		return "", ErrInvalidEmail
	}
	if strings.Contains(s, "..") {
		return "", ErrInvalidEmail
	}
	if !emailPattern.MatchString(s) {
		return "", ErrInvalidEmail
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

// Domain returns the part after the '@', used by the staff email policy.
func (e Email) Domain() string {
	at := strings.LastIndex(string(e), "@")
	if at < 0 {
		return ""
	}
	return string(e)[at+1:]
}
