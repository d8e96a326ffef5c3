package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// PasswordSpecialChars is the set of characters accepted as "special" by the
// password policy.
const PasswordSpecialChars = `!@#$%^&*()-_=+[]{}|;:,.<>?/\`

const minPasswordLength = 8

// ValidatePassword enforces the password policy: at least 8 characters with
// upper case, lower case, a digit and a special character. Runs before any
// workflow logic so a weak password never reaches the hasher.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrInvalidPassword
	}
	var upper, lower, digit, special bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case strings.ContainsRune(PasswordSpecialChars, c):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return ErrInvalidPassword
	}
	return nil
}

var bcryptPattern = regexp.MustCompile(`^\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}$`)

// PasswordHash is a bcrypt digest validated at construction time. A malformed
// digest is a data corruption problem, surfaced when the value is built, not a
// runtime hashing failure.
type PasswordHash string

// NewPasswordHash validates the bcrypt digest format.
func NewPasswordHash(digest string) (PasswordHash, error) {
	if !bcryptPattern.MatchString(digest) {
		return "", ErrInvalidPasswordHash
	}
	return PasswordHash(digest), nil
}

func (h PasswordHash) String() string { return string(h) }
