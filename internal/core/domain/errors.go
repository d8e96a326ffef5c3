package domain

import "errors"

// Workflow outcomes. Each failure mode is a distinct sentinel so the boundary
// layer can map it to a distinct external response.
var (
	// NotFound
	ErrUserNotFound = errors.New("user not found")

	// Unauthorized
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrAccountBlocked           = errors.New("too many failed attempts, try again later")
	ErrUserInactive             = errors.New("user account is inactive")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrInvalidToken             = errors.New("invalid token")

	// Conflict
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrAdminAlreadyExists = errors.New("an admin user already exists")

	// Validation
	ErrInvalidEmail             = errors.New("invalid email address")
	ErrInvalidPassword          = errors.New("password does not meet security requirements")
	ErrInvalidPasswordHash      = errors.New("malformed password hash")
	ErrInvalidRole              = errors.New("unknown role")
	ErrUnauthorizedRegistration = errors.New("role is not authorized to register users")
	ErrEmailDomainNotAllowed    = errors.New("email domain not allowed for this role")
	ErrMissingProfile           = errors.New("profile is required for this role")

	// Expired or invalid one-time codes
	ErrActivationCodeExpired = errors.New("activation code expired or not found")
	ErrInvalidActivationCode = errors.New("activation code does not match")
	ErrRecoveryCodeExpired   = errors.New("recovery code expired or not found")

	// Same-as-current
	ErrSamePassword = errors.New("new password must differ from the current one")
)
