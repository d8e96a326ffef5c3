package ports

import "github.com/clinicore/identity-service/internal/core/domain"

// AuthorizationPolicy decides which roles may register new identities.
type AuthorizationPolicy interface {
	CanRegister(actingRole domain.Role) bool
}

// EmailDomainPolicy restricts which email domains may be used for certain
// roles (e.g. staff roles require a corporate domain).
type EmailDomainPolicy interface {
	IsAllowed(email domain.Email, targetRole domain.Role) bool
}
