package policy

import (
	"strings"

	"github.com/clinicore/identity-service/internal/core/domain"
)

// RegistrarPolicy implements the AuthorizationPolicy port: only the
// configured roles may register new identities.
type RegistrarPolicy struct {
	allowed map[domain.Role]struct{}
}

// NewRegistrarPolicy builds the policy from a role list. With an empty list
// only admins may register.
func NewRegistrarPolicy(roles []domain.Role) *RegistrarPolicy {
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleAdmin}
	}
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return &RegistrarPolicy{allowed: allowed}
}

func (p *RegistrarPolicy) CanRegister(actingRole domain.Role) bool {
	_, ok := p.allowed[actingRole]
	return ok
}

// StaffEmailPolicy implements the EmailDomainPolicy port: staff roles must
// use one of the configured corporate domains; patients may use any domain.
type StaffEmailPolicy struct {
	domains map[string]struct{}
}

func NewStaffEmailPolicy(domains []string) *StaffEmailPolicy {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return &StaffEmailPolicy{domains: set}
}

func (p *StaffEmailPolicy) IsAllowed(email domain.Email, targetRole domain.Role) bool {
	if !targetRole.IsStaff() {
		return true
	}
	_, ok := p.domains[email.Domain()]
	return ok
}
