package domain

import "time"

// TokenClaims is the identity payload embedded in an issued token. Immutable
// once issued; verified by signature and expiry only.
//
// Field names are part of the wire contract and must not change:
// sub, first_name, last_name, email, role, jti, expires_in.
type TokenClaims struct {
	Subject   string `json:"sub"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	JTI       string `json:"jti"`
	ExpiresIn int64  `json:"expires_in"`
}

// ClaimsFor builds the token claims for a user. The jti is assigned by the
// issuer so that two tokens for the same user are still distinguishable.
func ClaimsFor(u *User, expiresIn time.Duration) TokenClaims {
	return TokenClaims{
		Subject:   u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email.String(),
		Role:      u.Role,
		ExpiresIn: int64(expiresIn.Seconds()),
	}
}

// AccessToken is the result of a successful token issuance.
type AccessToken struct {
	Token     string    `json:"access_token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int64     `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}
