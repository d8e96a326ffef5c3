package ports

import "github.com/clinicore/identity-service/internal/core/domain"

// CredentialHasher performs one-way hashing and verification of passwords.
// Hashing is salted: two hashes of the same plaintext differ.
type CredentialHasher interface {
	Hash(plaintext string) (domain.PasswordHash, error)
	Verify(plaintext string, digest domain.PasswordHash) bool
}

// TokenIssuer issues and verifies signed, time-bounded identity tokens.
// Each issuance embeds a fresh jti even for identical claims. Verify fails
// with domain.ErrInvalidToken on a bad signature, malformed structure, or
// expired token.
type TokenIssuer interface {
	Issue(claims domain.TokenClaims) (domain.AccessToken, error)
	Verify(token string) (domain.TokenClaims, error)
}

// PasswordGenerator produces strong temporary passwords for newly created
// accounts.
type PasswordGenerator interface {
	Generate() string
}

// CodeGenerator produces short one-time alphanumeric codes for activation and
// password recovery.
type CodeGenerator interface {
	Generate() string
}
