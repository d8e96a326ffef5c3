package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/identity-service/internal/core/domain"
)

// BcryptHasher implements the CredentialHasher port with bcrypt. The salt is
// embedded in the digest, so two hashes of the same plaintext differ.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. A cost outside the
// valid bcrypt range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (domain.PasswordHash, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return domain.NewPasswordHash(string(digest))
}

func (h *BcryptHasher) Verify(plaintext string, digest domain.PasswordHash) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
