package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicore/identity-service/internal/core/domain"
)

// JWTIssuer implements the TokenIssuer port with HS256-signed JWTs.
type JWTIssuer struct {
	secret []byte
}

func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret)}
}

// jwtClaims is the wire shape of an issued token. The custom field names
// (first_name, last_name, email, role, expires_in) and the registered ones
// (sub, jti, exp, iat) are part of the contract with token consumers.
type jwtClaims struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expires_in"`
	jwt.RegisteredClaims
}

// Issue signs the claims with a fresh jti. Two issuances for identical claims
// produce distinct tokens; nothing is cached or deduplicated.
func (i *JWTIssuer) Issue(claims domain.TokenClaims) (domain.AccessToken, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(claims.ExpiresIn) * time.Second)

	wire := jwtClaims{
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Role:      string(claims.Role),
		ExpiresIn: claims.ExpiresIn,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(i.secret)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}

	return domain.AccessToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: claims.ExpiresIn,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature and expiry and returns the embedded claims. Any
// failure — bad signature, malformed structure, expired token — is reported
// as domain.ErrInvalidToken.
func (i *JWTIssuer) Verify(token string) (domain.TokenClaims, error) {
	var wire jwtClaims
	parsed, err := jwt.ParseWithClaims(token, &wire, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}

	return domain.TokenClaims{
		Subject:   wire.Subject,
		FirstName: wire.FirstName,
		LastName:  wire.LastName,
		Email:     wire.Email,
		Role:      domain.Role(wire.Role),
		JTI:       wire.ID,
		ExpiresIn: wire.ExpiresIn,
	}, nil
}
