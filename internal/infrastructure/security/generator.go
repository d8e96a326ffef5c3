package security

import (
	"crypto/rand"
	"math/big"

	"github.com/clinicore/identity-service/internal/core/domain"
)

const (
	codeLength   = 6
	codeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passwordSize = 12

	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"
)

// CodeGenerator produces short one-time codes for activation and password
// recovery.
type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate returns a 6-character uppercase alphanumeric code.
func (g *CodeGenerator) Generate() string {
	out := make([]byte, codeLength)
	for i := range out {
		out[i] = codeCharset[randIndex(len(codeCharset))]
	}
	return string(out)
}

// PasswordGenerator produces temporary passwords that always satisfy the
// password policy: one character from each required class, the rest drawn
// from the full alphabet, then shuffled.
type PasswordGenerator struct{}

func NewPasswordGenerator() *PasswordGenerator {
	return &PasswordGenerator{}
}

func (g *PasswordGenerator) Generate() string {
	full := lowerChars + upperChars + digitChars + domain.PasswordSpecialChars

	out := make([]byte, 0, passwordSize)
	out = append(out,
		lowerChars[randIndex(len(lowerChars))],
		upperChars[randIndex(len(upperChars))],
		digitChars[randIndex(len(digitChars))],
		domain.PasswordSpecialChars[randIndex(len(domain.PasswordSpecialChars))],
	)
	for len(out) < passwordSize {
		out = append(out, full[randIndex(len(full))])
	}

	// Fisher-Yates so the class-guaranteed characters are not predictably
	// positioned at the front.
	for i := len(out) - 1; i > 0; i-- {
		j := randIndex(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; nothing
		// sensible to fall back to for credential material.
		panic(err)
	}
	return int(v.Int64())
}
