package security

import (
	"strings"
	"testing"

	"github.com/clinicore/identity-service/internal/core/domain"
)

func TestCodeGenerator(t *testing.T) {
	gen := NewCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := gen.Generate()
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeCharset, c) {
				t.Fatalf("character %q outside charset in %q", c, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("generator produced the same code 50 times")
	}
}

func TestPasswordGenerator_SatisfiesPolicy(t *testing.T) {
	gen := NewPasswordGenerator()

	for i := 0; i < 50; i++ {
		password := gen.Generate()
		if len(password) != passwordSize {
			t.Fatalf("expected %d characters, got %q", passwordSize, password)
		}
		if err := domain.ValidatePassword(password); err != nil {
			t.Fatalf("generated password %q fails the policy: %v", password, err)
		}
	}
}
