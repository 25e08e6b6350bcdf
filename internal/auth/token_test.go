package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGenerateToken_Format(t *testing.T) {
	t.Parallel()

	generated, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if !strings.HasPrefix(generated.Plaintext, "rk_") {
		t.Errorf("Token should start with rk_, got: %s", generated.Plaintext)
	}

	if !ValidateTokenFormat(generated.Plaintext) {
		t.Errorf("Generated token should pass format validation: %s", generated.Plaintext)
	}

	if len(generated.Prefix) != TokenPrefixLen {
		t.Errorf("Prefix should be %d chars, got: %d", TokenPrefixLen, len(generated.Prefix))
	}
}

func TestGenerateToken_Uniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		generated, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}
		if seen[generated.Plaintext] {
			t.Fatalf("Duplicate token generated: %s", generated.Plaintext)
		}
		seen[generated.Plaintext] = true
	}
}

func TestGenerateToken_HashVerifies(t *testing.T) {
	t.Parallel()

	generated, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	match, err := VerifyPassword(generated.Plaintext, generated.Hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !match {
		t.Error("Stored hash should verify the plaintext token")
	}
}

func TestParseToken_Valid(t *testing.T) {
	t.Parallel()

	token := fmt.Sprintf("rk_%s_%s", "a1b2c3", strings.Repeat("0f", 16))

	parsed, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if parsed.Prefix != "a1b2c3" {
		t.Errorf("Prefix mismatch: got %q, want %q", parsed.Prefix, "a1b2c3")
	}
	if parsed.Secret != strings.Repeat("0f", 16) {
		t.Errorf("Secret mismatch: got %q", parsed.Secret)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"wrong prefix", "pk_a1b2c3_" + strings.Repeat("0f", 16)},
		{"prefix too short", "rk_a1b2_" + strings.Repeat("0f", 16)},
		{"secret too short", "rk_a1b2c3_deadbeef"},
		{"uppercase hex", "rk_A1B2C3_" + strings.Repeat("0F", 16)},
		{"missing separators", "rka1b2c3" + strings.Repeat("0f", 16)},
		{"trailing garbage", "rk_a1b2c3_" + strings.Repeat("0f", 16) + "x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseToken(tt.token)
			if !errors.Is(err, ErrInvalidTokenFormat) {
				t.Errorf("ParseToken(%q) error = %v, want ErrInvalidTokenFormat", tt.token, err)
			}
			if ValidateTokenFormat(tt.token) {
				t.Errorf("ValidateTokenFormat(%q) should be false", tt.token)
			}
		})
	}
}
