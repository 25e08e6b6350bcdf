package service

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		want    string
		wantErr error
	}{
		{"empty", "", "", ErrEmailRequired},
		{"whitespace_only", "   ", "", ErrEmailRequired},
		{"missing_at", "userexample.com", "", ErrInvalidEmail},
		{"missing_domain", "user@", "", ErrInvalidEmail},
		{"missing_tld", "user@example", "", ErrInvalidEmail},
		{"contains_space", "us er@example.com", "", ErrInvalidEmail},
		{"valid", "user@example.com", "user@example.com", nil},
		{"uppercase_lowered", "User@EXAMPLE.Com", "user@example.com", nil},
		{"trimmed", "  user@example.com  ", "user@example.com", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := normalizeEmail(test.email)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
			if got != test.want {
				t.Fatalf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	svc := NewUserService(nil, 6, nil)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "missing_email",
			input:   RegisterInput{Password: "testpassword"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "invalid_email",
			input:   RegisterInput{Email: "not-an-email", Password: "testpassword"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "password_too_short",
			input:   RegisterInput{Email: "user@example.com", Password: "test"},
			wantErr: ErrPasswordTooShort,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestRegisterRespectsConfiguredMinLength(t *testing.T) {
	svc := NewUserService(nil, 8, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "user@example.com",
		Password: "short12",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort with min length 8, got %v", err)
	}
}
