package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/recipebox/recipebox/internal/model"
)

func TestValidateCatalogName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"empty", "", "", ErrNameRequired},
		{"whitespace_only", "  \t ", "", ErrNameRequired},
		{"too_long", strings.Repeat("x", maxCatalogNameLength+1), "", ErrNameTooLong},
		{"trimmed", "  Vegan ", "Vegan", nil},
		{"max_length", strings.Repeat("x", maxCatalogNameLength), strings.Repeat("x", maxCatalogNameLength), nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := validateCatalogName(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
			if got != test.want {
				t.Fatalf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestTagCreateValidationErrors(t *testing.T) {
	svc := &TagService{}
	identity := &model.AuthContext{UserID: "owner"}

	_, err := svc.Create(context.Background(), identity, "   ")
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestIngredientCreateValidationErrors(t *testing.T) {
	svc := &IngredientService{}
	identity := &model.AuthContext{UserID: "owner"}

	_, err := svc.Create(context.Background(), identity, strings.Repeat("x", maxCatalogNameLength+1))
	if !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
}
