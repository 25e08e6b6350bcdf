//go:build integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/repository"
	"github.com/recipebox/recipebox/internal/testutil"
)

// ============================================================================
// User Service Integration Tests
// ============================================================================

func TestIntegrationUserService_Authenticate(t *testing.T) {
	ctx, repo := newServiceTestEnv(t)

	svc := NewUserService(repo, 6, nil)

	email := testutil.UniqueEmail("login")
	if _, err := svc.Register(ctx, RegisterInput{
		Email:    email,
		Password: "testpassword",
		Name:     "Login User",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := svc.Authenticate(ctx, email, "testpassword")
	if err != nil {
		t.Fatalf("Authenticate with correct password failed: %v", err)
	}
	if _, err := auth.ParseToken(token); err != nil {
		t.Errorf("issued token is malformed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, email, "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, testutil.UniqueEmail("ghost"), "testpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIntegrationUserService_AuthenticateInactiveUser(t *testing.T) {
	ctx, repo := newServiceTestEnv(t)

	svc := NewUserService(repo, 6, nil)

	email := testutil.UniqueEmail("inactive")
	user, err := svc.Register(ctx, RegisterInput{
		Email:    email,
		Password: "testpassword",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user.IsActive = false
	if err := repo.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, email, "testpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive user: expected ErrInvalidCredentials, got %v", err)
	}
}

// newServiceTestEnv connects, locks, and resets the schema.
func newServiceTestEnv(t *testing.T) (context.Context, *repository.Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}
