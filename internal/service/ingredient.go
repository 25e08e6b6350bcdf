package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recipebox/recipebox/internal/authz"
	"github.com/recipebox/recipebox/internal/metrics"
	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
)

// ErrIngredientNotFound is returned for missing or non-owned ingredients.
var ErrIngredientNotFound = errors.New("ingredient not found")

// IngredientService handles the per-user ingredient catalog.
type IngredientService struct {
	repo    *repository.Repository
	policy  authz.Policy
	metrics metrics.Recorder
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo *repository.Repository, policy authz.Policy, recorder metrics.Recorder) *IngredientService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &IngredientService{
		repo:    repo,
		policy:  policy,
		metrics: recorder,
	}
}

// List returns the identity's ingredients, ordered by name descending.
func (s *IngredientService) List(ctx context.Context, identity *model.AuthContext) ([]*model.Ingredient, error) {
	return s.repo.ListIngredients(ctx, identity.UserID)
}

// Create adds an ingredient owned by the identity.
func (s *IngredientService) Create(ctx context.Context, identity *model.AuthContext, name string) (*model.Ingredient, error) {
	cleaned, err := validateCatalogName(name)
	if err != nil {
		return nil, err
	}

	ingredient := &model.Ingredient{
		ID:        ulid.Make().String(),
		Name:      cleaned,
		OwnerID:   identity.UserID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateIngredient(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	s.metrics.IncIngredientCreated()

	return ingredient, nil
}

// Update renames an ingredient owned by the identity.
// A non-owned ingredient is indistinguishable from a missing one.
func (s *IngredientService) Update(ctx context.Context, identity *model.AuthContext, id, name string) (*model.Ingredient, error) {
	cleaned, err := validateCatalogName(name)
	if err != nil {
		return nil, err
	}

	ingredient, err := s.getOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	ingredient.Name = cleaned

	if err := s.repo.UpdateIngredient(ctx, ingredient); err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}

	return ingredient, nil
}

// Delete removes an ingredient owned by the identity along with its recipe associations.
func (s *IngredientService) Delete(ctx context.Context, identity *model.AuthContext, id string) error {
	if _, err := s.getOwned(ctx, identity, id); err != nil {
		return err
	}

	if err := s.repo.DeleteIngredient(ctx, id); err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return ErrIngredientNotFound
		}
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	return nil
}

func (s *IngredientService) getOwned(ctx context.Context, identity *model.AuthContext, id string) (*model.Ingredient, error) {
	ingredient, err := s.repo.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}

	if !s.policy.Allow(identity, ingredient.OwnerID) {
		return nil, ErrIngredientNotFound
	}

	return ingredient, nil
}
