package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recipebox/recipebox/internal/authz"
	"github.com/recipebox/recipebox/internal/metrics"
	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
	"github.com/recipebox/recipebox/internal/storage"
)

// Recipe service errors.
var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidCookTime    = errors.New("cook_time must be a positive number of minutes")
	ErrInvalidPrice       = errors.New("invalid price format")
	ErrInvalidLink        = errors.New("invalid link URL")
	ErrTagNotOwned        = errors.New("tag does not exist or is not owned by the user")
	ErrIngredientNotOwned = errors.New("ingredient does not exist or is not owned by the user")
	ErrInvalidImage       = errors.New("invalid image payload")
)

// priceRegex accepts non-negative decimals with up to two fractional digits.
var priceRegex = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

const (
	maxRecipeNameLength = 255
	maxLinkLength       = 2048
)

// RecipeService handles the per-user recipe catalog, including image lifecycle.
type RecipeService struct {
	repo    *repository.Repository
	policy  authz.Policy
	store   *storage.FileStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repo *repository.Repository, policy authz.Policy, store *storage.FileStore, logger *slog.Logger, recorder metrics.Recorder) *RecipeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		repo:    repo,
		policy:  policy,
		store:   store,
		logger:  logger,
		metrics: recorder,
	}
}

// List returns the identity's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, identity *model.AuthContext) ([]*model.Recipe, error) {
	return s.repo.ListRecipes(ctx, identity.UserID)
}

// CreateRecipeInput defines input for creating a recipe.
type CreateRecipeInput struct {
	Name          string
	CookTime      int
	Price         string
	Link          string
	TagIDs        []string
	IngredientIDs []string
}

// Create validates input, cross-checks tag/ingredient ownership, and writes
// the recipe with its associations in one transaction.
func (s *RecipeService) Create(ctx context.Context, identity *model.AuthContext, input CreateRecipeInput) (*model.Recipe, error) {
	name, err := validateRecipeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateCookTime(input.CookTime); err != nil {
		return nil, err
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := validateLink(input.Link); err != nil {
		return nil, err
	}

	tags, err := s.resolveOwnedTags(ctx, identity, input.TagIDs)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.resolveOwnedIngredients(ctx, identity, input.IngredientIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &model.Recipe{
		ID:          ulid.Make().String(),
		Name:        name,
		CookTime:    input.CookTime,
		Price:       input.Price,
		Link:        input.Link,
		OwnerID:     identity.UserID,
		Tags:        tags,
		Ingredients: ingredients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.metrics.IncRecipeCreated()

	return recipe, nil
}

// Get retrieves a recipe owned by the identity, with nested associations.
// A non-owned recipe is indistinguishable from a missing one.
func (s *RecipeService) Get(ctx context.Context, identity *model.AuthContext, id string) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if !s.policy.Allow(identity, recipe.OwnerID) {
		return nil, ErrRecipeNotFound
	}

	return recipe, nil
}

// ReplaceRecipeInput defines a full update. Omitted tag/ingredient fields
// arrive as nil slices and clear the associations (full replace semantics).
type ReplaceRecipeInput struct {
	Name          string
	CookTime      int
	Price         string
	Link          string
	TagIDs        []string
	IngredientIDs []string
}

// Replace performs a full update: every field takes the supplied value and
// association sets are replaced wholesale.
func (s *RecipeService) Replace(ctx context.Context, identity *model.AuthContext, id string, input ReplaceRecipeInput) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	name, err := validateRecipeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateCookTime(input.CookTime); err != nil {
		return nil, err
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := validateLink(input.Link); err != nil {
		return nil, err
	}

	tags, err := s.resolveOwnedTags(ctx, identity, input.TagIDs)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.resolveOwnedIngredients(ctx, identity, input.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe.Name = name
	recipe.CookTime = input.CookTime
	recipe.Price = input.Price
	recipe.Link = input.Link
	recipe.Tags = tags
	recipe.Ingredients = ingredients
	recipe.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateRecipe(ctx, recipe, true, true); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to replace recipe: %w", err)
	}

	s.metrics.IncRecipeUpdated()

	return recipe, nil
}

// UpdateRecipeInput defines a partial update.
// Nil fields, including relational ones, are left untouched.
type UpdateRecipeInput struct {
	Name          *string
	CookTime      *int
	Price         *string
	Link          *string
	TagIDs        *[]string
	IngredientIDs *[]string
}

// PartialUpdate changes only the supplied fields.
func (s *RecipeService) PartialUpdate(ctx context.Context, identity *model.AuthContext, id string, input UpdateRecipeInput) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateRecipeName(*input.Name)
		if err != nil {
			return nil, err
		}
		recipe.Name = name
	}

	if input.CookTime != nil {
		if err := validateCookTime(*input.CookTime); err != nil {
			return nil, err
		}
		recipe.CookTime = *input.CookTime
	}

	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
		recipe.Price = *input.Price
	}

	if input.Link != nil {
		if err := validateLink(*input.Link); err != nil {
			return nil, err
		}
		recipe.Link = *input.Link
	}

	replaceTags := input.TagIDs != nil
	if replaceTags {
		tags, err := s.resolveOwnedTags(ctx, identity, *input.TagIDs)
		if err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}

	replaceIngredients := input.IngredientIDs != nil
	if replaceIngredients {
		ingredients, err := s.resolveOwnedIngredients(ctx, identity, *input.IngredientIDs)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	recipe.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateRecipe(ctx, recipe, replaceTags, replaceIngredients); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	s.metrics.IncRecipeUpdated()

	return recipe, nil
}

// Delete removes a recipe, its associations, and its stored image file.
// The file is removed after the transaction commits; a failed removal is
// logged, never surfaced.
func (s *RecipeService) Delete(ctx context.Context, identity *model.AuthContext, id string) error {
	recipe, err := s.Get(ctx, identity, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if recipe.HasImage() {
		if err := s.store.Remove(recipe.ImagePath); err != nil {
			s.logger.Warn("failed to remove recipe image file",
				slog.String("recipe_id", id),
				slog.String("image", recipe.ImagePath),
				slog.String("error", err.Error()),
			)
		}
	}

	s.metrics.IncRecipeDeleted()

	return nil
}

// UploadImage validates and stores an image payload for a recipe owned by
// the identity, replacing any previous image file.
func (s *RecipeService) UploadImage(ctx context.Context, identity *model.AuthContext, id string, payload []byte) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	ref, err := s.store.SaveRecipeImage(payload)
	if err != nil {
		if errors.Is(err, storage.ErrNotAnImage) {
			s.metrics.IncImageUploaded("rejected")
			return nil, ErrInvalidImage
		}
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	if err := s.repo.SetRecipeImage(ctx, id, ref); err != nil {
		// Roll back the file write so a failed update leaves nothing behind.
		_ = s.store.Remove(ref)
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}

	if recipe.HasImage() && recipe.ImagePath != ref {
		if err := s.store.Remove(recipe.ImagePath); err != nil {
			s.logger.Warn("failed to remove replaced image file",
				slog.String("recipe_id", id),
				slog.String("image", recipe.ImagePath),
				slog.String("error", err.Error()),
			)
		}
	}

	recipe.ImagePath = ref
	s.metrics.IncImageUploaded("success")

	return recipe, nil
}

// resolveOwnedTags verifies every id exists and belongs to the identity.
func (s *RecipeService) resolveOwnedTags(ctx context.Context, identity *model.AuthContext, ids []string) ([]*model.Tag, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	tags, err := s.repo.GetOwnedTags(ctx, unique, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	if len(tags) != len(unique) {
		return nil, ErrTagNotOwned
	}

	return tags, nil
}

// resolveOwnedIngredients verifies every id exists and belongs to the identity.
func (s *RecipeService) resolveOwnedIngredients(ctx context.Context, identity *model.AuthContext, ids []string) ([]*model.Ingredient, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	ingredients, err := s.repo.GetOwnedIngredients(ctx, unique, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ingredients: %w", err)
	}

	if len(ingredients) != len(unique) {
		return nil, ErrIngredientNotOwned
	}

	return ingredients, nil
}

func validateRecipeName(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", ErrNameRequired
	}
	if len(cleaned) > maxRecipeNameLength {
		return "", ErrNameTooLong
	}
	return cleaned, nil
}

func validateCookTime(minutes int) error {
	if minutes <= 0 {
		return ErrInvalidCookTime
	}
	return nil
}

func validatePrice(price string) error {
	if !priceRegex.MatchString(price) {
		return ErrInvalidPrice
	}
	return nil
}

func validateLink(link string) error {
	if link == "" {
		return nil // Optional field
	}
	if len(link) > maxLinkLength {
		return ErrInvalidLink
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return ErrInvalidLink
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidLink
	}
	if parsed.Host == "" {
		return ErrInvalidLink
	}

	return nil
}

// dedupe returns the unique ids preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
