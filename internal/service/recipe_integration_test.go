//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/recipebox/recipebox/internal/authz"
	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
	"github.com/recipebox/recipebox/internal/storage"
	"github.com/recipebox/recipebox/internal/testutil"
)

// ============================================================================
// Recipe Service Integration Tests
// ============================================================================

type recipeFixture struct {
	svc        *RecipeService
	identity   *model.AuthContext
	recipe     *model.Recipe
	tag        *model.Tag
	ingredient *model.Ingredient
}

// newRecipeFixture seeds an owner with a tag, an ingredient, and a recipe
// associated with both.
func newRecipeFixture(t *testing.T, ctx context.Context, repo *repository.Repository) *recipeFixture {
	t.Helper()

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("owner"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	identity := &model.AuthContext{UserID: owner.ID, Email: owner.Email}

	tag := testutil.NewTestTag(t, owner.ID, "Dinner")
	if err := repo.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	ingredient := testutil.NewTestIngredient(t, owner.ID, "Salt")
	if err := repo.CreateIngredient(ctx, ingredient); err != nil {
		t.Fatalf("CreateIngredient failed: %v", err)
	}

	svc := NewRecipeService(repo, authz.NewOwnerPolicy(), storage.NewFileStore(t.TempDir()), nil, nil)

	recipe, err := svc.Create(ctx, identity, CreateRecipeInput{
		Name:          "Pasta",
		CookTime:      25,
		Price:         "12.50",
		TagIDs:        []string{tag.ID},
		IngredientIDs: []string{ingredient.ID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	return &recipeFixture{
		svc:        svc,
		identity:   identity,
		recipe:     recipe,
		tag:        tag,
		ingredient: ingredient,
	}
}

func TestIntegrationRecipeService_PartialUpdatePreservesAssociations(t *testing.T) {
	ctx, repo := newServiceTestEnv(t)
	fx := newRecipeFixture(t, ctx, repo)

	newName := "Pasta Carbonara"
	if _, err := fx.svc.PartialUpdate(ctx, fx.identity, fx.recipe.ID, UpdateRecipeInput{
		Name: &newName,
	}); err != nil {
		t.Fatalf("PartialUpdate failed: %v", err)
	}

	// Re-read to assert what was persisted, not the returned value
	fetched, err := fx.svc.Get(ctx, fx.identity, fx.recipe.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if fetched.Name != newName {
		t.Errorf("Name = %q, want %q", fetched.Name, newName)
	}
	if len(fetched.Tags) != 1 || fetched.Tags[0].ID != fx.tag.ID {
		t.Errorf("omitted tags field must preserve associations, got %v", fetched.TagIDs())
	}
	if len(fetched.Ingredients) != 1 || fetched.Ingredients[0].ID != fx.ingredient.ID {
		t.Errorf("omitted ingredients field must preserve associations, got %v", fetched.IngredientIDs())
	}
}

func TestIntegrationRecipeService_ReplaceClearsOmittedAssociations(t *testing.T) {
	ctx, repo := newServiceTestEnv(t)
	fx := newRecipeFixture(t, ctx, repo)

	if _, err := fx.svc.Replace(ctx, fx.identity, fx.recipe.ID, ReplaceRecipeInput{
		Name:     "Plain Pasta",
		CookTime: 30,
		Price:    "13.00",
	}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	fetched, err := fx.svc.Get(ctx, fx.identity, fx.recipe.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if len(fetched.Tags) != 0 {
		t.Errorf("full replace without tags must clear them, got %v", fetched.TagIDs())
	}
	if len(fetched.Ingredients) != 0 {
		t.Errorf("full replace without ingredients must clear them, got %v", fetched.IngredientIDs())
	}

	// Clearing associations must not delete the catalog rows themselves
	if _, err := repo.GetTagByID(ctx, fx.tag.ID); err != nil {
		t.Errorf("tag row should survive association clearing: %v", err)
	}
	if _, err := repo.GetIngredientByID(ctx, fx.ingredient.ID); err != nil {
		t.Errorf("ingredient row should survive association clearing: %v", err)
	}
}
