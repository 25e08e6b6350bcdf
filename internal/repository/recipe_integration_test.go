//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/recipebox/recipebox/internal/testutil"
)

// ============================================================================
// Recipe Repository Integration Tests
// ============================================================================

func TestIntegrationRecipeRepository_CreateWithAssociations(t *testing.T) {
	ctx, repo, owner := newRecipeTestEnv(t)

	tag := testutil.NewTestTag(t, owner, "Dessert")
	if err := repo.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	ingredient := testutil.NewTestIngredient(t, owner, "Sugar")
	if err := repo.CreateIngredient(ctx, ingredient); err != nil {
		t.Fatalf("CreateIngredient failed: %v", err)
	}

	recipe := testutil.NewTestRecipe(t, owner, "Chocolate Cake")
	recipe.Tags = append(recipe.Tags, tag)
	recipe.Ingredients = append(recipe.Ingredients, ingredient)

	if err := repo.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	retrieved, err := repo.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("GetRecipeByID failed: %v", err)
	}

	if retrieved.Name != "Chocolate Cake" {
		t.Errorf("Name mismatch: got %q", retrieved.Name)
	}
	if retrieved.Price != "9.50" {
		t.Errorf("Price mismatch: got %q, want %q", retrieved.Price, "9.50")
	}
	if len(retrieved.Tags) != 1 || retrieved.Tags[0].ID != tag.ID {
		t.Errorf("expected one attached tag, got %d", len(retrieved.Tags))
	}
	if len(retrieved.Ingredients) != 1 || retrieved.Ingredients[0].ID != ingredient.ID {
		t.Errorf("expected one attached ingredient, got %d", len(retrieved.Ingredients))
	}
}

func TestIntegrationRecipeRepository_ListNewestFirst(t *testing.T) {
	ctx, repo, owner := newRecipeTestEnv(t)

	first := testutil.NewTestRecipe(t, owner, "First")
	second := testutil.NewTestRecipe(t, owner, "Second")

	if err := repo.CreateRecipe(ctx, first); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	if err := repo.CreateRecipe(ctx, second); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipes, err := repo.ListRecipes(ctx, owner)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}

	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	// ULID primary keys are monotonic, so descending id means newest first
	if recipes[0].Name != "Second" || recipes[1].Name != "First" {
		t.Errorf("expected newest first, got [%s, %s]", recipes[0].Name, recipes[1].Name)
	}
}

func TestIntegrationRecipeRepository_ListScopedToOwner(t *testing.T) {
	ctx, repo, owner := newRecipeTestEnv(t)

	other := testutil.NewTestUser(t, testutil.UniqueEmail("other"))
	if err := repo.CreateUser(ctx, other); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.CreateRecipe(ctx, testutil.NewTestRecipe(t, owner, "Mine")); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	if err := repo.CreateRecipe(ctx, testutil.NewTestRecipe(t, other.ID, "Theirs")); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipes, err := repo.ListRecipes(ctx, owner)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}

	if len(recipes) != 1 || recipes[0].Name != "Mine" {
		t.Errorf("expected only the owner's recipe, got %d", len(recipes))
	}
}

func TestIntegrationRecipeRepository_UpdateReplacesAssociations(t *testing.T) {
	ctx, repo, owner := newRecipeTestEnv(t)

	tagA := testutil.NewTestTag(t, owner, "A")
	tagB := testutil.NewTestTag(t, owner, "B")
	if err := repo.CreateTag(ctx, tagA); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := repo.CreateTag(ctx, tagB); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	recipe := testutil.NewTestRecipe(t, owner, "Soup")
	recipe.Tags = append(recipe.Tags, tagA)
	if err := repo.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	recipe.Tags = recipe.Tags[:0]
	recipe.Tags = append(recipe.Tags, tagB)
	if err := repo.UpdateRecipe(ctx, recipe, true, false); err != nil {
		t.Fatalf("UpdateRecipe failed: %v", err)
	}

	retrieved, err := repo.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("GetRecipeByID failed: %v", err)
	}

	if len(retrieved.Tags) != 1 || retrieved.Tags[0].ID != tagB.ID {
		t.Errorf("expected tag set replaced with B, got %d tags", len(retrieved.Tags))
	}
}

func TestIntegrationRecipeRepository_Delete(t *testing.T) {
	ctx, repo, owner := newRecipeTestEnv(t)

	tag := testutil.NewTestTag(t, owner, "Dessert")
	if err := repo.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	recipe := testutil.NewTestRecipe(t, owner, "Gone")
	recipe.Tags = append(recipe.Tags, tag)
	if err := repo.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if err := repo.DeleteRecipe(ctx, recipe.ID); err != nil {
		t.Fatalf("DeleteRecipe failed: %v", err)
	}

	_, err := repo.GetRecipeByID(ctx, recipe.ID)
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("Expected ErrRecipeNotFound, got: %v", err)
	}

	// The tag itself survives recipe deletion
	if _, err := repo.GetTagByID(ctx, tag.ID); err != nil {
		t.Errorf("tag should survive recipe deletion, got: %v", err)
	}
}

func TestIntegrationRecipeRepository_SetImage(t *testing.T) {
	ctx, repo, owner := newRecipeTestEnv(t)

	recipe := testutil.NewTestRecipe(t, owner, "Pictured")
	if err := repo.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if err := repo.SetRecipeImage(ctx, recipe.ID, "recipe/abc.png"); err != nil {
		t.Fatalf("SetRecipeImage failed: %v", err)
	}

	retrieved, err := repo.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("GetRecipeByID failed: %v", err)
	}
	if retrieved.ImagePath != "recipe/abc.png" {
		t.Errorf("ImagePath mismatch: got %q", retrieved.ImagePath)
	}

	if err := repo.SetRecipeImage(ctx, "missing-id", "recipe/x.png"); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("Expected ErrRecipeNotFound for missing recipe, got: %v", err)
	}
}

func newRecipeTestEnv(t *testing.T) (context.Context, *Repository, string) {
	t.Helper()
	return newCatalogTestEnv(t)
}
