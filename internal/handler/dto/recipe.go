package dto

import (
	"time"

	"github.com/recipebox/recipebox/internal/model"
)

// CreateRecipeRequest represents the request body for creating a recipe.
type CreateRecipeRequest struct {
	Name        string   `json:"name"`
	CookTime    int      `json:"cook_time"`
	Price       string   `json:"price"`
	Link        string   `json:"link,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// ReplaceRecipeRequest represents a full update. Omitted tags/ingredients
// clear the associations (full replace semantics).
type ReplaceRecipeRequest struct {
	Name        string   `json:"name"`
	CookTime    int      `json:"cook_time"`
	Price       string   `json:"price"`
	Link        string   `json:"link,omitempty"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// UpdateRecipeRequest represents a partial update.
// Omitted fields, including relational ones, are left untouched.
type UpdateRecipeRequest struct {
	Name        *string   `json:"name,omitempty"`
	CookTime    *int      `json:"cook_time,omitempty"`
	Price       *string   `json:"price,omitempty"`
	Link        *string   `json:"link,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
}

// RecipeResponse is the summary representation used in listings:
// tag/ingredient id lists, no nesting.
type RecipeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CookTime    int       `json:"cook_time"`
	Price       string    `json:"price"`
	Link        string    `json:"link,omitempty"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags"`
	Ingredients []string  `json:"ingredients"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecipeDetailResponse is the detail representation with nested
// tag and ingredient objects.
type RecipeDetailResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	CookTime    int                   `json:"cook_time"`
	Price       string                `json:"price"`
	Link        string                `json:"link,omitempty"`
	Image       string                `json:"image,omitempty"`
	Tags        []CatalogItemResponse `json:"tags"`
	Ingredients []CatalogItemResponse `json:"ingredients"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// RecipeImageResponse is returned by the image upload endpoint.
type RecipeImageResponse struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

// ToRecipeResponse converts a Recipe to its summary representation.
func ToRecipeResponse(recipe *model.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		CookTime:    recipe.CookTime,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.ImagePath,
		Tags:        recipe.TagIDs(),
		Ingredients: recipe.IngredientIDs(),
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}

// ToRecipeListResponse converts a slice of Recipes to summary representations.
func ToRecipeListResponse(recipes []*model.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, ToRecipeResponse(recipe))
	}
	return out
}

// ToRecipeDetailResponse converts a Recipe to its detail representation.
func ToRecipeDetailResponse(recipe *model.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		CookTime:    recipe.CookTime,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.ImagePath,
		Tags:        ToTagListResponse(recipe.Tags),
		Ingredients: ToIngredientListResponse(recipe.Ingredients),
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}
