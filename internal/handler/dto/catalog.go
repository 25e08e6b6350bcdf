package dto

import (
	"time"

	"github.com/recipebox/recipebox/internal/model"
)

// CreateCatalogItemRequest is the request body for creating or renaming
// a tag or an ingredient.
type CreateCatalogItemRequest struct {
	Name string `json:"name"`
}

// CatalogItemResponse represents a tag or ingredient in API responses.
type CatalogItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTagResponse converts a Tag to its API representation.
func ToTagResponse(tag *model.Tag) CatalogItemResponse {
	return CatalogItemResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
	}
}

// ToTagListResponse converts a slice of Tags.
func ToTagListResponse(tags []*model.Tag) []CatalogItemResponse {
	out := make([]CatalogItemResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, ToTagResponse(tag))
	}
	return out
}

// ToIngredientResponse converts an Ingredient to its API representation.
func ToIngredientResponse(ingredient *model.Ingredient) CatalogItemResponse {
	return CatalogItemResponse{
		ID:        ingredient.ID,
		Name:      ingredient.Name,
		CreatedAt: ingredient.CreatedAt,
	}
}

// ToIngredientListResponse converts a slice of Ingredients.
func ToIngredientListResponse(ingredients []*model.Ingredient) []CatalogItemResponse {
	out := make([]CatalogItemResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, ToIngredientResponse(ingredient))
	}
	return out
}
