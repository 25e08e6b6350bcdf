package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/recipebox/recipebox/internal/model"
)

// Common errors for ingredient repository operations.
var (
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// CreateIngredient inserts a new ingredient owned by its owner.
func (r *Repository) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		ingredient.ID,
		ingredient.Name,
		ingredient.OwnerID,
		ingredient.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}

	return nil
}

// GetIngredientByID retrieves an ingredient by its ID regardless of owner.
// Callers must apply the ownership policy before exposing the row.
func (r *Repository) GetIngredientByID(ctx context.Context, id string) (*model.Ingredient, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM ingredients
		WHERE id = $1
	`

	var ingredient model.Ingredient
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ingredient.ID,
		&ingredient.Name,
		&ingredient.OwnerID,
		&ingredient.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient by ID: %w", err)
	}

	return &ingredient, nil
}

// ListIngredients retrieves all ingredients owned by ownerID, ordered by name descending.
func (r *Repository) ListIngredients(ctx context.Context, ownerID string) ([]*model.Ingredient, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM ingredients
		WHERE owner_id = $1
		ORDER BY name DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

// UpdateIngredient renames an existing ingredient.
func (r *Repository) UpdateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2
		WHERE id = $1
	`

	commandTag, err := r.pool.Exec(ctx, query, ingredient.ID, ingredient.Name)
	if err != nil {
		return fmt.Errorf("failed to update ingredient: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrIngredientNotFound
	}

	return nil
}

// DeleteIngredient removes an ingredient and its recipe associations.
func (r *Repository) DeleteIngredient(ctx context.Context, id string) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE ingredient_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete ingredient associations: %w", err)
		}

		commandTag, err := tx.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete ingredient: %w", err)
		}

		if commandTag.RowsAffected() == 0 {
			return ErrIngredientNotFound
		}

		return nil
	})
}

// GetOwnedIngredients returns the subset of ids that exist and belong to ownerID.
// Used to cross-check ingredient ids before attaching them to a recipe.
func (r *Repository) GetOwnedIngredients(ctx context.Context, ids []string, ownerID string) ([]*model.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, owner_id, created_at
		FROM ingredients
		WHERE id = ANY($1) AND owner_id = $2
	`

	rows, err := r.pool.Query(ctx, query, pq.Array(ids), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned ingredients: %w", err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

func scanIngredients(rows pgx.Rows) ([]*model.Ingredient, error) {
	var ingredients []*model.Ingredient
	for rows.Next() {
		var ingredient model.Ingredient
		if err := rows.Scan(
			&ingredient.ID,
			&ingredient.Name,
			&ingredient.OwnerID,
			&ingredient.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, &ingredient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}

	return ingredients, nil
}
