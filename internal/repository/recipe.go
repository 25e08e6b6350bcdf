package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/recipebox/recipebox/internal/model"
)

// Common errors for recipe repository operations.
var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// CreateRecipe inserts a recipe row and its tag/ingredient associations
// in one transaction.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO recipes (id, name, cook_time, price, link, image_path, owner_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err := tx.Exec(ctx, query,
			recipe.ID,
			recipe.Name,
			recipe.CookTime,
			recipe.Price,
			recipe.Link,
			recipe.ImagePath,
			recipe.OwnerID,
			recipe.CreatedAt,
			recipe.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		if err := insertRecipeTags(ctx, tx, recipe.ID, recipe.TagIDs()); err != nil {
			return err
		}

		return insertRecipeIngredients(ctx, tx, recipe.ID, recipe.IngredientIDs())
	})
}

// GetRecipeByID retrieves a recipe with its associations regardless of owner.
// Callers must apply the ownership policy before exposing the row.
func (r *Repository) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error) {
	query := `
		SELECT id, name, cook_time, price::text, link, image_path, owner_id, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`

	var recipe model.Recipe
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.CookTime,
		&recipe.Price,
		&recipe.Link,
		&recipe.ImagePath,
		&recipe.OwnerID,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	if err := r.loadAssociations(ctx, []*model.Recipe{&recipe}); err != nil {
		return nil, err
	}

	return &recipe, nil
}

// ListRecipes retrieves all recipes owned by ownerID with their associations,
// ordered by primary key descending (ULIDs, so newest first).
func (r *Repository) ListRecipes(ctx context.Context, ownerID string) ([]*model.Recipe, error) {
	query := `
		SELECT id, name, cook_time, price::text, link, image_path, owner_id, created_at, updated_at
		FROM recipes
		WHERE owner_id = $1
		ORDER BY id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*model.Recipe
	for rows.Next() {
		var recipe model.Recipe
		if err := rows.Scan(
			&recipe.ID,
			&recipe.Name,
			&recipe.CookTime,
			&recipe.Price,
			&recipe.Link,
			&recipe.ImagePath,
			&recipe.OwnerID,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	if err := r.loadAssociations(ctx, recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// UpdateRecipe persists recipe field changes and, when requested, replaces
// the tag/ingredient association sets. Runs in one transaction.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe, replaceTags, replaceIngredients bool) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE recipes
			SET name = $2, cook_time = $3, price = $4, link = $5, updated_at = $6
			WHERE id = $1
		`

		commandTag, err := tx.Exec(ctx, query,
			recipe.ID,
			recipe.Name,
			recipe.CookTime,
			recipe.Price,
			recipe.Link,
			recipe.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if commandTag.RowsAffected() == 0 {
			return ErrRecipeNotFound
		}

		if replaceTags {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
				return fmt.Errorf("failed to clear recipe tags: %w", err)
			}
			if err := insertRecipeTags(ctx, tx, recipe.ID, recipe.TagIDs()); err != nil {
				return err
			}
		}

		if replaceIngredients {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
				return fmt.Errorf("failed to clear recipe ingredients: %w", err)
			}
			if err := insertRecipeIngredients(ctx, tx, recipe.ID, recipe.IngredientIDs()); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteRecipe removes a recipe and its association rows in one transaction.
// The caller is responsible for removing the stored image file afterwards.
func (r *Repository) DeleteRecipe(ctx context.Context, id string) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete recipe tag associations: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete recipe ingredient associations: %w", err)
		}

		commandTag, err := tx.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}

		if commandTag.RowsAffected() == 0 {
			return ErrRecipeNotFound
		}

		return nil
	})
}

// SetRecipeImage updates the stored image path for a recipe.
func (r *Repository) SetRecipeImage(ctx context.Context, id, imagePath string) error {
	query := `
		UPDATE recipes
		SET image_path = $2, updated_at = now()
		WHERE id = $1
	`

	commandTag, err := r.pool.Exec(ctx, query, id, imagePath)
	if err != nil {
		return fmt.Errorf("failed to set recipe image: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// loadAssociations populates Tags and Ingredients for the given recipes
// with two batched queries.
func (r *Repository) loadAssociations(ctx context.Context, recipes []*model.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[string]*model.Recipe, len(recipes))
	ids := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
		ids = append(ids, recipe.ID)
	}

	tagQuery := `
		SELECT rt.recipe_id, t.id, t.name, t.owner_id, t.created_at
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY t.name DESC
	`

	rows, err := r.pool.Query(ctx, tagQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID string
		var tag model.Tag
		if err := rows.Scan(&recipeID, &tag.ID, &tag.Name, &tag.OwnerID, &tag.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.Tags = append(recipe.Tags, &tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating recipe tags: %w", err)
	}

	ingredientQuery := `
		SELECT ri.recipe_id, i.id, i.name, i.owner_id, i.created_at
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY i.name DESC
	`

	ingredientRows, err := r.pool.Query(ctx, ingredientQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer ingredientRows.Close()

	for ingredientRows.Next() {
		var recipeID string
		var ingredient model.Ingredient
		if err := ingredientRows.Scan(&recipeID, &ingredient.ID, &ingredient.Name, &ingredient.OwnerID, &ingredient.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.Ingredients = append(recipe.Ingredients, &ingredient)
		}
	}
	if err := ingredientRows.Err(); err != nil {
		return fmt.Errorf("error iterating recipe ingredients: %w", err)
	}

	return nil
}

func insertRecipeTags(ctx context.Context, tx pgx.Tx, recipeID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2)`,
			recipeID, tagID,
		); err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagID, err)
		}
	}
	return nil
}

func insertRecipeIngredients(ctx context.Context, tx pgx.Tx, recipeID string, ingredientIDs []string) error {
	for _, ingredientID := range ingredientIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES ($1, $2)`,
			recipeID, ingredientID,
		); err != nil {
			return fmt.Errorf("failed to attach ingredient %s: %w", ingredientID, err)
		}
	}
	return nil
}
