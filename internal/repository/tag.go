package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/recipebox/recipebox/internal/model"
)

// Common errors for tag repository operations.
var (
	ErrTagNotFound = errors.New("tag not found")
)

// CreateTag inserts a new tag owned by its owner.
func (r *Repository) CreateTag(ctx context.Context, tag *model.Tag) error {
	query := `
		INSERT INTO tags (id, name, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		tag.ID,
		tag.Name,
		tag.OwnerID,
		tag.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// GetTagByID retrieves a tag by its ID regardless of owner.
// Callers must apply the ownership policy before exposing the row.
func (r *Repository) GetTagByID(ctx context.Context, id string) (*model.Tag, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM tags
		WHERE id = $1
	`

	var tag model.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tag.ID,
		&tag.Name,
		&tag.OwnerID,
		&tag.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag by ID: %w", err)
	}

	return &tag, nil
}

// ListTags retrieves all tags owned by ownerID, ordered by name descending.
func (r *Repository) ListTags(ctx context.Context, ownerID string) ([]*model.Tag, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM tags
		WHERE owner_id = $1
		ORDER BY name DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// UpdateTag renames an existing tag.
func (r *Repository) UpdateTag(ctx context.Context, tag *model.Tag) error {
	query := `
		UPDATE tags
		SET name = $2
		WHERE id = $1
	`

	commandTag, err := r.pool.Exec(ctx, query, tag.ID, tag.Name)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrTagNotFound
	}

	return nil
}

// DeleteTag removes a tag and its recipe associations.
func (r *Repository) DeleteTag(ctx context.Context, id string) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE tag_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete tag associations: %w", err)
		}

		commandTag, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}

		if commandTag.RowsAffected() == 0 {
			return ErrTagNotFound
		}

		return nil
	})
}

// GetOwnedTags returns the subset of ids that exist and belong to ownerID.
// Used to cross-check tag ids before attaching them to a recipe.
func (r *Repository) GetOwnedTags(ctx context.Context, ids []string, ownerID string) ([]*model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, owner_id, created_at
		FROM tags
		WHERE id = ANY($1) AND owner_id = $2
	`

	rows, err := r.pool.Query(ctx, query, pq.Array(ids), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows pgx.Rows) ([]*model.Tag, error) {
	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(
			&tag.ID,
			&tag.Name,
			&tag.OwnerID,
			&tag.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}
