package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/recipebox/recipebox/internal/model"
)

// Common errors for token repository operations.
var (
	ErrTokenNotFound = errors.New("token not found")
)

// CreateToken inserts a newly issued token.
func (r *Repository) CreateToken(ctx context.Context, token *model.Token) error {
	query := `
		INSERT INTO tokens (id, user_id, secret_hash, prefix, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.SecretHash,
		token.Prefix,
		token.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetTokensByPrefix retrieves all active tokens matching a prefix.
// Used during authentication to find candidate tokens for verification.
func (r *Repository) GetTokensByPrefix(ctx context.Context, prefix string) ([]*model.Token, error) {
	query := `
		SELECT id, user_id, secret_hash, prefix, revoked_at, last_used_at, created_at
		FROM tokens
		WHERE prefix = $1 AND revoked_at IS NULL
	`

	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens by prefix: %w", err)
	}
	defer rows.Close()

	var tokens []*model.Token
	for rows.Next() {
		var token model.Token
		if err := rows.Scan(
			&token.ID,
			&token.UserID,
			&token.SecretHash,
			&token.Prefix,
			&token.RevokedAt,
			&token.LastUsedAt,
			&token.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, &token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tokens: %w", err)
	}

	return tokens, nil
}

// UpdateTokenLastUsed records when a token was last presented.
func (r *Repository) UpdateTokenLastUsed(ctx context.Context, id string) error {
	query := `
		UPDATE tokens
		SET last_used_at = $2
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update token last used: %w", err)
	}

	return nil
}

// RevokeToken marks a token revoked so it no longer authenticates.
func (r *Repository) RevokeToken(ctx context.Context, id string) error {
	query := `
		UPDATE tokens
		SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrTokenNotFound
	}

	return nil
}
