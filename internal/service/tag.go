package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recipebox/recipebox/internal/authz"
	"github.com/recipebox/recipebox/internal/metrics"
	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
)

// Catalog validation errors shared by tags and ingredients.
var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name exceeds maximum length")
	ErrTagNotFound  = errors.New("tag not found")
)

const maxCatalogNameLength = 100

// TagService handles the per-user tag catalog.
type TagService struct {
	repo    *repository.Repository
	policy  authz.Policy
	metrics metrics.Recorder
}

// NewTagService creates a new TagService.
func NewTagService(repo *repository.Repository, policy authz.Policy, recorder metrics.Recorder) *TagService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TagService{
		repo:    repo,
		policy:  policy,
		metrics: recorder,
	}
}

// List returns the identity's tags, ordered by name descending.
func (s *TagService) List(ctx context.Context, identity *model.AuthContext) ([]*model.Tag, error) {
	return s.repo.ListTags(ctx, identity.UserID)
}

// Create adds a tag owned by the identity.
func (s *TagService) Create(ctx context.Context, identity *model.AuthContext, name string) (*model.Tag, error) {
	cleaned, err := validateCatalogName(name)
	if err != nil {
		return nil, err
	}

	tag := &model.Tag{
		ID:        ulid.Make().String(),
		Name:      cleaned,
		OwnerID:   identity.UserID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	s.metrics.IncTagCreated()

	return tag, nil
}

// Update renames a tag owned by the identity.
// A non-owned tag is indistinguishable from a missing one.
func (s *TagService) Update(ctx context.Context, identity *model.AuthContext, id, name string) (*model.Tag, error) {
	cleaned, err := validateCatalogName(name)
	if err != nil {
		return nil, err
	}

	tag, err := s.getOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	tag.Name = cleaned

	if err := s.repo.UpdateTag(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

// Delete removes a tag owned by the identity along with its recipe associations.
func (s *TagService) Delete(ctx context.Context, identity *model.AuthContext, id string) error {
	if _, err := s.getOwned(ctx, identity, id); err != nil {
		return err
	}

	if err := s.repo.DeleteTag(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}

func (s *TagService) getOwned(ctx context.Context, identity *model.AuthContext, id string) (*model.Tag, error) {
	tag, err := s.repo.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	if !s.policy.Allow(identity, tag.OwnerID) {
		return nil, ErrTagNotFound
	}

	return tag, nil
}

// validateCatalogName trims and validates a tag or ingredient name.
func validateCatalogName(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", ErrNameRequired
	}
	if len(cleaned) > maxCatalogNameLength {
		return "", ErrNameTooLong
	}
	return cleaned, nil
}
