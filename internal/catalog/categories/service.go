package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

// Service carries the category commands: each method validates against
// current stored state before touching it.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, search string, page shared.Pagination) ([]Category, int, error) {
	return s.repo.List(ctx, search, page)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	return s.repo.Get(ctx, id)
}

// Create rejects a name already used by another category. The pre-check
// yields the precise error; the unique index on the table stays
// authoritative under concurrent creators.
func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return Category{}, fmt.Errorf("check name: %w", err)
	}
	if existing != nil {
		return Category{}, fmt.Errorf("%w: category %q", shared.ErrUniqueConstraint, name)
	}

	return s.repo.Create(ctx, name)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (Category, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, fmt.Errorf("get category: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Category{}, fmt.Errorf("%w: category name is required", shared.ErrValidation)
		}
		other, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return Category{}, fmt.Errorf("check name: %w", err)
		}
		if other != nil && other.ID != id {
			return Category{}, fmt.Errorf("%w: category %q", shared.ErrUniqueConstraint, name)
		}
		current.Name = name
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, current)
}

// Delete refuses to remove a category any item still references.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get category: %w", err)
	}

	items, err := s.repo.CountItems(ctx, id)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if items > 0 {
		return fmt.Errorf("%w: %d items reference this category", shared.ErrHasChildren, items)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
