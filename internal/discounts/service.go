package discounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Discount, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Discount, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateDiscountRequest) (Discount, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Discount{}, fmt.Errorf("%w: discount name is required", shared.ErrValidation)
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return Discount{}, fmt.Errorf("%w: validity window ends before it starts", shared.ErrValidation)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return Discount{}, fmt.Errorf("check name: %w", err)
	}
	if existing != nil {
		return Discount{}, fmt.Errorf("%w: discount %q", shared.ErrUniqueConstraint, name)
	}

	return s.repo.Create(ctx, Discount{
		Name:     name,
		Type:     req.Type,
		Value:    req.Value,
		Scope:    req.Scope,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateDiscountRequest) (Discount, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Discount{}, fmt.Errorf("get discount: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Discount{}, fmt.Errorf("%w: discount name is required", shared.ErrValidation)
		}
		other, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return Discount{}, fmt.Errorf("check name: %w", err)
		}
		if other != nil && other.ID != id {
			return Discount{}, fmt.Errorf("%w: discount %q", shared.ErrUniqueConstraint, name)
		}
		current.Name = name
	}
	if req.Type != nil {
		current.Type = *req.Type
	}
	if req.Value != nil {
		current.Value = *req.Value
	}
	if req.Scope != nil {
		current.Scope = *req.Scope
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if req.StartsAt.IsSet() {
		current.StartsAt = req.StartsAt.Ptr()
	}
	if req.EndsAt.IsSet() {
		current.EndsAt = req.EndsAt.Ptr()
	}
	if current.StartsAt != nil && current.EndsAt != nil && current.EndsAt.Before(*current.StartsAt) {
		return Discount{}, fmt.Errorf("%w: validity window ends before it starts", shared.ErrValidation)
	}

	return s.repo.Update(ctx, current)
}

// Delete refuses to remove a discount still linked to items.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get discount: %w", err)
	}
	links, err := s.repo.CountItemLinks(ctx, id)
	if err != nil {
		return fmt.Errorf("count links: %w", err)
	}
	if links > 0 {
		return fmt.Errorf("%w: discount is linked to %d items", shared.ErrHasChildren, links)
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
