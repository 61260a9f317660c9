package taxes

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

func (s *Service) ListTaxes(ctx context.Context) ([]Tax, error) {
	return s.repo.ListTaxes(ctx)
}

func (s *Service) GetTax(ctx context.Context, id int64) (Tax, error) {
	return s.repo.GetTax(ctx, id)
}

func (s *Service) CreateTax(ctx context.Context, req CreateTaxRequest) (Tax, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Tax{}, fmt.Errorf("%w: tax name is required", shared.ErrValidation)
	}
	if req.Rate < 0 {
		return Tax{}, fmt.Errorf("%w: tax rate cannot be negative", shared.ErrValidation)
	}
	return s.repo.CreateTax(ctx, name, req.Rate)
}

func (s *Service) UpdateTax(ctx context.Context, id int64, req UpdateTaxRequest) (Tax, error) {
	current, err := s.repo.GetTax(ctx, id)
	if err != nil {
		return Tax{}, fmt.Errorf("get tax: %w", err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Tax{}, fmt.Errorf("%w: tax name is required", shared.ErrValidation)
		}
		current.Name = name
	}
	if req.Rate != nil {
		if *req.Rate < 0 {
			return Tax{}, fmt.Errorf("%w: tax rate cannot be negative", shared.ErrValidation)
		}
		current.Rate = *req.Rate
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	return s.repo.UpdateTax(ctx, current)
}

// DeleteTax refuses to remove a tax still linked to items or groups.
func (s *Service) DeleteTax(ctx context.Context, id int64) error {
	if _, err := s.repo.GetTax(ctx, id); err != nil {
		return fmt.Errorf("get tax: %w", err)
	}
	refs, err := s.repo.CountTaxReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("count references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: tax is linked %d times", shared.ErrHasChildren, refs)
	}
	affected, err := s.repo.DeleteTax(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) ListGroups(ctx context.Context) ([]TaxGroup, error) {
	return s.repo.ListGroups(ctx)
}

func (s *Service) GetGroup(ctx context.Context, id int64) (TaxGroup, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) CreateGroup(ctx context.Context, req CreateTaxGroupRequest) (TaxGroup, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return TaxGroup{}, fmt.Errorf("%w: group name is required", shared.ErrValidation)
	}
	return s.repo.CreateGroup(ctx, name)
}

func (s *Service) UpdateGroup(ctx context.Context, id int64, req UpdateTaxGroupRequest) (TaxGroup, error) {
	current, err := s.repo.GetGroup(ctx, id)
	if err != nil {
		return TaxGroup{}, fmt.Errorf("get group: %w", err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return TaxGroup{}, fmt.Errorf("%w: group name is required", shared.ErrValidation)
		}
		current.Name = name
	}
	return s.repo.UpdateGroup(ctx, current)
}

func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	if _, err := s.repo.GetGroup(ctx, id); err != nil {
		return fmt.Errorf("get group: %w", err)
	}
	affected, err := s.repo.DeleteGroup(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddTaxToGroup rejects duplicate membership.
func (s *Service) AddTaxToGroup(ctx context.Context, groupID, taxID int64) (TaxGroupTax, error) {
	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		return TaxGroupTax{}, fmt.Errorf("get group: %w", err)
	}
	if _, err := s.repo.GetTax(ctx, taxID); err != nil {
		return TaxGroupTax{}, fmt.Errorf("get tax: %w", err)
	}
	existing, err := s.repo.FindGroupLink(ctx, groupID, taxID)
	if err != nil {
		return TaxGroupTax{}, fmt.Errorf("check link: %w", err)
	}
	if existing != nil {
		return TaxGroupTax{}, fmt.Errorf("%w: tax %d already in group %d", shared.ErrAlreadyExists, taxID, groupID)
	}
	return s.repo.InsertGroupLink(ctx, groupID, taxID)
}

func (s *Service) RemoveTaxFromGroup(ctx context.Context, groupID, taxID int64) error {
	affected, err := s.repo.DeleteGroupLink(ctx, groupID, taxID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) ListGroupTaxes(ctx context.Context, groupID int64) ([]Tax, error) {
	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return s.repo.ListGroupTaxes(ctx, groupID)
}
