package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meridian-pos/meridian-pos/internal/catalog/categories"
	"github.com/meridian-pos/meridian-pos/internal/discounts"
	"github.com/meridian-pos/meridian-pos/internal/masterdata"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/taxes"
)

// Service carries the item commands, including the tax and discount link
// operations.
type Service struct {
	repo         Repository
	categoryRepo categories.Repository
	taxRepo      taxes.Repository
	discountRepo discounts.Repository
	brandRepo    masterdata.BrandRepository
}

func NewService(repo Repository, categoryRepo categories.Repository, taxRepo taxes.Repository, discountRepo discounts.Repository, brandRepo masterdata.BrandRepository) *Service {
	return &Service{
		repo:         repo,
		categoryRepo: categoryRepo,
		taxRepo:      taxRepo,
		discountRepo: discountRepo,
		brandRepo:    brandRepo,
	}
}

func (s *Service) List(ctx context.Context, filter ListItemsFilter, page shared.Pagination) ([]Item, int, error) {
	return s.repo.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	return s.repo.Get(ctx, id)
}

// Create checks all referenced rows before writing.
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Item{}, fmt.Errorf("%w: item name is required", shared.ErrValidation)
	}
	if req.Price.IsNegative() {
		return Item{}, fmt.Errorf("%w: item price cannot be negative", shared.ErrValidation)
	}

	if _, err := s.categoryRepo.Get(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Item{}, fmt.Errorf("%w: category %d", shared.ErrNotFound, req.CategoryID)
		}
		return Item{}, fmt.Errorf("verify category: %w", err)
	}
	if req.BrandID != nil {
		if _, err := s.brandRepo.GetBrand(ctx, *req.BrandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return Item{}, fmt.Errorf("%w: brand %d", shared.ErrNotFound, *req.BrandID)
			}
			return Item{}, fmt.Errorf("verify brand: %w", err)
		}
	}

	return s.repo.Create(ctx, Item{
		CategoryID: req.CategoryID,
		BrandID:    req.BrandID,
		Name:       name,
		Price:      req.Price,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest) (Item, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get item: %w", err)
	}

	if req.CategoryID != nil && *req.CategoryID != current.CategoryID {
		if _, err := s.categoryRepo.Get(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return Item{}, fmt.Errorf("%w: category %d", shared.ErrNotFound, *req.CategoryID)
			}
			return Item{}, fmt.Errorf("verify category: %w", err)
		}
		current.CategoryID = *req.CategoryID
	}
	if req.BrandID.IsSet() {
		if brandID, ok := req.BrandID.Value(); ok {
			if _, err := s.brandRepo.GetBrand(ctx, brandID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return Item{}, fmt.Errorf("%w: brand %d", shared.ErrNotFound, brandID)
				}
				return Item{}, fmt.Errorf("verify brand: %w", err)
			}
		}
		current.BrandID = req.BrandID.Ptr()
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Item{}, fmt.Errorf("%w: item name is required", shared.ErrValidation)
		}
		current.Name = name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return Item{}, fmt.Errorf("%w: item price cannot be negative", shared.ErrValidation)
		}
		current.Price = *req.Price
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, current)
}

// Delete refuses to remove an item that still has variants.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	variants, err := s.repo.CountVariants(ctx, id)
	if err != nil {
		return fmt.Errorf("count variants: %w", err)
	}
	if variants > 0 {
		return fmt.Errorf("%w: item has %d variants", shared.ErrHasChildren, variants)
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

// AssignTax links a tax to an item; duplicate links are rejected.
func (s *Service) AssignTax(ctx context.Context, itemID, taxID int64) (ItemTax, error) {
	if _, err := s.repo.Get(ctx, itemID); err != nil {
		return ItemTax{}, fmt.Errorf("get item: %w", err)
	}
	if _, err := s.taxRepo.GetTax(ctx, taxID); err != nil {
		return ItemTax{}, fmt.Errorf("get tax: %w", err)
	}
	existing, err := s.repo.FindTaxLink(ctx, itemID, taxID)
	if err != nil {
		return ItemTax{}, fmt.Errorf("check link: %w", err)
	}
	if existing != nil {
		return ItemTax{}, fmt.Errorf("%w: tax %d on item %d", shared.ErrAlreadyExists, taxID, itemID)
	}
	return s.repo.InsertTaxLink(ctx, itemID, taxID)
}

func (s *Service) RemoveTax(ctx context.Context, itemID, taxID int64) error {
	affected, err := s.repo.DeleteTaxLink(ctx, itemID, taxID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) ListTaxes(ctx context.Context, itemID int64) ([]taxes.Tax, error) {
	if _, err := s.repo.Get(ctx, itemID); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return s.repo.ListTaxes(ctx, itemID)
}

// AddDiscount links a discount to an item. A duplicate link returns the
// existing row rather than failing.
func (s *Service) AddDiscount(ctx context.Context, itemID, discountID int64) (ItemDiscount, error) {
	if _, err := s.repo.Get(ctx, itemID); err != nil {
		return ItemDiscount{}, fmt.Errorf("get item: %w", err)
	}
	if _, err := s.discountRepo.Get(ctx, discountID); err != nil {
		return ItemDiscount{}, fmt.Errorf("get discount: %w", err)
	}
	existing, err := s.repo.FindDiscountLink(ctx, itemID, discountID)
	if err != nil {
		return ItemDiscount{}, fmt.Errorf("check link: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}
	return s.repo.InsertDiscountLink(ctx, itemID, discountID)
}

func (s *Service) RemoveDiscount(ctx context.Context, itemID, discountID int64) error {
	affected, err := s.repo.DeleteDiscountLink(ctx, itemID, discountID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) ListDiscounts(ctx context.Context, itemID int64) ([]ItemDiscount, error) {
	if _, err := s.repo.Get(ctx, itemID); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return s.repo.ListDiscountLinks(ctx, itemID)
}
