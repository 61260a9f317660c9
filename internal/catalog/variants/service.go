package variants

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-pos/meridian-pos/internal/catalog/items"
	"github.com/meridian-pos/meridian-pos/internal/shared"
)

// Service carries the variant commands. Anything that moves the default
// flag between variants runs inside one transaction so an item never shows
// zero or two defaults, even to a concurrent reader.
type Service struct {
	repo  Repository
	items items.Repository
}

func NewService(repo Repository, items items.Repository) *Service {
	return &Service{repo: repo, items: items}
}

func (s *Service) ListTypes(ctx context.Context) ([]VariantType, error) {
	return s.repo.ListTypes(ctx)
}

func (s *Service) GetType(ctx context.Context, id int64) (VariantType, error) {
	return s.repo.GetType(ctx, id)
}

func (s *Service) CreateType(ctx context.Context, req CreateVariantTypeRequest) (VariantType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return VariantType{}, fmt.Errorf("%w: variant type name is required", shared.ErrValidation)
	}

	existing, err := s.repo.FindTypeByName(ctx, name)
	if err != nil {
		return VariantType{}, fmt.Errorf("check name: %w", err)
	}
	if existing != nil {
		return VariantType{}, fmt.Errorf("%w: variant type %q", shared.ErrUniqueConstraint, name)
	}

	return s.repo.CreateType(ctx, name)
}

func (s *Service) UpdateType(ctx context.Context, id int64, req UpdateVariantTypeRequest) (VariantType, error) {
	current, err := s.repo.GetType(ctx, id)
	if err != nil {
		return VariantType{}, fmt.Errorf("get variant type: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return VariantType{}, fmt.Errorf("%w: variant type name is required", shared.ErrValidation)
		}
		other, err := s.repo.FindTypeByName(ctx, name)
		if err != nil {
			return VariantType{}, fmt.Errorf("check name: %w", err)
		}
		if other != nil && other.ID != id {
			return VariantType{}, fmt.Errorf("%w: variant type %q", shared.ErrUniqueConstraint, name)
		}
		current.Name = name
	}

	return s.repo.UpdateType(ctx, current)
}

// DeleteType refuses to remove a type that still has values.
func (s *Service) DeleteType(ctx context.Context, id int64) error {
	if _, err := s.repo.GetType(ctx, id); err != nil {
		return fmt.Errorf("get variant type: %w", err)
	}

	n, err := s.repo.CountTypeValues(ctx, id)
	if err != nil {
		return fmt.Errorf("count values: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: variant type has %d values", shared.ErrHasChildren, n)
	}

	affected, err := s.repo.DeleteType(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) ListValues(ctx context.Context, typeID int64) ([]VariantValue, error) {
	if _, err := s.repo.GetType(ctx, typeID); err != nil {
		return nil, fmt.Errorf("get variant type: %w", err)
	}
	return s.repo.ListValues(ctx, typeID)
}

func (s *Service) GetValue(ctx context.Context, id int64) (VariantValue, error) {
	return s.repo.GetValue(ctx, id)
}

// CreateValue defaults the display order to one past the current highest
// order within the type.
func (s *Service) CreateValue(ctx context.Context, req CreateVariantValueRequest) (VariantValue, error) {
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return VariantValue{}, fmt.Errorf("%w: variant value is required", shared.ErrValidation)
	}

	if _, err := s.repo.GetType(ctx, req.TypeID); err != nil {
		return VariantValue{}, fmt.Errorf("get variant type: %w", err)
	}

	order := int64(0)
	if req.DisplayOrder != nil {
		order = *req.DisplayOrder
	} else {
		max, err := s.repo.MaxDisplayOrder(ctx, req.TypeID)
		if err != nil {
			return VariantValue{}, fmt.Errorf("max display order: %w", err)
		}
		order = max + 1
	}

	return s.repo.CreateValue(ctx, VariantValue{
		TypeID:       req.TypeID,
		Value:        value,
		DisplayOrder: order,
	})
}

func (s *Service) UpdateValue(ctx context.Context, id int64, req UpdateVariantValueRequest) (VariantValue, error) {
	current, err := s.repo.GetValue(ctx, id)
	if err != nil {
		return VariantValue{}, fmt.Errorf("get variant value: %w", err)
	}

	if req.Value != nil {
		value := strings.TrimSpace(*req.Value)
		if value == "" {
			return VariantValue{}, fmt.Errorf("%w: variant value is required", shared.ErrValidation)
		}
		current.Value = value
	}
	if req.DisplayOrder != nil {
		current.DisplayOrder = *req.DisplayOrder
	}

	return s.repo.UpdateValue(ctx, current)
}

// DeleteValue refuses to remove a value still linked to a variant.
func (s *Service) DeleteValue(ctx context.Context, id int64) error {
	if _, err := s.repo.GetValue(ctx, id); err != nil {
		return fmt.Errorf("get variant value: %w", err)
	}

	n, err := s.repo.CountValueLinks(ctx, id)
	if err != nil {
		return fmt.Errorf("count links: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: variant value is linked to %d variants", shared.ErrHasChildren, n)
	}

	affected, err := s.repo.DeleteValue(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) ListVariants(ctx context.Context, itemID int64) ([]ItemVariant, error) {
	if _, err := s.items.Get(ctx, itemID); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return s.repo.ListVariants(ctx, itemID)
}

func (s *Service) GetVariant(ctx context.Context, id int64) (ItemVariant, error) {
	return s.repo.GetVariant(ctx, id)
}

// CreateVariant inserts a variant and settles the default flag in one
// transaction. An unspecified flag means the variant is the default exactly
// when it is the item's first; an explicit default demotes its siblings
// first. Initial value links ride in the same transaction and obey the one
// value per type rule.
func (s *Service) CreateVariant(ctx context.Context, req CreateItemVariantRequest) (ItemVariant, error) {
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return ItemVariant{}, fmt.Errorf("%w: variant sku is required", shared.ErrValidation)
	}

	if _, err := s.items.Get(ctx, req.ItemID); err != nil {
		return ItemVariant{}, fmt.Errorf("get item: %w", err)
	}

	var created ItemVariant
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		isDefault := false
		switch {
		case req.IsDefault == nil:
			n, err := tx.CountItemVariants(ctx, req.ItemID)
			if err != nil {
				return fmt.Errorf("count variants: %w", err)
			}
			isDefault = n == 0
		case *req.IsDefault:
			if err := tx.ClearDefault(ctx, req.ItemID); err != nil {
				return fmt.Errorf("clear default: %w", err)
			}
			isDefault = true
		default:
			n, err := tx.CountItemVariants(ctx, req.ItemID)
			if err != nil {
				return fmt.Errorf("count variants: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("%w: the first variant of an item must be the default", shared.ErrValidation)
			}
		}

		v, err := tx.CreateVariant(ctx, ItemVariant{
			ItemID:          req.ItemID,
			SKU:             sku,
			PriceAdjustment: req.PriceAdjustment,
			IsDefault:       isDefault,
		})
		if err != nil {
			return err
		}

		for _, valueID := range req.ValueIDs {
			if err := assignValue(ctx, tx, v.ID, valueID); err != nil {
				return err
			}
		}

		created = v
		return nil
	})
	if err != nil {
		return ItemVariant{}, err
	}
	return created, nil
}

// UpdateVariant applies a partial update. Raising the default flag demotes
// the siblings in the same transaction; lowering it directly is rejected
// because an item with variants always has exactly one default. Make a
// sibling the default instead.
func (s *Service) UpdateVariant(ctx context.Context, id int64, req UpdateItemVariantRequest) (ItemVariant, error) {
	current, err := s.repo.GetVariant(ctx, id)
	if err != nil {
		return ItemVariant{}, fmt.Errorf("get variant: %w", err)
	}

	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku == "" {
			return ItemVariant{}, fmt.Errorf("%w: variant sku is required", shared.ErrValidation)
		}
		current.SKU = sku
	}
	if req.PriceAdjustment != nil {
		current.PriceAdjustment = *req.PriceAdjustment
	}

	if req.IsDefault != nil && !*req.IsDefault && current.IsDefault {
		return ItemVariant{}, fmt.Errorf("%w: cannot clear the default flag; set another variant as default instead", shared.ErrValidation)
	}
	promote := req.IsDefault != nil && *req.IsDefault && !current.IsDefault

	var updated ItemVariant
	err = s.repo.WithTx(ctx, func(tx Repository) error {
		if promote {
			if err := tx.ClearDefault(ctx, current.ItemID); err != nil {
				return fmt.Errorf("clear default: %w", err)
			}
			current.IsDefault = true
		}
		v, err := tx.UpdateVariant(ctx, current)
		if err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		return ItemVariant{}, err
	}
	return updated, nil
}

// SetDefault makes the variant its item's default, demoting the current
// default in the same transaction.
func (s *Service) SetDefault(ctx context.Context, id int64) (ItemVariant, error) {
	current, err := s.repo.GetVariant(ctx, id)
	if err != nil {
		return ItemVariant{}, fmt.Errorf("get variant: %w", err)
	}
	if current.IsDefault {
		return current, nil
	}

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.ClearDefault(ctx, current.ItemID); err != nil {
			return fmt.Errorf("clear default: %w", err)
		}
		affected, err := tx.SetDefaultFlag(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return ItemVariant{}, err
	}
	return s.repo.GetVariant(ctx, id)
}

// DeleteVariant removes the variant and its value links. When the default
// is deleted and siblings remain, the earliest-created sibling is promoted
// so the item keeps exactly one default.
func (s *Service) DeleteVariant(ctx context.Context, id int64) error {
	current, err := s.repo.GetVariant(ctx, id)
	if err != nil {
		return fmt.Errorf("get variant: %w", err)
	}

	return s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.DeleteVariantLinks(ctx, id); err != nil {
			return fmt.Errorf("delete value links: %w", err)
		}

		affected, err := tx.DeleteVariant(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return shared.ErrNotFound
		}

		if !current.IsDefault {
			return nil
		}

		next, err := tx.EarliestVariant(ctx, current.ItemID)
		if err != nil {
			return fmt.Errorf("find successor: %w", err)
		}
		if next == nil {
			return nil
		}
		if _, err := tx.SetDefaultFlag(ctx, next.ID); err != nil {
			return fmt.Errorf("promote successor: %w", err)
		}
		return nil
	})
}

func (s *Service) ListVariantValues(ctx context.Context, variantID int64) ([]VariantValue, error) {
	if _, err := s.repo.GetVariant(ctx, variantID); err != nil {
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return s.repo.ListVariantValues(ctx, variantID)
}

// AssignValue links a value to a variant. A variant holds at most one value
// per variant type, so a second value of the same type is rejected whether
// or not it is the same value.
func (s *Service) AssignValue(ctx context.Context, variantID, valueID int64) (VariantValueLink, error) {
	if _, err := s.repo.GetVariant(ctx, variantID); err != nil {
		return VariantValueLink{}, fmt.Errorf("get variant: %w", err)
	}

	var link VariantValueLink
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		if err := assignValue(ctx, tx, variantID, valueID); err != nil {
			return err
		}
		l, err := tx.FindValueLink(ctx, variantID, valueID)
		if err != nil {
			return err
		}
		if l == nil {
			return shared.ErrNotFound
		}
		link = *l
		return nil
	})
	if err != nil {
		return VariantValueLink{}, err
	}
	return link, nil
}

func assignValue(ctx context.Context, tx Repository, variantID, valueID int64) error {
	value, err := tx.GetValue(ctx, valueID)
	if err != nil {
		return fmt.Errorf("get variant value: %w", err)
	}

	linked, err := tx.ListVariantValues(ctx, variantID)
	if err != nil {
		return fmt.Errorf("list linked values: %w", err)
	}
	for _, l := range linked {
		if l.TypeID == value.TypeID {
			return fmt.Errorf("%w: variant already has a value for this type", shared.ErrAlreadyExists)
		}
	}

	if _, err := tx.InsertValueLink(ctx, variantID, valueID); err != nil {
		return err
	}
	return nil
}

// RemoveValue unlinks a value from a variant.
func (s *Service) RemoveValue(ctx context.Context, variantID, valueID int64) error {
	if _, err := s.repo.GetVariant(ctx, variantID); err != nil {
		return fmt.Errorf("get variant: %w", err)
	}

	affected, err := s.repo.DeleteValueLink(ctx, variantID, valueID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
