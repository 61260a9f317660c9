package items

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/catalog/categories"
	"github.com/meridian-pos/meridian-pos/internal/discounts"
	"github.com/meridian-pos/meridian-pos/internal/masterdata"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/taxes"
	"github.com/meridian-pos/meridian-pos/internal/types"
)

type stubRepo struct {
	items         map[int64]Item
	variants      map[int64]int64
	taxLinks      map[[2]int64]ItemTax
	discountLinks map[[2]int64]ItemDiscount
	nextID        int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		items:         make(map[int64]Item),
		variants:      make(map[int64]int64),
		taxLinks:      make(map[[2]int64]ItemTax),
		discountLinks: make(map[[2]int64]ItemDiscount),
		nextID:        1,
	}
}

func (s *stubRepo) List(ctx context.Context, filter ListItemsFilter, page shared.Pagination) ([]Item, int, error) {
	var out []Item
	for _, it := range s.items {
		if filter.CategoryID != nil && it.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, it)
	}
	return out, len(out), nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (Item, error) {
	it, ok := s.items[id]
	if !ok {
		return Item{}, shared.ErrNotFound
	}
	return it, nil
}

func (s *stubRepo) Create(ctx context.Context, item Item) (Item, error) {
	now := time.Now()
	item.ID = s.nextID
	item.IsActive = true
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = item
	s.nextID++
	return item, nil
}

func (s *stubRepo) Update(ctx context.Context, item Item) (Item, error) {
	if _, ok := s.items[item.ID]; !ok {
		return Item{}, shared.ErrNotFound
	}
	s.items[item.ID] = item
	return item, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.items[id]; !ok {
		return 0, nil
	}
	delete(s.items, id)
	return 1, nil
}

func (s *stubRepo) CountVariants(ctx context.Context, itemID int64) (int64, error) {
	return s.variants[itemID], nil
}

func (s *stubRepo) FindTaxLink(ctx context.Context, itemID, taxID int64) (*ItemTax, error) {
	l, ok := s.taxLinks[[2]int64{itemID, taxID}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *stubRepo) InsertTaxLink(ctx context.Context, itemID, taxID int64) (ItemTax, error) {
	l := ItemTax{ItemID: itemID, TaxID: taxID, CreatedAt: time.Now()}
	s.taxLinks[[2]int64{itemID, taxID}] = l
	return l, nil
}

func (s *stubRepo) DeleteTaxLink(ctx context.Context, itemID, taxID int64) (int64, error) {
	key := [2]int64{itemID, taxID}
	if _, ok := s.taxLinks[key]; !ok {
		return 0, nil
	}
	delete(s.taxLinks, key)
	return 1, nil
}

func (s *stubRepo) ListTaxes(ctx context.Context, itemID int64) ([]taxes.Tax, error) {
	var out []taxes.Tax
	for key := range s.taxLinks {
		if key[0] == itemID {
			out = append(out, taxes.Tax{ID: key[1]})
		}
	}
	return out, nil
}

func (s *stubRepo) FindDiscountLink(ctx context.Context, itemID, discountID int64) (*ItemDiscount, error) {
	l, ok := s.discountLinks[[2]int64{itemID, discountID}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *stubRepo) InsertDiscountLink(ctx context.Context, itemID, discountID int64) (ItemDiscount, error) {
	l := ItemDiscount{ItemID: itemID, DiscountID: discountID, CreatedAt: time.Now()}
	s.discountLinks[[2]int64{itemID, discountID}] = l
	return l, nil
}

func (s *stubRepo) DeleteDiscountLink(ctx context.Context, itemID, discountID int64) (int64, error) {
	key := [2]int64{itemID, discountID}
	if _, ok := s.discountLinks[key]; !ok {
		return 0, nil
	}
	delete(s.discountLinks, key)
	return 1, nil
}

func (s *stubRepo) ListDiscountLinks(ctx context.Context, itemID int64) ([]ItemDiscount, error) {
	var out []ItemDiscount
	for key, l := range s.discountLinks {
		if key[0] == itemID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Narrow cross-domain stubs: only the lookups the item commands touch.

type stubCategories struct {
	categories.Repository
	ids map[int64]bool
}

func (s stubCategories) Get(ctx context.Context, id int64) (categories.Category, error) {
	if !s.ids[id] {
		return categories.Category{}, shared.ErrNotFound
	}
	return categories.Category{ID: id}, nil
}

type stubTaxes struct {
	taxes.Repository
	ids map[int64]bool
}

func (s stubTaxes) GetTax(ctx context.Context, id int64) (taxes.Tax, error) {
	if !s.ids[id] {
		return taxes.Tax{}, shared.ErrNotFound
	}
	return taxes.Tax{ID: id}, nil
}

type stubDiscounts struct {
	discounts.Repository
	ids map[int64]bool
}

func (s stubDiscounts) Get(ctx context.Context, id int64) (discounts.Discount, error) {
	if !s.ids[id] {
		return discounts.Discount{}, shared.ErrNotFound
	}
	return discounts.Discount{ID: id}, nil
}

type stubBrands struct {
	masterdata.BrandRepository
	ids map[int64]bool
}

func (s stubBrands) GetBrand(ctx context.Context, id int64) (masterdata.Brand, error) {
	if !s.ids[id] {
		return masterdata.Brand{}, shared.ErrNotFound
	}
	return masterdata.Brand{ID: id}, nil
}

func newTestService(repo *stubRepo) *Service {
	return NewService(
		repo,
		stubCategories{ids: map[int64]bool{1: true, 2: true}},
		stubTaxes{ids: map[int64]bool{10: true}},
		stubDiscounts{ids: map[int64]bool{20: true}},
		stubBrands{ids: map[int64]bool{30: true}},
	)
}

func TestCreateItem(t *testing.T) {
	svc := newTestService(newStubRepo())

	item, err := svc.Create(context.Background(), CreateItemRequest{
		CategoryID: 1,
		Name:       "Espresso",
		Price:      types.NewMoney(3, 50),
	})
	require.NoError(t, err)
	assert.Equal(t, "Espresso", item.Name)
	assert.True(t, item.IsActive)
	assert.Nil(t, item.BrandID)
}

func TestCreateItemUnknownCategory(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateItemRequest{
		CategoryID: 99,
		Name:       "Espresso",
		Price:      types.NewMoney(3, 50),
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, repo.items)
}

func TestCreateItemUnknownBrand(t *testing.T) {
	svc := newTestService(newStubRepo())

	brandID := int64(77)
	_, err := svc.Create(context.Background(), CreateItemRequest{
		CategoryID: 1,
		BrandID:    &brandID,
		Name:       "Espresso",
		Price:      types.NewMoney(3, 50),
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateItemClearBrand(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	brandID := int64(30)
	item, err := svc.Create(ctx, CreateItemRequest{
		CategoryID: 1,
		BrandID:    &brandID,
		Name:       "Espresso",
		Price:      types.NewMoney(3, 50),
	})
	require.NoError(t, err)
	require.NotNil(t, item.BrandID)

	updated, err := svc.Update(ctx, item.ID, UpdateItemRequest{BrandID: types.Null[int64]()})
	require.NoError(t, err)
	assert.Nil(t, updated.BrandID)
}

func TestUpdateItemMoveCategory(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{CategoryID: 1, Name: "Espresso", Price: types.NewMoney(3, 50)})
	require.NoError(t, err)

	target := int64(2)
	updated, err := svc.Update(ctx, item.ID, UpdateItemRequest{CategoryID: &target})
	require.NoError(t, err)
	assert.Equal(t, target, updated.CategoryID)

	bad := int64(99)
	_, err = svc.Update(ctx, item.ID, UpdateItemRequest{CategoryID: &bad})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteItemWithVariants(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{CategoryID: 1, Name: "Espresso", Price: types.NewMoney(3, 50)})
	require.NoError(t, err)
	repo.variants[item.ID] = 2

	err = svc.Delete(ctx, item.ID)
	require.ErrorIs(t, err, shared.ErrHasChildren)

	repo.variants[item.ID] = 0
	require.NoError(t, svc.Delete(ctx, item.ID))
}

func TestAssignTaxDuplicate(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{CategoryID: 1, Name: "Espresso", Price: types.NewMoney(3, 50)})
	require.NoError(t, err)

	_, err = svc.AssignTax(ctx, item.ID, 10)
	require.NoError(t, err)

	_, err = svc.AssignTax(ctx, item.ID, 10)
	require.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestAssignTaxUnknownTax(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{CategoryID: 1, Name: "Espresso", Price: types.NewMoney(3, 50)})
	require.NoError(t, err)

	_, err = svc.AssignTax(ctx, item.ID, 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRemoveTaxMissingLink(t *testing.T) {
	svc := newTestService(newStubRepo())

	err := svc.RemoveTax(context.Background(), 1, 10)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAddDiscountIdempotent(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{CategoryID: 1, Name: "Espresso", Price: types.NewMoney(3, 50)})
	require.NoError(t, err)

	first, err := svc.AddDiscount(ctx, item.ID, 20)
	require.NoError(t, err)

	// Linking again returns the existing row instead of failing.
	second, err := svc.AddDiscount(ctx, item.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, repo.discountLinks, 1)
}

func TestAddDiscountUnknownDiscount(t *testing.T) {
	svc := newTestService(newStubRepo())
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{CategoryID: 1, Name: "Espresso", Price: types.NewMoney(3, 50)})
	require.NoError(t, err)

	_, err = svc.AddDiscount(ctx, item.ID, 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateItemNegativePrice(t *testing.T) {
	svc := newTestService(newStubRepo())

	_, err := svc.Create(context.Background(), CreateItemRequest{
		CategoryID: 1,
		Name:       "Espresso",
		Price:      types.Money(-1),
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}
