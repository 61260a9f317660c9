package variants

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/catalog/items"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/types"
)

type stubRepo struct {
	types    map[int64]VariantType
	values   map[int64]VariantValue
	variants map[int64]ItemVariant
	links    map[[2]int64]VariantValueLink
	nextID   int64
	clock    time.Time
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		types:    make(map[int64]VariantType),
		values:   make(map[int64]VariantValue),
		variants: make(map[int64]ItemVariant),
		links:    make(map[[2]int64]VariantValueLink),
		nextID:   1,
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *stubRepo) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *stubRepo) WithTx(ctx context.Context, fn func(Repository) error) error {
	return fn(s)
}

func (s *stubRepo) ListTypes(ctx context.Context) ([]VariantType, error) {
	var out []VariantType
	for _, t := range s.types {
		out = append(out, t)
	}
	return out, nil
}

func (s *stubRepo) GetType(ctx context.Context, id int64) (VariantType, error) {
	t, ok := s.types[id]
	if !ok {
		return VariantType{}, shared.ErrNotFound
	}
	return t, nil
}

func (s *stubRepo) CreateType(ctx context.Context, name string) (VariantType, error) {
	now := s.tick()
	t := VariantType{ID: s.nextID, Name: name, CreatedAt: now, UpdatedAt: now}
	s.types[t.ID] = t
	s.nextID++
	return t, nil
}

func (s *stubRepo) UpdateType(ctx context.Context, t VariantType) (VariantType, error) {
	if _, ok := s.types[t.ID]; !ok {
		return VariantType{}, shared.ErrNotFound
	}
	t.UpdatedAt = s.tick()
	s.types[t.ID] = t
	return t, nil
}

func (s *stubRepo) DeleteType(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.types[id]; !ok {
		return 0, nil
	}
	delete(s.types, id)
	return 1, nil
}

func (s *stubRepo) FindTypeByName(ctx context.Context, name string) (*VariantType, error) {
	for _, t := range s.types {
		if strings.EqualFold(t.Name, name) {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CountTypeValues(ctx context.Context, typeID int64) (int64, error) {
	var n int64
	for _, v := range s.values {
		if v.TypeID == typeID {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ListValues(ctx context.Context, typeID int64) ([]VariantValue, error) {
	var out []VariantValue
	for _, v := range s.values {
		if v.TypeID == typeID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (s *stubRepo) GetValue(ctx context.Context, id int64) (VariantValue, error) {
	v, ok := s.values[id]
	if !ok {
		return VariantValue{}, shared.ErrNotFound
	}
	return v, nil
}

func (s *stubRepo) CreateValue(ctx context.Context, v VariantValue) (VariantValue, error) {
	now := s.tick()
	v.ID = s.nextID
	v.CreatedAt = now
	v.UpdatedAt = now
	s.values[v.ID] = v
	s.nextID++
	return v, nil
}

func (s *stubRepo) UpdateValue(ctx context.Context, v VariantValue) (VariantValue, error) {
	if _, ok := s.values[v.ID]; !ok {
		return VariantValue{}, shared.ErrNotFound
	}
	v.UpdatedAt = s.tick()
	s.values[v.ID] = v
	return v, nil
}

func (s *stubRepo) DeleteValue(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.values[id]; !ok {
		return 0, nil
	}
	delete(s.values, id)
	return 1, nil
}

func (s *stubRepo) MaxDisplayOrder(ctx context.Context, typeID int64) (int64, error) {
	max := int64(-1)
	for _, v := range s.values {
		if v.TypeID == typeID && v.DisplayOrder > max {
			max = v.DisplayOrder
		}
	}
	return max, nil
}

func (s *stubRepo) CountValueLinks(ctx context.Context, valueID int64) (int64, error) {
	var n int64
	for key := range s.links {
		if key[1] == valueID {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ListVariants(ctx context.Context, itemID int64) ([]ItemVariant, error) {
	var out []ItemVariant
	for _, v := range s.variants {
		if v.ItemID == itemID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *stubRepo) GetVariant(ctx context.Context, id int64) (ItemVariant, error) {
	v, ok := s.variants[id]
	if !ok {
		return ItemVariant{}, shared.ErrNotFound
	}
	return v, nil
}

func (s *stubRepo) CreateVariant(ctx context.Context, v ItemVariant) (ItemVariant, error) {
	now := s.tick()
	v.ID = s.nextID
	v.CreatedAt = now
	v.UpdatedAt = now
	s.variants[v.ID] = v
	s.nextID++
	return v, nil
}

func (s *stubRepo) UpdateVariant(ctx context.Context, v ItemVariant) (ItemVariant, error) {
	if _, ok := s.variants[v.ID]; !ok {
		return ItemVariant{}, shared.ErrNotFound
	}
	v.UpdatedAt = s.tick()
	s.variants[v.ID] = v
	return v, nil
}

func (s *stubRepo) DeleteVariant(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.variants[id]; !ok {
		return 0, nil
	}
	delete(s.variants, id)
	return 1, nil
}

func (s *stubRepo) CountItemVariants(ctx context.Context, itemID int64) (int64, error) {
	var n int64
	for _, v := range s.variants {
		if v.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ClearDefault(ctx context.Context, itemID int64) error {
	for id, v := range s.variants {
		if v.ItemID == itemID && v.IsDefault {
			v.IsDefault = false
			v.UpdatedAt = s.tick()
			s.variants[id] = v
		}
	}
	return nil
}

func (s *stubRepo) SetDefaultFlag(ctx context.Context, id int64) (int64, error) {
	v, ok := s.variants[id]
	if !ok {
		return 0, nil
	}
	v.IsDefault = true
	v.UpdatedAt = s.tick()
	s.variants[id] = v
	return 1, nil
}

func (s *stubRepo) EarliestVariant(ctx context.Context, itemID int64) (*ItemVariant, error) {
	all, _ := s.ListVariants(ctx, itemID)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

func (s *stubRepo) ListVariantValues(ctx context.Context, variantID int64) ([]VariantValue, error) {
	var out []VariantValue
	for key := range s.links {
		if key[0] == variantID {
			out = append(out, s.values[key[1]])
		}
	}
	return out, nil
}

func (s *stubRepo) FindValueLink(ctx context.Context, variantID, valueID int64) (*VariantValueLink, error) {
	l, ok := s.links[[2]int64{variantID, valueID}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *stubRepo) InsertValueLink(ctx context.Context, variantID, valueID int64) (VariantValueLink, error) {
	l := VariantValueLink{VariantID: variantID, ValueID: valueID, CreatedAt: s.tick()}
	s.links[[2]int64{variantID, valueID}] = l
	return l, nil
}

func (s *stubRepo) DeleteValueLink(ctx context.Context, variantID, valueID int64) (int64, error) {
	key := [2]int64{variantID, valueID}
	if _, ok := s.links[key]; !ok {
		return 0, nil
	}
	delete(s.links, key)
	return 1, nil
}

func (s *stubRepo) DeleteVariantLinks(ctx context.Context, variantID int64) error {
	for key := range s.links {
		if key[0] == variantID {
			delete(s.links, key)
		}
	}
	return nil
}

// stubItems only needs Get; the rest of the interface is never reached in
// these tests.
type stubItems struct {
	items.Repository
	ids map[int64]bool
}

func (s *stubItems) Get(ctx context.Context, id int64) (items.Item, error) {
	if !s.ids[id] {
		return items.Item{}, shared.ErrNotFound
	}
	return items.Item{ID: id, Name: "Espresso"}, nil
}

func newService() (*Service, *stubRepo) {
	repo := newStubRepo()
	return NewService(repo, &stubItems{ids: map[int64]bool{1: true}}), repo
}

func boolPtr(b bool) *bool { return &b }

func mustCreateVariant(t *testing.T, svc *Service, req CreateItemVariantRequest) ItemVariant {
	t.Helper()
	v, err := svc.CreateVariant(context.Background(), req)
	require.NoError(t, err)
	return v
}

func defaultsOf(t *testing.T, repo *stubRepo, itemID int64) []int64 {
	t.Helper()
	var out []int64
	all, err := repo.ListVariants(context.Background(), itemID)
	require.NoError(t, err)
	for _, v := range all {
		if v.IsDefault {
			out = append(out, v.ID)
		}
	}
	return out
}

func TestFirstVariantBecomesDefault(t *testing.T) {
	svc, _ := newService()

	v := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	assert.True(t, v.IsDefault)
}

func TestSecondVariantNotDefault(t *testing.T) {
	svc, repo := newService()

	first := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	second := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-M"})

	assert.False(t, second.IsDefault)
	assert.Equal(t, []int64{first.ID}, defaultsOf(t, repo, 1))
}

func TestExplicitDefaultDemotesSibling(t *testing.T) {
	svc, repo := newService()

	mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	second := mustCreateVariant(t, svc, CreateItemVariantRequest{
		ItemID: 1, SKU: "ESP-M", IsDefault: boolPtr(true),
	})

	assert.True(t, second.IsDefault)
	assert.Equal(t, []int64{second.ID}, defaultsOf(t, repo, 1))
}

func TestFirstVariantCannotRefuseDefault(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateVariant(context.Background(), CreateItemVariantRequest{
		ItemID: 1, SKU: "ESP-S", IsDefault: boolPtr(false),
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateVariantUnknownItem(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateVariant(context.Background(), CreateItemVariantRequest{ItemID: 99, SKU: "X"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSetDefaultMovesFlag(t *testing.T) {
	svc, repo := newService()

	mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	second := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-M"})

	promoted, err := svc.SetDefault(context.Background(), second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault)
	assert.Equal(t, []int64{second.ID}, defaultsOf(t, repo, 1))
}

func TestDeleteDefaultPromotesEarliest(t *testing.T) {
	svc, repo := newService()

	first := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	second := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-M"})
	third := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-L"})

	require.NoError(t, svc.DeleteVariant(context.Background(), first.ID))

	// the earliest remaining variant takes over, not an arbitrary one
	assert.Equal(t, []int64{second.ID}, defaultsOf(t, repo, 1))

	require.NoError(t, svc.DeleteVariant(context.Background(), second.ID))
	assert.Equal(t, []int64{third.ID}, defaultsOf(t, repo, 1))
}

func TestDeleteNonDefaultKeepsDefault(t *testing.T) {
	svc, repo := newService()

	first := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	second := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-M"})

	require.NoError(t, svc.DeleteVariant(context.Background(), second.ID))
	assert.Equal(t, []int64{first.ID}, defaultsOf(t, repo, 1))
}

func TestDeleteLastVariantLeavesNone(t *testing.T) {
	svc, repo := newService()

	only := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	require.NoError(t, svc.DeleteVariant(context.Background(), only.ID))
	assert.Empty(t, defaultsOf(t, repo, 1))
}

func TestUpdateVariantCannotClearDefault(t *testing.T) {
	svc, _ := newService()

	v := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	_, err := svc.UpdateVariant(context.Background(), v.ID, UpdateItemVariantRequest{
		IsDefault: boolPtr(false),
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateVariantPriceAdjustment(t *testing.T) {
	svc, _ := newService()

	v := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	adj := types.Money(150)
	updated, err := svc.UpdateVariant(context.Background(), v.ID, UpdateItemVariantRequest{
		PriceAdjustment: &adj,
	})
	require.NoError(t, err)
	assert.Equal(t, adj, updated.PriceAdjustment)
	assert.True(t, updated.IsDefault)
}

func TestAssignValueOnePerType(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	size, err := svc.CreateType(ctx, CreateVariantTypeRequest{Name: "Size"})
	require.NoError(t, err)
	color, err := svc.CreateType(ctx, CreateVariantTypeRequest{Name: "Color"})
	require.NoError(t, err)

	small, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Small"})
	require.NoError(t, err)
	large, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Large"})
	require.NoError(t, err)
	red, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: color.ID, Value: "Red"})
	require.NoError(t, err)

	v := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})

	_, err = svc.AssignValue(ctx, v.ID, small.ID)
	require.NoError(t, err)

	// a second value of the same type is rejected, the same value included
	_, err = svc.AssignValue(ctx, v.ID, large.ID)
	require.ErrorIs(t, err, shared.ErrAlreadyExists)
	_, err = svc.AssignValue(ctx, v.ID, small.ID)
	require.ErrorIs(t, err, shared.ErrAlreadyExists)

	// a different type is fine
	_, err = svc.AssignValue(ctx, v.ID, red.ID)
	require.NoError(t, err)

	linked, err := repo.ListVariantValues(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, linked, 2)
}

func TestCreateVariantWithSeedValues(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	size, err := svc.CreateType(ctx, CreateVariantTypeRequest{Name: "Size"})
	require.NoError(t, err)
	small, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Small"})
	require.NoError(t, err)
	large, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Large"})
	require.NoError(t, err)

	_, err = svc.CreateVariant(ctx, CreateItemVariantRequest{
		ItemID: 1, SKU: "ESP-S", ValueIDs: []int64{small.ID, large.ID},
	})
	require.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestCreateValueDisplayOrderDefaults(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	size, err := svc.CreateType(ctx, CreateVariantTypeRequest{Name: "Size"})
	require.NoError(t, err)

	first, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Small"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.DisplayOrder)

	second, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Large"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.DisplayOrder)

	explicit := int64(10)
	third, err := svc.CreateValue(ctx, CreateVariantValueRequest{
		TypeID: size.ID, Value: "XL", DisplayOrder: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, third.DisplayOrder)
}

func TestDeleteTypeWithValues(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	size, err := svc.CreateType(ctx, CreateVariantTypeRequest{Name: "Size"})
	require.NoError(t, err)
	_, err = svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Small"})
	require.NoError(t, err)

	err = svc.DeleteType(ctx, size.ID)
	require.ErrorIs(t, err, shared.ErrHasChildren)
}

func TestDeleteLinkedValue(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	size, err := svc.CreateType(ctx, CreateVariantTypeRequest{Name: "Size"})
	require.NoError(t, err)
	small, err := svc.CreateValue(ctx, CreateVariantValueRequest{TypeID: size.ID, Value: "Small"})
	require.NoError(t, err)

	v := mustCreateVariant(t, svc, CreateItemVariantRequest{ItemID: 1, SKU: "ESP-S"})
	_, err = svc.AssignValue(ctx, v.ID, small.ID)
	require.NoError(t, err)

	err = svc.DeleteValue(ctx, small.ID)
	require.ErrorIs(t, err, shared.ErrHasChildren)

	// unlink, then the value can go
	require.NoError(t, svc.RemoveValue(ctx, v.ID, small.ID))
	require.NoError(t, svc.DeleteValue(ctx, small.ID))
}

func TestCreateTypeDuplicateName(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateType(ctx, CreateVariantTypeRequest{Name: "Size"})
	require.NoError(t, err)
	_, err = svc.CreateType(ctx, CreateVariantTypeRequest{Name: "size"})
	require.ErrorIs(t, err, shared.ErrUniqueConstraint)
}
