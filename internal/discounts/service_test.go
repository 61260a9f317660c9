package discounts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/types"
)

type stubRepo struct {
	discounts map[int64]Discount
	links     map[int64]int64
	nextID    int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		discounts: make(map[int64]Discount),
		links:     make(map[int64]int64),
		nextID:    1,
	}
}

func (s *stubRepo) List(ctx context.Context) ([]Discount, error) {
	var out []Discount
	for _, d := range s.discounts {
		out = append(out, d)
	}
	return out, nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (Discount, error) {
	d, ok := s.discounts[id]
	if !ok {
		return Discount{}, shared.ErrNotFound
	}
	return d, nil
}

func (s *stubRepo) FindByName(ctx context.Context, name string) (*Discount, error) {
	for _, d := range s.discounts {
		if strings.EqualFold(d.Name, name) {
			found := d
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) Create(ctx context.Context, d Discount) (Discount, error) {
	now := time.Now()
	d.ID = s.nextID
	d.IsActive = true
	d.CreatedAt = now
	d.UpdatedAt = now
	s.discounts[d.ID] = d
	s.nextID++
	return d, nil
}

func (s *stubRepo) Update(ctx context.Context, d Discount) (Discount, error) {
	if _, ok := s.discounts[d.ID]; !ok {
		return Discount{}, shared.ErrNotFound
	}
	s.discounts[d.ID] = d
	return d, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.discounts[id]; !ok {
		return 0, nil
	}
	delete(s.discounts, id)
	return 1, nil
}

func (s *stubRepo) CountItemLinks(ctx context.Context, id int64) (int64, error) {
	return s.links[id], nil
}

func TestCreateDiscount(t *testing.T) {
	svc := NewService(newStubRepo())

	d, err := svc.Create(context.Background(), CreateDiscountRequest{
		Name:  "Summer Sale",
		Type:  DiscountTypePercentage,
		Value: 1000,
		Scope: DiscountScopeItem,
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale", d.Name)
	assert.True(t, d.IsActive)
	assert.Nil(t, d.StartsAt)
}

func TestCreateDiscountDuplicateName(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	req := CreateDiscountRequest{Name: "Summer Sale", Type: DiscountTypeFixed, Value: 500, Scope: DiscountScopeOrder}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	req.Name = "summer sale"
	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, shared.ErrUniqueConstraint)
}

func TestCreateDiscountWindowInverted(t *testing.T) {
	svc := NewService(newStubRepo())

	starts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ends := starts.Add(-24 * time.Hour)
	_, err := svc.Create(context.Background(), CreateDiscountRequest{
		Name:     "Backwards",
		Type:     DiscountTypeFixed,
		Value:    100,
		Scope:    DiscountScopeItem,
		StartsAt: &starts,
		EndsAt:   &ends,
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateDiscountWindowInverted(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	starts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	d, err := svc.Create(ctx, CreateDiscountRequest{
		Name:     "Summer Sale",
		Type:     DiscountTypeFixed,
		Value:    100,
		Scope:    DiscountScopeItem,
		StartsAt: &starts,
	})
	require.NoError(t, err)

	ends := starts.Add(-time.Hour)
	_, err = svc.Update(ctx, d.ID, UpdateDiscountRequest{EndsAt: types.Set(ends)})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateDiscountClearWindow(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	starts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ends := starts.Add(30 * 24 * time.Hour)
	d, err := svc.Create(ctx, CreateDiscountRequest{
		Name:     "Summer Sale",
		Type:     DiscountTypeFixed,
		Value:    100,
		Scope:    DiscountScopeItem,
		StartsAt: &starts,
		EndsAt:   &ends,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, d.ID, UpdateDiscountRequest{
		StartsAt: types.Null[time.Time](),
		EndsAt:   types.Null[time.Time](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.StartsAt)
	assert.Nil(t, updated.EndsAt)
}

func TestUpdateDiscountRenameCollision(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateDiscountRequest{Name: "First", Type: DiscountTypeFixed, Value: 100, Scope: DiscountScopeItem})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateDiscountRequest{Name: "Second", Type: DiscountTypeFixed, Value: 100, Scope: DiscountScopeItem})
	require.NoError(t, err)

	name := "First"
	_, err = svc.Update(ctx, second.ID, UpdateDiscountRequest{Name: &name})
	require.ErrorIs(t, err, shared.ErrUniqueConstraint)

	// Renaming to the current name (case change only) is allowed.
	name = "SECOND"
	updated, err := svc.Update(ctx, second.ID, UpdateDiscountRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "SECOND", updated.Name)
}

func TestDeleteDiscountLinked(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateDiscountRequest{Name: "Summer Sale", Type: DiscountTypeFixed, Value: 100, Scope: DiscountScopeItem})
	require.NoError(t, err)
	repo.links[d.ID] = 3

	err = svc.Delete(ctx, d.ID)
	require.ErrorIs(t, err, shared.ErrHasChildren)

	repo.links[d.ID] = 0
	require.NoError(t, svc.Delete(ctx, d.ID))
}

func TestDeleteDiscountUnknown(t *testing.T) {
	svc := NewService(newStubRepo())

	err := svc.Delete(context.Background(), 42)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
