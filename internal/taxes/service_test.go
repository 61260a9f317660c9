package taxes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/types"
)

type stubRepo struct {
	taxes    map[int64]Tax
	groups   map[int64]TaxGroup
	links    map[[2]int64]TaxGroupTax
	itemRefs map[int64]int64
	nextID   int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		taxes:    make(map[int64]Tax),
		groups:   make(map[int64]TaxGroup),
		links:    make(map[[2]int64]TaxGroupTax),
		itemRefs: make(map[int64]int64),
		nextID:   1,
	}
}

func (s *stubRepo) ListTaxes(ctx context.Context) ([]Tax, error) {
	var out []Tax
	for _, t := range s.taxes {
		out = append(out, t)
	}
	return out, nil
}

func (s *stubRepo) GetTax(ctx context.Context, id int64) (Tax, error) {
	t, ok := s.taxes[id]
	if !ok {
		return Tax{}, shared.ErrNotFound
	}
	return t, nil
}

func (s *stubRepo) CreateTax(ctx context.Context, name string, rate types.Percent) (Tax, error) {
	now := time.Now()
	t := Tax{ID: s.nextID, Name: name, Rate: rate, IsActive: true, CreatedAt: now, UpdatedAt: now}
	s.taxes[t.ID] = t
	s.nextID++
	return t, nil
}

func (s *stubRepo) UpdateTax(ctx context.Context, t Tax) (Tax, error) {
	if _, ok := s.taxes[t.ID]; !ok {
		return Tax{}, shared.ErrNotFound
	}
	t.UpdatedAt = t.UpdatedAt.Add(time.Millisecond)
	s.taxes[t.ID] = t
	return t, nil
}

func (s *stubRepo) DeleteTax(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.taxes[id]; !ok {
		return 0, nil
	}
	delete(s.taxes, id)
	return 1, nil
}

func (s *stubRepo) CountTaxReferences(ctx context.Context, taxID int64) (int64, error) {
	n := s.itemRefs[taxID]
	for key := range s.links {
		if key[1] == taxID {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ListGroups(ctx context.Context) ([]TaxGroup, error) {
	var out []TaxGroup
	for _, g := range s.groups {
		out = append(out, g)
	}
	return out, nil
}

func (s *stubRepo) GetGroup(ctx context.Context, id int64) (TaxGroup, error) {
	g, ok := s.groups[id]
	if !ok {
		return TaxGroup{}, shared.ErrNotFound
	}
	return g, nil
}

func (s *stubRepo) CreateGroup(ctx context.Context, name string) (TaxGroup, error) {
	now := time.Now()
	g := TaxGroup{ID: s.nextID, Name: name, CreatedAt: now, UpdatedAt: now}
	s.groups[g.ID] = g
	s.nextID++
	return g, nil
}

func (s *stubRepo) UpdateGroup(ctx context.Context, g TaxGroup) (TaxGroup, error) {
	if _, ok := s.groups[g.ID]; !ok {
		return TaxGroup{}, shared.ErrNotFound
	}
	s.groups[g.ID] = g
	return g, nil
}

func (s *stubRepo) DeleteGroup(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.groups[id]; !ok {
		return 0, nil
	}
	delete(s.groups, id)
	return 1, nil
}

func (s *stubRepo) FindGroupLink(ctx context.Context, groupID, taxID int64) (*TaxGroupTax, error) {
	l, ok := s.links[[2]int64{groupID, taxID}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *stubRepo) InsertGroupLink(ctx context.Context, groupID, taxID int64) (TaxGroupTax, error) {
	l := TaxGroupTax{GroupID: groupID, TaxID: taxID, CreatedAt: time.Now()}
	s.links[[2]int64{groupID, taxID}] = l
	return l, nil
}

func (s *stubRepo) DeleteGroupLink(ctx context.Context, groupID, taxID int64) (int64, error) {
	key := [2]int64{groupID, taxID}
	if _, ok := s.links[key]; !ok {
		return 0, nil
	}
	delete(s.links, key)
	return 1, nil
}

func (s *stubRepo) ListGroupTaxes(ctx context.Context, groupID int64) ([]Tax, error) {
	var out []Tax
	for key := range s.links {
		if key[0] == groupID {
			out = append(out, s.taxes[key[1]])
		}
	}
	return out, nil
}

func TestCreateTax(t *testing.T) {
	svc := NewService(newStubRepo())

	tax, err := svc.CreateTax(context.Background(), CreateTaxRequest{Name: "VAT", Rate: types.NewPercent(21)})
	require.NoError(t, err)
	assert.Equal(t, "VAT", tax.Name)
	assert.Equal(t, types.NewPercent(21), tax.Rate)
	assert.True(t, tax.IsActive)
}

func TestCreateTaxNegativeRate(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.CreateTax(context.Background(), CreateTaxRequest{Name: "VAT", Rate: types.NewPercent(-1)})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteTaxLinkedToItem(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	tax, err := svc.CreateTax(ctx, CreateTaxRequest{Name: "VAT", Rate: types.NewPercent(21)})
	require.NoError(t, err)
	repo.itemRefs[tax.ID] = 2

	err = svc.DeleteTax(ctx, tax.ID)
	require.ErrorIs(t, err, shared.ErrHasChildren)
}

func TestDeleteTaxLinkedToGroup(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	tax, err := svc.CreateTax(ctx, CreateTaxRequest{Name: "VAT", Rate: types.NewPercent(21)})
	require.NoError(t, err)
	group, err := svc.CreateGroup(ctx, CreateTaxGroupRequest{Name: "Standard"})
	require.NoError(t, err)
	_, err = svc.AddTaxToGroup(ctx, group.ID, tax.ID)
	require.NoError(t, err)

	err = svc.DeleteTax(ctx, tax.ID)
	require.ErrorIs(t, err, shared.ErrHasChildren)

	require.NoError(t, svc.RemoveTaxFromGroup(ctx, group.ID, tax.ID))
	require.NoError(t, svc.DeleteTax(ctx, tax.ID))
}

func TestAddTaxToGroupDuplicate(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	tax, err := svc.CreateTax(ctx, CreateTaxRequest{Name: "VAT", Rate: types.NewPercent(21)})
	require.NoError(t, err)
	group, err := svc.CreateGroup(ctx, CreateTaxGroupRequest{Name: "Standard"})
	require.NoError(t, err)

	_, err = svc.AddTaxToGroup(ctx, group.ID, tax.ID)
	require.NoError(t, err)

	_, err = svc.AddTaxToGroup(ctx, group.ID, tax.ID)
	require.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestAddTaxToGroupUnknownTax(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, CreateTaxGroupRequest{Name: "Standard"})
	require.NoError(t, err)

	_, err = svc.AddTaxToGroup(ctx, group.ID, 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRemoveTaxFromGroupMissingLink(t *testing.T) {
	svc := NewService(newStubRepo())

	err := svc.RemoveTaxFromGroup(context.Background(), 1, 2)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateTaxRate(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	tax, err := svc.CreateTax(ctx, CreateTaxRequest{Name: "VAT", Rate: types.NewPercent(21)})
	require.NoError(t, err)

	rate := types.NewPercent(9)
	updated, err := svc.UpdateTax(ctx, tax.ID, UpdateTaxRequest{Rate: &rate})
	require.NoError(t, err)
	assert.Equal(t, rate, updated.Rate)
	assert.Equal(t, "VAT", updated.Name)
}
