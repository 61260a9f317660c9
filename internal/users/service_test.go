package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

type stubRepo struct {
	byID       map[int64]User
	orderCount map[int64]int64
	nextID     int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[int64]User), orderCount: make(map[int64]int64), nextID: 1}
}

func (s *stubRepo) List(ctx context.Context, search string, page shared.Pagination) ([]User, int, error) {
	var out []User
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (User, error) {
	u, ok := s.byID[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (s *stubRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range s.byID {
		if strings.EqualFold(u.Username, username) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) Create(ctx context.Context, u User) (User, error) {
	now := time.Now()
	u.ID = s.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	s.byID[u.ID] = u
	s.nextID++
	return u, nil
}

func (s *stubRepo) Update(ctx context.Context, u User) (User, error) {
	if _, ok := s.byID[u.ID]; !ok {
		return User{}, shared.ErrNotFound
	}
	u.UpdatedAt = u.UpdatedAt.Add(time.Millisecond)
	s.byID[u.ID] = u
	return u, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

func (s *stubRepo) TouchLastLogin(ctx context.Context, id int64) error {
	u := s.byID[id]
	now := time.Now()
	u.LastLoginAt = &now
	s.byID[id] = u
	return nil
}

func (s *stubRepo) CountOrders(ctx context.Context, id int64) (int64, error) {
	return s.orderCount[id], nil
}

func TestCreateUserHashesPin(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "cashier1", Pin: "1234", FullName: "First Cashier",
	})
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "1234", u.PinHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte("1234")))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{Username: "cashier1", Pin: "1234", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserRequest{Username: "Cashier1", Pin: "5678", FullName: "B"})
	require.ErrorIs(t, err, shared.ErrUniqueConstraint)
}

func TestUpdateUserChangePin(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserRequest{Username: "cashier1", Pin: "1234", FullName: "A"})
	require.NoError(t, err)

	pin := "9999"
	updated, err := svc.Update(ctx, u.ID, UpdateUserRequest{Pin: &pin})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PinHash), []byte("9999")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.PinHash), []byte("1234")))
}

func TestUpdateUserUsernameTaken(t *testing.T) {
	svc := NewService(newStubRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{Username: "cashier1", Pin: "1234", FullName: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateUserRequest{Username: "cashier2", Pin: "1234", FullName: "B"})
	require.NoError(t, err)

	taken := "cashier1"
	_, err = svc.Update(ctx, b.ID, UpdateUserRequest{Username: &taken})
	require.ErrorIs(t, err, shared.ErrUniqueConstraint)
}

func TestDeleteUserWithOrders(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserRequest{Username: "cashier1", Pin: "1234", FullName: "A"})
	require.NoError(t, err)
	repo.orderCount[u.ID] = 3

	err = svc.Delete(ctx, u.ID)
	require.ErrorIs(t, err, shared.ErrHasChildren)

	repo.orderCount[u.ID] = 0
	require.NoError(t, svc.Delete(ctx, u.ID))
}
