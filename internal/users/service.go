package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

// Service carries the user commands. PINs are bcrypt hashed on the way in
// and the hash never appears in responses.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, search string, page shared.Pagination) ([]User, int, error) {
	return s.repo.List(ctx, search, page)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return User{}, fmt.Errorf("%w: username is required", shared.ErrValidation)
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return User{}, fmt.Errorf("%w: username %q", shared.ErrUniqueConstraint, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash pin: %w", err)
	}

	return s.repo.Create(ctx, User{
		Username: username,
		PinHash:  string(hash),
		FullName: strings.TrimSpace(req.FullName),
		IsActive: true,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return User{}, fmt.Errorf("%w: username is required", shared.ErrValidation)
		}
		other, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return User{}, fmt.Errorf("check username: %w", err)
		}
		if other != nil && other.ID != id {
			return User{}, fmt.Errorf("%w: username %q", shared.ErrUniqueConstraint, username)
		}
		current.Username = username
	}
	if req.Pin != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Pin), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("hash pin: %w", err)
		}
		current.PinHash = string(hash)
	}
	if req.FullName != nil {
		current.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, current)
}

// Delete refuses to remove a user any order still references.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	n, err := s.repo.CountOrders(ctx, id)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: user is referenced by %d orders", shared.ErrHasChildren, n)
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
