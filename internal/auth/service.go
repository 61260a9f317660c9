package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/users"
)

// Service authenticates operators by username and PIN. Every failure mode
// reports the same invalid-credentials error so the response never reveals
// whether the username exists.
type Service struct {
	users users.Repository
}

func NewService(users users.Repository) *Service {
	return &Service{users: users}
}

// Login verifies the PIN against the stored bcrypt hash and stamps
// last_login_at on success.
func (s *Service) Login(ctx context.Context, username, pin string) (users.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return users.User{}, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return users.User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return users.User{}, fmt.Errorf("stamp last login: %w", err)
	}
	return s.users.Get(ctx, user.ID)
}

// CurrentUser resolves the user behind the authenticated session.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (users.User, error) {
	return s.users.Get(ctx, userID)
}
