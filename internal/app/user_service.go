package app

import (
	"context"

	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/domain"
)

type UserRepository interface {
	UpsertUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
}

// UserService mirrors identity-provider accounts into the local users
// table so orders and events can reference them.
type UserService struct {
	repo  UserRepository
	clock clock.Clock
}

func NewUserService(repo UserRepository, clk clock.Clock) *UserService {
	return &UserService{
		repo:  repo,
		clock: clk,
	}
}

// Sync upserts the viewer's profile from the provider's claims.
func (s *UserService) Sync(ctx context.Context, viewer *auth.Identity) (domain.User, error) {
	if viewer == nil {
		return domain.User{}, domain.ErrIdentityRequired
	}
	return s.repo.UpsertUser(ctx, domain.User{
		ID:        viewer.Subject,
		Email:     viewer.Email,
		Username:  viewer.Username,
		FirstName: viewer.FirstName,
		LastName:  viewer.LastName,
		CreatedAt: s.clock.Now(),
	})
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.repo.GetUser(ctx, id)
}
