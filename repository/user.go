package repository

import (
	"context"

	"github.com/skillswap/backend/domain"
)

// UserRepository is the identity store boundary. Swap-state mutations go
// through UpdateSwapState, which commits the pending list, the message
// map and the accepted list in a single write.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdateSwapState(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetBan(ctx context.Context, id string, banned bool, reason string) error
	List(ctx context.Context) ([]domain.User, error)
}
