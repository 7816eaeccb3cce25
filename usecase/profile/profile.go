package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// Replace overwrites the caller's profile with the provided state.
// Full-replace, not a merge: callers resend everything they want kept.
func (uc *UseCase) Replace(ctx context.Context, caller domain.Identity, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	user.ReplaceProfile(update)

	if err := uc.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
