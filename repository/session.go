package repository

import (
	"context"

	"github.com/skillswap/backend/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.RefreshSession, error)
	Save(ctx context.Context, session *domain.RefreshSession) error
	Delete(ctx context.Context, id string) error
}
