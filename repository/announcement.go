package repository

import (
	"context"
	"time"

	"github.com/skillswap/backend/domain"
)

// AnnouncementRepository holds at most one active broadcast; Replace
// swaps it atomically.
type AnnouncementRepository interface {
	Replace(ctx context.Context, announcement *domain.Announcement) error
	Latest(ctx context.Context) (*domain.Announcement, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) error
}
