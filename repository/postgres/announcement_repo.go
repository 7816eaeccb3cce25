package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/repository"
)

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository instantiates a Postgres-backed announcement repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) repository.AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

// Replace removes any previous broadcast and stores the new one in a
// single transaction, keeping at most one active announcement.
func (r *announcementRepository) Replace(ctx context.Context, announcement *domain.Announcement) error {
	if announcement == nil || announcement.Message == "" {
		return domain.ErrInvalidPayload
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM announcements`); err != nil {
		return err
	}

	const insert = `
	INSERT INTO announcements (id, message, created_at)
	VALUES ($1, $2, COALESCE($3, NOW()))
	RETURNING created_at;
	`
	var createdAt time.Time
	if err := tx.QueryRow(ctx, insert,
		announcement.ID,
		announcement.Message,
		nullTime(announcement.CreatedAt),
	).Scan(&createdAt); err != nil {
		return err
	}
	announcement.CreatedAt = createdAt

	return tx.Commit(ctx)
}

func (r *announcementRepository) Latest(ctx context.Context) (*domain.Announcement, error) {
	const query = `
	SELECT id, message, created_at
	FROM announcements
	ORDER BY created_at DESC
	LIMIT 1
	`
	var a domain.Announcement
	err := r.pool.QueryRow(ctx, query).Scan(&a.ID, &a.Message, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE created_at < $1`, cutoff)
	return err
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
