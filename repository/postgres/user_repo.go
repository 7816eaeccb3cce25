package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/repository"
)

const uniqueViolation = "23505"

const userColumns = `
	id, email, password_hash, name, location,
	skills_offered, skills_wanted, availability, ratings,
	public, is_admin, is_banned, ban_reason,
	pending_swaps, pending_swap_messages, accepted_swaps,
	created_at, updated_at
`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, domain.NormalizeEmail(email)))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO users (
		id, email, password_hash, name, location,
		skills_offered, skills_wanted, availability, ratings,
		public, is_admin, is_banned, ban_reason,
		pending_swaps, pending_swap_messages, accepted_swaps,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	RETURNING created_at, updated_at;
	`

	var createdAt, updatedAt time.Time
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Location,
		marshalStrings(user.SkillsOffered),
		marshalStrings(user.SkillsWanted),
		marshalWeekdays(user.Availability),
		marshalInts(user.Ratings),
		user.Public,
		user.IsAdmin,
		user.IsBanned,
		user.BanReason,
		marshalJSON(user.PendingSwaps, []byte(`[]`)),
		marshalJSON(user.PendingSwapMessages, []byte(`{}`)),
		marshalJSON(user.AcceptedSwaps, []byte(`[]`)),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return err
	}

	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE users SET
		name = $2,
		location = $3,
		skills_offered = $4,
		skills_wanted = $5,
		availability = $6,
		public = $7,
		updated_at = NOW()
	WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Location,
		marshalStrings(user.SkillsOffered),
		marshalStrings(user.SkillsWanted),
		marshalWeekdays(user.Availability),
		user.Public,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateSwapState commits the three swap columns in one UPDATE so the
// proposal list and the message map can never be persisted apart.
func (r *userRepository) UpdateSwapState(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE users SET
		pending_swaps = $2,
		pending_swap_messages = $3,
		accepted_swaps = $4,
		updated_at = NOW()
	WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		marshalJSON(user.PendingSwaps, []byte(`[]`)),
		marshalJSON(user.PendingSwapMessages, []byte(`{}`)),
		marshalJSON(user.AcceptedSwaps, []byte(`[]`)),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetBan(ctx context.Context, id string, banned bool, reason string) error {
	const query = `UPDATE users SET is_banned = $2, ban_reason = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, banned, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns all users in stored (creation) order.
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *userRepository) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var skillsOffered, skillsWanted, availability, ratings []byte
	var pendingSwaps, pendingMessages, acceptedSwaps []byte

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Location,
		&skillsOffered, &skillsWanted, &availability, &ratings,
		&user.Public, &user.IsAdmin, &user.IsBanned, &user.BanReason,
		&pendingSwaps, &pendingMessages, &acceptedSwaps,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	unmarshalJSON(skillsOffered, &user.SkillsOffered)
	unmarshalJSON(skillsWanted, &user.SkillsWanted)
	unmarshalJSON(availability, &user.Availability)
	unmarshalJSON(ratings, &user.Ratings)
	unmarshalJSON(pendingSwaps, &user.PendingSwaps)
	unmarshalJSON(pendingMessages, &user.PendingSwapMessages)
	unmarshalJSON(acceptedSwaps, &user.AcceptedSwaps)
	if user.PendingSwapMessages == nil {
		user.PendingSwapMessages = map[string]string{}
	}

	return &user, nil
}
