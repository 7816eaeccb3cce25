// Package admin implements moderation: cross-user swap oversight,
// banning, admin user creation and the homepage announcement.
package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/repository"
	authUC "github.com/skillswap/backend/usecase/auth"
)

type UseCase struct {
	users         repository.UserRepository
	announcements repository.AnnouncementRepository
	logger        *zap.Logger
}

func New(users repository.UserRepository, announcements repository.AnnouncementRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, announcements: announcements, logger: logger}
}

// RoutedProposal is a pending proposal flattened with its recipient for
// the all-users oversight view.
type RoutedProposal struct {
	RecipientEmail string `json:"recipient_email"`
	domain.SwapProposal
}

// RoutedAgreement mirrors RoutedProposal for accepted swaps.
type RoutedAgreement struct {
	RecipientEmail string `json:"recipient_email"`
	domain.SwapAgreement
}

// AllPending flattens every user's pending proposals.
func (uc *UseCase) AllPending(ctx context.Context) ([]RoutedProposal, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	var all []RoutedProposal
	for i := range users {
		for _, p := range users[i].PendingSwaps {
			all = append(all, RoutedProposal{RecipientEmail: users[i].Email, SwapProposal: p})
		}
	}
	return all, nil
}

// AllAccepted flattens every user's accepted swaps.
func (uc *UseCase) AllAccepted(ctx context.Context) ([]RoutedAgreement, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	var all []RoutedAgreement
	for i := range users {
		for _, a := range users[i].AcceptedSwaps {
			all = append(all, RoutedAgreement{RecipientEmail: users[i].Email, SwapAgreement: a})
		}
	}
	return all, nil
}

// PendingForUser returns one user's pending proposals.
func (uc *UseCase) PendingForUser(ctx context.Context, email string) ([]domain.SwapProposal, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.PendingSwaps, nil
}

// AcceptedForUser returns one user's accepted swaps.
func (uc *UseCase) AcceptedForUser(ctx context.Context, email string) ([]domain.SwapAgreement, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.AcceptedSwaps, nil
}

// UserByEmail returns the full record for moderation (password hash is
// never serialized).
func (uc *UseCase) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.users.GetByEmail(ctx, email)
}

// CreateUser registers an account on someone's behalf, optionally with
// admin rights.
func (uc *UseCase) CreateUser(ctx context.Context, email, password, name string, isAdmin bool) (*domain.User, error) {
	user, err := authUC.NewUser(email, password, name, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("admin created user", zap.String("user_id", user.ID), zap.Bool("is_admin", isAdmin))
	return user, nil
}

// Ban marks a user banned with a reason.
func (uc *UseCase) Ban(ctx context.Context, userID, reason string) error {
	if reason == "" {
		reason = "No reason provided"
	}
	if err := uc.users.SetBan(ctx, userID, true, reason); err != nil {
		return err
	}
	uc.logger.Info("user banned", zap.String("user_id", userID), zap.String("reason", reason))
	return nil
}

// Unban lifts a ban; unbanning a user who is not banned is an error.
func (uc *UseCase) Unban(ctx context.Context, userID string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsBanned {
		return domain.NewError(domain.ErrCodeInvalid, "user is not currently banned")
	}
	if err := uc.users.SetBan(ctx, userID, false, ""); err != nil {
		return err
	}
	uc.logger.Info("user unbanned", zap.String("user_id", userID))
	return nil
}

// Broadcast replaces the active announcement.
func (uc *UseCase) Broadcast(ctx context.Context, message string) error {
	if message == "" {
		return domain.NewError(domain.ErrCodeInvalid, "no message provided")
	}
	return uc.announcements.Replace(ctx, &domain.Announcement{
		ID:      uuid.NewString(),
		Message: message,
	})
}

// Announcement returns the active broadcast, purging it on read once it
// has outlived its 24h window. An empty message means nothing is active.
func (uc *UseCase) Announcement(ctx context.Context) (string, error) {
	a, err := uc.announcements.Latest(ctx)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return "", nil
		}
		return "", err
	}

	if a.IsExpired(time.Now()) {
		if err := uc.announcements.DeleteOlderThan(ctx, time.Now().Add(-domain.AnnouncementTTL)); err != nil {
			uc.logger.Warn("failed to purge expired announcement", zap.Error(err))
		}
		return "", nil
	}
	return a.Message, nil
}
