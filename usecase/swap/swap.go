// Package swap orchestrates the skill-swap negotiation: submitting
// proposals into a target user's inbox and resolving them. All state
// lives on the user record; this package only does the load-mutate-store
// cycle around the domain transitions.
package swap

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

// Submit files a proposal from the requester into the target's inbox.
// Resubmitting the same (requester, offered, wanted) tuple does not
// duplicate the proposal but still refreshes the stored message.
func (uc *UseCase) Submit(ctx context.Context, requester domain.Identity, targetEmail, offeredSkill, wantedSkill, message string) error {
	if targetEmail == "" || offeredSkill == "" || wantedSkill == "" {
		return domain.NewError(domain.ErrCodeInvalid, "target email, offered skill and wanted skill are required")
	}

	target, err := uc.users.GetByEmail(ctx, targetEmail)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.NewError(domain.ErrCodeNotFound, "target user not found")
		}
		return err
	}

	if target.ID == requester.ID {
		return domain.NewError(domain.ErrCodeInvalid, "cannot request a swap with yourself")
	}

	target.SubmitSwap(domain.SwapProposal{
		RequesterID:    requester.ID,
		RequesterEmail: requester.Email,
		OfferedSkill:   offeredSkill,
		WantedSkill:    wantedSkill,
	}, message)

	if err := uc.users.UpdateSwapState(ctx, target); err != nil {
		return err
	}

	uc.logger.Info("swap proposal submitted",
		zap.String("requester_id", requester.ID),
		zap.String("target_id", target.ID),
		zap.String("offered", offeredSkill),
		zap.String("wanted", wantedSkill))
	return nil
}

// Decide resolves a proposal in the caller's own inbox. Only the offeree
// can decide: the operation never touches any record but the caller's.
func (uc *UseCase) Decide(ctx context.Context, caller domain.Identity, requesterEmail, offeredSkill, wantedSkill, action string) (domain.SwapAction, error) {
	parsed, err := domain.ParseSwapAction(action)
	if err != nil {
		return "", err
	}

	user, err := uc.users.GetByID(ctx, caller.ID)
	if err != nil {
		return "", err
	}

	if _, err := user.DecideSwap(requesterEmail, offeredSkill, wantedSkill, parsed); err != nil {
		return "", err
	}

	if err := uc.users.UpdateSwapState(ctx, user); err != nil {
		return "", err
	}

	uc.logger.Info("swap proposal decided",
		zap.String("offeree_id", user.ID),
		zap.String("requester_email", requesterEmail),
		zap.String("action", string(parsed)))
	return parsed, nil
}
