// Package directory serves the read-only browse/search projections over
// the identity store.
package directory

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/repository"
)

// Filter is the query contract for browsing: every zero field matches
// everything, substring matches are case-insensitive, and the result
// keeps stored order.
type Filter struct {
	Availability  domain.Weekday
	NameContains  string
	SkillContains string
}

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

// List projects all public profiles and applies the filter predicate.
func (uc *UseCase) List(ctx context.Context, filter Filter) ([]domain.DirectoryEntry, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.DirectoryEntry, 0, len(users))
	for i := range users {
		user := &users[i]
		if !user.Public || user.IsBanned {
			continue
		}
		entry := domain.DirectoryEntryOf(user)
		if matches(entry, filter) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// SearchByEmail returns the projection of a single user. Hidden
// profiles answer exactly like missing ones so the endpoint cannot be
// used to probe for private accounts.
func (uc *UseCase) SearchByEmail(ctx context.Context, email string) (*domain.DirectoryEntry, error) {
	if email == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "email is required")
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.Public || user.IsBanned {
		return nil, domain.ErrUserNotFound
	}
	entry := domain.DirectoryEntryOf(user)
	return &entry, nil
}

// SearchBySkill returns users whose offered or wanted skills contain any
// of the requested values (exact membership, as in tag search).
func (uc *UseCase) SearchBySkill(ctx context.Context, skills []string) ([]domain.DirectoryEntry, error) {
	if len(skills) == 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "skill is required")
	}

	wanted := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s != "" {
			wanted[strings.ToLower(s)] = struct{}{}
		}
	}

	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var entries []domain.DirectoryEntry
	for i := range users {
		user := &users[i]
		if !user.Public || user.IsBanned {
			continue
		}
		if hasAnySkill(user.SkillsOffered, wanted) || hasAnySkill(user.SkillsWanted, wanted) {
			entries = append(entries, domain.DirectoryEntryOf(user))
		}
	}
	return entries, nil
}

func matches(entry domain.DirectoryEntry, filter Filter) bool {
	if filter.Availability != "" && !hasDay(entry.Availability, filter.Availability) {
		return false
	}
	if filter.NameContains != "" &&
		!strings.Contains(strings.ToLower(entry.Name), strings.ToLower(filter.NameContains)) {
		return false
	}
	if filter.SkillContains != "" {
		needle := strings.ToLower(filter.SkillContains)
		if !containsSkill(entry.SkillsOffered, needle) && !containsSkill(entry.SkillsWanted, needle) {
			return false
		}
	}
	return true
}

func hasDay(days []domain.Weekday, day domain.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func containsSkill(skills []string, needle string) bool {
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func hasAnySkill(skills []string, wanted map[string]struct{}) bool {
	for _, s := range skills {
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(s))]; ok {
			return true
		}
	}
	return false
}
