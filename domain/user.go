package domain

import (
	"strings"
	"time"
)

// User is the single persisted record per account: credentials, profile
// fields and the swap negotiation state owned by the swap engine.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name,omitempty"`
	Location      string    `json:"location,omitempty"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
	Availability  []Weekday `json:"availability"`
	Ratings       []int     `json:"ratings,omitempty"`
	Public        bool      `json:"public"`
	IsAdmin       bool      `json:"is_admin"`
	IsBanned      bool      `json:"is_banned"`
	BanReason     string    `json:"ban_reason,omitempty"`

	// Swap state. PendingSwapMessages is keyed by the requester's user ID
	// and must stay in lockstep with PendingSwaps; both are mutated only
	// through SubmitSwap and DecideSwap.
	PendingSwaps        []SwapProposal    `json:"pending_swaps"`
	PendingSwapMessages map[string]string `json:"pending_swap_messages"`
	AcceptedSwaps       []SwapAgreement   `json:"accepted_swaps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the already-authenticated caller passed into usecases by
// the auth boundary.
type Identity struct {
	ID    string
	Email string
}

// NormalizeEmail returns the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate carries the full desired profile state. Replacement is
// not a merge: omitted sequences reset to empty.
type ProfileUpdate struct {
	Name          string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  []Weekday
	Location      string
	Public        bool
}

// ReplaceProfile overwrites the profile fields with the provided state.
// Name is kept when the update leaves it empty, matching the save-skills
// contract where the name field is optional.
func (u *User) ReplaceProfile(update ProfileUpdate) {
	if update.Name != "" {
		u.Name = update.Name
	}
	u.SkillsOffered = emptyIfNil(update.SkillsOffered)
	u.SkillsWanted = emptyIfNil(update.SkillsWanted)
	if update.Availability == nil {
		u.Availability = []Weekday{}
	} else {
		u.Availability = update.Availability
	}
	u.Location = update.Location
	u.Public = update.Public
	u.UpdatedAt = time.Now()
}

// DirectoryEntry is the public-facing projection served to browsers.
type DirectoryEntry struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Location      string    `json:"location,omitempty"`
	SkillsOffered []string  `json:"skills"`
	SkillsWanted  []string  `json:"wanted_skills"`
	Availability  []Weekday `json:"availability"`
	Rating        []int     `json:"rating"`
}

// DirectoryEntryOf projects the browsable subset of a user record.
func DirectoryEntryOf(u *User) DirectoryEntry {
	return DirectoryEntry{
		Name:          u.Name,
		Email:         u.Email,
		Location:      u.Location,
		SkillsOffered: emptyIfNil(u.SkillsOffered),
		SkillsWanted:  emptyIfNil(u.SkillsWanted),
		Availability:  u.Availability,
		Rating:        u.Ratings,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
