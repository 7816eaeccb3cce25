package domain

import (
	"fmt"
	"time"
)

// SwapProposal is a pending request sitting in the offeree's inbox. It
// has no identifier of its own: the (RequesterID, OfferedSkill,
// WantedSkill) tuple is the identity, compared structurally.
type SwapProposal struct {
	RequesterID    string `json:"requester_id"`
	RequesterEmail string `json:"requester_email"`
	OfferedSkill   string `json:"offered_skill"`
	WantedSkill    string `json:"wanted_skill"`
}

// SwapAgreement is a finalized swap. Terminal: once appended it never
// transitions again.
type SwapAgreement struct {
	RequesterID    string `json:"requester_id"`
	RequesterEmail string `json:"requester_email"`
	OfferedSkill   string `json:"offered_skill"`
	WantedSkill    string `json:"wanted_skill"`
}

// SwapAction is the offeree's decision on a pending proposal.
type SwapAction string

const (
	SwapAccept SwapAction = "accept"
	SwapReject SwapAction = "reject"
)

// ParseSwapAction validates the wire value for a swap decision.
func ParseSwapAction(s string) (SwapAction, error) {
	switch SwapAction(s) {
	case SwapAccept, SwapReject:
		return SwapAction(s), nil
	default:
		return "", NewError(ErrCodeInvalid, "invalid action, must be 'accept' or 'reject'")
	}
}

// FormatSwapMessage builds the message text stored alongside a pending
// proposal.
func FormatSwapMessage(offeredSkill, wantedSkill, message string) string {
	return fmt.Sprintf("Offered: %s, Wanted: %s, Message: %s", offeredSkill, wantedSkill, message)
}

// SubmitSwap records a proposal in this user's inbox. Submission is
// idempotent on the proposal tuple: an exact duplicate leaves the
// pending list untouched. The message entry is written unconditionally,
// so a resubmission refreshes the text (last write wins).
func (u *User) SubmitSwap(p SwapProposal, message string) {
	duplicate := false
	for _, existing := range u.PendingSwaps {
		if existing.sameTuple(p.RequesterID, p.OfferedSkill, p.WantedSkill) {
			duplicate = true
			break
		}
	}
	if !duplicate {
		u.PendingSwaps = append(u.PendingSwaps, p)
	}

	if u.PendingSwapMessages == nil {
		u.PendingSwapMessages = map[string]string{}
	}
	u.PendingSwapMessages[p.RequesterID] = FormatSwapMessage(p.OfferedSkill, p.WantedSkill, message)
	u.UpdatedAt = time.Now()
}

// DecideSwap resolves a pending proposal identified by the requester's
// email and the exact skill pair. The matched entry is removed from the
// pending list (remaining order preserved) and, when no other proposal
// from the same requester remains, the requester's message entry is
// removed with it: the message map must never hold a key that no
// pending proposal can account for, nor lose one that still can.
// Accept appends an equal-valued agreement; reject discards.
//
// The returned agreement is only meaningful when action is SwapAccept.
func (u *User) DecideSwap(requesterEmail, offeredSkill, wantedSkill string, action SwapAction) (SwapAgreement, error) {
	idx := -1
	for i, p := range u.PendingSwaps {
		if p.RequesterEmail == requesterEmail && p.OfferedSkill == offeredSkill && p.WantedSkill == wantedSkill {
			idx = i
			break
		}
	}
	if idx == -1 {
		return SwapAgreement{}, NewError(ErrCodeNotFound, "no matching pending swap found")
	}

	matched := u.PendingSwaps[idx]
	u.PendingSwaps = append(u.PendingSwaps[:idx], u.PendingSwaps[idx+1:]...)

	if !u.hasPendingFrom(matched.RequesterID) {
		delete(u.PendingSwapMessages, matched.RequesterID)
	}

	agreement := SwapAgreement{
		RequesterID:    matched.RequesterID,
		RequesterEmail: matched.RequesterEmail,
		OfferedSkill:   matched.OfferedSkill,
		WantedSkill:    matched.WantedSkill,
	}
	if action == SwapAccept {
		u.AcceptedSwaps = append(u.AcceptedSwaps, agreement)
	}
	u.UpdatedAt = time.Now()
	return agreement, nil
}

func (u *User) hasPendingFrom(requesterID string) bool {
	for _, p := range u.PendingSwaps {
		if p.RequesterID == requesterID {
			return true
		}
	}
	return false
}

func (p SwapProposal) sameTuple(requesterID, offeredSkill, wantedSkill string) bool {
	return p.RequesterID == requesterID && p.OfferedSkill == offeredSkill && p.WantedSkill == wantedSkill
}
