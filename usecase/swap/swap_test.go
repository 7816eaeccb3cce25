package swap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/domain"
)

// fakeUserRepo is an in-memory stand-in for the Postgres repository.
// UpdateSwapState replaces the stored record wholesale, mirroring the
// single-statement commit of the real implementation.
type fakeUserRepo struct {
	users            map[string]*domain.User
	swapStateWrites  int
	failOnSwapUpdate error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateSwapState(_ context.Context, user *domain.User) error {
	if r.failOnSwapUpdate != nil {
		return r.failOnSwapUpdate
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	r.swapStateWrites++
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	if u, ok := r.users[id]; ok {
		u.PasswordHash = hash
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *fakeUserRepo) SetBan(_ context.Context, id string, banned bool, reason string) error {
	if u, ok := r.users[id]; ok {
		u.IsBanned = banned
		u.BanReason = reason
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func testUser(id, email string) *domain.User {
	return &domain.User{
		ID:                  id,
		Email:               email,
		PendingSwaps:        []domain.SwapProposal{},
		PendingSwapMessages: map[string]string{},
		AcceptedSwaps:       []domain.SwapAgreement{},
	}
}

func TestSubmitFilesProposalIntoTargetInbox(t *testing.T) {
	repo := newFakeUserRepo(
		testUser("u-alice", "alice@example.com"),
		testUser("u-bob", "bob@example.com"),
	)
	uc := New(repo, nil)

	alice := domain.Identity{ID: "u-alice", Email: "alice@example.com"}
	err := uc.Submit(context.Background(), alice, "bob@example.com", "Guitar", "Piano", "evenings only")
	require.NoError(t, err)

	bob := repo.users["u-bob"]
	require.Len(t, bob.PendingSwaps, 1)
	assert.Equal(t, "u-alice", bob.PendingSwaps[0].RequesterID)
	assert.Equal(t, "alice@example.com", bob.PendingSwaps[0].RequesterEmail)
	assert.Equal(t, "Offered: Guitar, Wanted: Piano, Message: evenings only", bob.PendingSwapMessages["u-alice"])
	assert.Equal(t, 1, repo.swapStateWrites)
}

func TestSubmitResubmissionDoesNotDuplicate(t *testing.T) {
	repo := newFakeUserRepo(
		testUser("u-alice", "alice@example.com"),
		testUser("u-bob", "bob@example.com"),
	)
	uc := New(repo, nil)
	alice := domain.Identity{ID: "u-alice", Email: "alice@example.com"}

	require.NoError(t, uc.Submit(context.Background(), alice, "bob@example.com", "Guitar", "Piano", "first"))
	require.NoError(t, uc.Submit(context.Background(), alice, "bob@example.com", "Guitar", "Piano", "second"))

	bob := repo.users["u-bob"]
	require.Len(t, bob.PendingSwaps, 1)
	assert.Equal(t, "Offered: Guitar, Wanted: Piano, Message: second", bob.PendingSwapMessages["u-alice"])
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	uc := New(newFakeUserRepo(), nil)
	alice := domain.Identity{ID: "u-alice", Email: "alice@example.com"}

	err := uc.Submit(context.Background(), alice, "bob@example.com", "", "Piano", "")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSubmitUnknownTargetIsNotFound(t *testing.T) {
	uc := New(newFakeUserRepo(testUser("u-alice", "alice@example.com")), nil)
	alice := domain.Identity{ID: "u-alice", Email: "alice@example.com"}

	err := uc.Submit(context.Background(), alice, "nobody@example.com", "Guitar", "Piano", "")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestSubmitToSelfIsRejected(t *testing.T) {
	repo := newFakeUserRepo(testUser("u-alice", "alice@example.com"))
	uc := New(repo, nil)
	alice := domain.Identity{ID: "u-alice", Email: "alice@example.com"}

	err := uc.Submit(context.Background(), alice, "alice@example.com", "Guitar", "Piano", "")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, repo.users["u-alice"].PendingSwaps)
}

func TestDecideAcceptPersistsAtomically(t *testing.T) {
	bob := testUser("u-bob", "bob@example.com")
	bob.SubmitSwap(domain.SwapProposal{
		RequesterID:    "u-alice",
		RequesterEmail: "alice@example.com",
		OfferedSkill:   "Guitar",
		WantedSkill:    "Piano",
	}, "hi")
	repo := newFakeUserRepo(bob)
	uc := New(repo, nil)

	action, err := uc.Decide(context.Background(),
		domain.Identity{ID: "u-bob", Email: "bob@example.com"},
		"alice@example.com", "Guitar", "Piano", "accept")
	require.NoError(t, err)
	assert.Equal(t, domain.SwapAccept, action)

	stored := repo.users["u-bob"]
	assert.Empty(t, stored.PendingSwaps)
	assert.Empty(t, stored.PendingSwapMessages)
	require.Len(t, stored.AcceptedSwaps, 1)
	assert.Equal(t, 1, repo.swapStateWrites, "all three swap fields commit in one write")
}

func TestDecideOnlyTouchesCallersOwnInbox(t *testing.T) {
	bob := testUser("u-bob", "bob@example.com")
	carol := testUser("u-carol", "carol@example.com")
	p := domain.SwapProposal{
		RequesterID:    "u-alice",
		RequesterEmail: "alice@example.com",
		OfferedSkill:   "Guitar",
		WantedSkill:    "Piano",
	}
	bob.SubmitSwap(p, "")
	carol.SubmitSwap(p, "")
	repo := newFakeUserRepo(bob, carol)
	uc := New(repo, nil)

	_, err := uc.Decide(context.Background(),
		domain.Identity{ID: "u-bob", Email: "bob@example.com"},
		"alice@example.com", "Guitar", "Piano", "reject")
	require.NoError(t, err)

	assert.Empty(t, repo.users["u-bob"].PendingSwaps)
	require.Len(t, repo.users["u-carol"].PendingSwaps, 1, "another user's identical proposal stays pending")
}

func TestDecideInvalidActionFailsBeforeLookup(t *testing.T) {
	repo := newFakeUserRepo(testUser("u-bob", "bob@example.com"))
	uc := New(repo, nil)

	_, err := uc.Decide(context.Background(),
		domain.Identity{ID: "u-bob", Email: "bob@example.com"},
		"alice@example.com", "Guitar", "Piano", "maybe")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Zero(t, repo.swapStateWrites)
}

func TestDecideNoMatchDoesNotPersist(t *testing.T) {
	repo := newFakeUserRepo(testUser("u-bob", "bob@example.com"))
	uc := New(repo, nil)

	_, err := uc.Decide(context.Background(),
		domain.Identity{ID: "u-bob", Email: "bob@example.com"},
		"alice@example.com", "Guitar", "Piano", "accept")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
	assert.Zero(t, repo.swapStateWrites)
}
