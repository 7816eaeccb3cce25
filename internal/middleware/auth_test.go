package middleware

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/pkg/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(context.Context, *domain.User) error          { return nil }
func (r *stubUserRepo) UpdateProfile(context.Context, *domain.User) error   { return nil }
func (r *stubUserRepo) UpdateSwapState(context.Context, *domain.User) error { return nil }
func (r *stubUserRepo) UpdatePassword(context.Context, string, string) error {
	return nil
}
func (r *stubUserRepo) SetBan(context.Context, string, bool, string) error { return nil }
func (r *stubUserRepo) List(context.Context) ([]domain.User, error)        { return nil, nil }

func authTestManager() *token.Manager {
	return token.NewManager(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		ResetSecret:   "reset-secret",
	})
}

func newAuthMiddleware(users ...*domain.User) (*Auth, *token.Manager) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	tokens := authTestManager()
	return NewAuth(tokens, repo, time.Second, nil), tokens
}

func requestWithBearer(t *testing.T, tokens *token.Manager, userID, email string) *fasthttp.RequestCtx {
	t.Helper()
	signed, _, err := tokens.NewAccessToken(userID, email)
	require.NoError(t, err)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+signed)
	return &ctx
}

func TestAuthenticateSetsIdentityHeaders(t *testing.T) {
	auth, tokens := newAuthMiddleware(&domain.User{ID: "u-1", Email: "alice@example.com"})

	var next *fasthttp.RequestCtx
	handler := auth.Authenticate(func(ctx *fasthttp.RequestCtx) { next = ctx })

	ctx := requestWithBearer(t, tokens, "u-1", "alice@example.com")
	handler(ctx)

	require.NotNil(t, next, "handler behind the middleware must run")
	assert.Equal(t, "u-1", string(next.Request.Header.Peek(HeaderUserID)))
	assert.Equal(t, "alice@example.com", string(next.Request.Header.Peek(HeaderUserEmail)))
}

func TestAuthenticateRejectsMissingAndInvalidTokens(t *testing.T) {
	auth, _ := newAuthMiddleware()
	handler := auth.Authenticate(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	var noToken fasthttp.RequestCtx
	handler(&noToken)
	assert.Equal(t, fasthttp.StatusUnauthorized, noToken.Response.StatusCode())

	var badToken fasthttp.RequestCtx
	badToken.Request.Header.Set("Authorization", "Bearer not-a-jwt")
	handler(&badToken)
	assert.Equal(t, fasthttp.StatusUnauthorized, badToken.Response.StatusCode())
}

func TestAuthenticateRejectsBannedUserWithValidJSON(t *testing.T) {
	auth, tokens := newAuthMiddleware(&domain.User{
		ID:        "u-1",
		Email:     "alice@example.com",
		IsBanned:  true,
		BanReason: `posting "spam" repeatedly`,
	})
	handler := auth.Authenticate(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("banned user must not reach the handler")
	})

	ctx := requestWithBearer(t, tokens, "u-1", "alice@example.com")
	handler(ctx)

	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())

	// The quoted ban reason must survive as escaped, parseable JSON.
	var body map[string]string
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], `posting "spam" repeatedly`)
}

func TestRequireAdminGate(t *testing.T) {
	auth, tokens := newAuthMiddleware(
		&domain.User{ID: "u-1", Email: "alice@example.com"},
		&domain.User{ID: "u-2", Email: "mod@example.com", IsAdmin: true},
	)

	called := false
	handler := auth.RequireAdmin(func(ctx *fasthttp.RequestCtx) { called = true })

	member := requestWithBearer(t, tokens, "u-1", "alice@example.com")
	handler(member)
	assert.Equal(t, fasthttp.StatusForbidden, member.Response.StatusCode())
	assert.False(t, called)

	admin := requestWithBearer(t, tokens, "u-2", "mod@example.com")
	handler(admin)
	assert.True(t, called)
}
