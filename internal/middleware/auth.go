package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/pkg/token"
	"github.com/skillswap/backend/repository"
)

// Header names the auth middleware uses to pass the verified identity to
// handlers.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

// Auth verifies bearer access tokens and resolves them to live user
// records, so deleted or banned accounts are cut off even while their
// tokens are still formally valid.
type Auth struct {
	tokens  *token.Manager
	users   repository.UserRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewAuth(tokens *token.Manager, users repository.UserRepository, timeout time.Duration, logger *zap.Logger) *Auth {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{tokens: tokens, users: users, timeout: timeout, logger: logger}
}

// Authenticate admits any authenticated, unbanned user.
func (a *Auth) Authenticate(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := a.resolve(ctx)
		if !ok {
			return
		}
		ctx.Request.Header.Set(HeaderUserID, user.ID)
		ctx.Request.Header.Set(HeaderUserEmail, user.Email)
		next(ctx)
	}
}

// RequireAdmin admits only administrators.
func (a *Auth) RequireAdmin(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := a.resolve(ctx)
		if !ok {
			return
		}
		if !user.IsAdmin {
			reject(ctx, fasthttp.StatusForbidden, "admin access required")
			return
		}
		ctx.Request.Header.Set(HeaderUserID, user.ID)
		ctx.Request.Header.Set(HeaderUserEmail, user.Email)
		next(ctx)
	}
}

func (a *Auth) resolve(ctx *fasthttp.RequestCtx) (*domain.User, bool) {
	tokenString := extractToken(ctx)
	if tokenString == "" {
		reject(ctx, fasthttp.StatusUnauthorized, "no token provided")
		return nil, false
	}

	claims, err := a.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		a.logger.Warn("invalid access token", zap.Error(err))
		reject(ctx, fasthttp.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}

	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	user, err := a.users.GetByID(stdCtx, claims.UserID)
	if err != nil {
		reject(ctx, fasthttp.StatusUnauthorized, "user not found")
		return nil, false
	}
	if user.IsBanned {
		reject(ctx, fasthttp.StatusForbidden, "account banned: "+user.BanReason)
		return nil, false
	}
	return user, true
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func reject(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(map[string]string{"status": "error", "error": message})
	ctx.SetBody(body)
}
