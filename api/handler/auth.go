package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/skillswap/backend/api/transport"
	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/pkg/httpcontext"
	"github.com/skillswap/backend/usecase/auth"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	baseHandler
	auth *auth.UseCase
}

func NewAuthHandler(uc *auth.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		auth:        uc,
	}
}

func (h *AuthHandler) Signup(ctx *fasthttp.RequestCtx) {
	var req transport.SignupRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, pair, err := h.auth.Signup(stdCtx, req.Email, req.Password, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setRefreshCookie(ctx, pair)
	h.respondSuccess(ctx, fasthttp.StatusCreated, transport.TokenResponse{
		Email:       user.Email,
		AccessToken: pair.AccessToken,
	})
}

func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, pair, err := h.auth.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setRefreshCookie(ctx, pair)
	h.respondSuccess(ctx, fasthttp.StatusOK, transport.TokenResponse{
		Email:       user.Email,
		AccessToken: pair.AccessToken,
	})
}

// Refresh exchanges the cookie-borne refresh token for a new access
// token without touching credentials.
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	refreshToken := string(ctx.Request.Header.Cookie(refreshCookieName))
	if refreshToken == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeUnauthorized, "no refresh token provided"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	access, err := h.auth.Refresh(stdCtx, refreshToken)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, fasthttp.StatusOK, transport.TokenResponse{AccessToken: access})
}

func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	refreshToken := string(ctx.Request.Header.Cookie(refreshCookieName))
	if refreshToken != "" {
		stdCtx, cancel := h.requestContext(ctx)
		defer cancel()
		h.auth.Logout(stdCtx, refreshToken)
	}

	h.clearRefreshCookie(ctx)
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) ForgotPassword(ctx *fasthttp.RequestCtx) {
	var req transport.ForgotPasswordRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.auth.ForgotPassword(stdCtx, req.Email); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "reset link sent"})
}

func (h *AuthHandler) ResetPassword(ctx *fasthttp.RequestCtx) {
	resetToken, _ := ctx.UserValue("token").(string)
	if resetToken == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "missing reset token"))
		return
	}

	var req transport.ResetPasswordRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.auth.ResetPassword(stdCtx, resetToken, req.Password); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "password updated"})
}

// Me returns the authenticated caller's own record.
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	caller := h.identity(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.auth.Me(stdCtx, caller.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, user)
}

func (h *AuthHandler) setRefreshCookie(ctx *fasthttp.RequestCtx, pair *auth.TokenPair) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(refreshCookieName)
	cookie.SetValue(pair.RefreshToken)
	cookie.SetExpire(pair.RefreshExpiresAt)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	ctx.Response.Header.SetCookie(cookie)
}

func (h *AuthHandler) clearRefreshCookie(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(refreshCookieName)
	cookie.SetValue("")
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	ctx.Response.Header.SetCookie(cookie)
}
