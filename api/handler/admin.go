package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/skillswap/backend/api/transport"
	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/pkg/httpcontext"
	"github.com/skillswap/backend/usecase/admin"
)

type AdminHandler struct {
	baseHandler
	admin *admin.UseCase
}

func NewAdminHandler(uc *admin.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		admin:       uc,
	}
}

func (h *AdminHandler) AllPending(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	swaps, err := h.admin.AllPending(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, swaps)
}

func (h *AdminHandler) AllAccepted(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	swaps, err := h.admin.AllAccepted(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, swaps)
}

func (h *AdminHandler) PendingForUser(ctx *fasthttp.RequestCtx) {
	email, _ := ctx.UserValue("email").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	swaps, err := h.admin.PendingForUser(stdCtx, email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, swaps)
}

func (h *AdminHandler) AcceptedForUser(ctx *fasthttp.RequestCtx) {
	email, _ := ctx.UserValue("email").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	swaps, err := h.admin.AcceptedForUser(stdCtx, email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, swaps)
}

func (h *AdminHandler) UserByEmail(ctx *fasthttp.RequestCtx) {
	email, _ := ctx.UserValue("email").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.admin.UserByEmail(stdCtx, email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, user)
}

// CreateUser registers an account on someone's behalf, optionally
// granting admin rights.
func (h *AdminHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	var req transport.AdminSignupRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.admin.CreateUser(stdCtx, req.Email, req.Password, req.Name, req.IsAdmin)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusCreated, user)
}

func (h *AdminHandler) Ban(ctx *fasthttp.RequestCtx) {
	userID, _ := ctx.UserValue("userId").(string)
	if userID == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "userId is required"))
		return
	}

	// The reason is optional; an empty or absent body is fine.
	var req transport.BanRequest
	_ = h.decode(ctx, &req)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.admin.Ban(stdCtx, userID, req.Reason); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "user banned"})
}

func (h *AdminHandler) Unban(ctx *fasthttp.RequestCtx) {
	userID, _ := ctx.UserValue("userId").(string)
	if userID == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "userId is required"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.admin.Unban(stdCtx, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "user unbanned"})
}

// Broadcast replaces the active platform announcement.
func (h *AdminHandler) Broadcast(ctx *fasthttp.RequestCtx) {
	var req transport.AnnouncementRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.admin.Broadcast(stdCtx, req.Message); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "announcement published"})
}

// GetAnnouncement is public: it serves the active broadcast to the
// homepage, or an empty message when none is live.
func (h *AdminHandler) GetAnnouncement(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.admin.Announcement(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, transport.AnnouncementResponse{Message: message})
}
