package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/skillswap/backend/api/transport"
	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/pkg/httpcontext"
	"github.com/skillswap/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	profiles *profile.UseCase
}

func NewProfileHandler(uc *profile.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		profiles:    uc,
	}
}

// SaveSkills replaces the caller's profile wholesale. The payload may
// name a user id, but only the caller's own record is ever written.
func (h *ProfileHandler) SaveSkills(ctx *fasthttp.RequestCtx) {
	var req transport.SaveSkillsRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	caller := h.identity(ctx)
	if req.UserID != "" && req.UserID != caller.ID {
		h.respondError(ctx, domain.NewError(domain.ErrCodeForbidden, "cannot modify another user's profile"))
		return
	}

	availability, err := domain.ParseWeekdays(req.Availability)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.profiles.Replace(stdCtx, caller, domain.ProfileUpdate{
		Name:          req.Name,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Availability:  availability,
		Location:      req.Location,
		Public:        public,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, user)
}
