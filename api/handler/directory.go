package handler

import (
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/skillswap/backend/domain"
	"github.com/skillswap/backend/pkg/httpcontext"
	"github.com/skillswap/backend/usecase/directory"
)

type DirectoryHandler struct {
	baseHandler
	dir *directory.UseCase
}

func NewDirectoryHandler(uc *directory.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dir:         uc,
	}
}

// ListSkills returns the public browse view, optionally narrowed by
// ?availability=, ?name= and ?skill= query params.
func (h *DirectoryHandler) ListSkills(ctx *fasthttp.RequestCtx) {
	var filter directory.Filter

	if raw := string(ctx.QueryArgs().Peek("availability")); raw != "" {
		day, err := domain.ParseWeekday(raw)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		filter.Availability = day
	}
	filter.NameContains = string(ctx.QueryArgs().Peek("name"))
	filter.SkillContains = string(ctx.QueryArgs().Peek("skill"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.dir.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, entries)
}

func (h *DirectoryHandler) SearchByEmail(ctx *fasthttp.RequestCtx) {
	email := string(ctx.QueryArgs().Peek("email"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entry, err := h.dir.SearchByEmail(stdCtx, email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, entry)
}

// SearchBySkill accepts one or more comma-separated skills in ?skill=.
func (h *DirectoryHandler) SearchBySkill(ctx *fasthttp.RequestCtx) {
	raw := string(ctx.QueryArgs().Peek("skill"))
	var skills []string
	if raw != "" {
		skills = strings.Split(raw, ",")
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.dir.SearchBySkill(stdCtx, skills)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, entries)
}
