package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/skillswap/backend/api/transport"
	"github.com/skillswap/backend/pkg/httpcontext"
	"github.com/skillswap/backend/usecase/swap"
)

type SwapHandler struct {
	baseHandler
	swaps *swap.UseCase
}

func NewSwapHandler(uc *swap.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SwapHandler {
	return &SwapHandler{
		baseHandler: newBaseHandler(adapter, logger),
		swaps:       uc,
	}
}

// RequestSkill files a swap proposal into the target user's inbox.
func (h *SwapHandler) RequestSkill(ctx *fasthttp.RequestCtx) {
	var req transport.SwapRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	caller := h.identity(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.swaps.Submit(stdCtx, caller, req.TargetEmail, req.OfferedSkill, req.WantedSkill, req.Message); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "swap request sent"})
}

// SwapAction accepts or rejects a pending proposal in the caller's own
// inbox.
func (h *SwapHandler) SwapAction(ctx *fasthttp.RequestCtx) {
	var req transport.SwapActionRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	caller := h.identity(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	action, err := h.swaps.Decide(stdCtx, caller, req.RequesterEmail, req.OfferedSkill, req.WantedSkill, req.Action)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, fasthttp.StatusOK, map[string]string{"message": "swap " + string(action) + "ed"})
}
