package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/middleware"
	"github.com/academylabs/backend/pkg/httpcontext"
	claimsUC "github.com/academylabs/backend/usecase/claims"
)

type ClaimsHandler struct {
	baseHandler
	uc *claimsUC.UseCase
}

func NewClaimsHandler(uc *claimsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ClaimsHandler {
	return &ClaimsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Set or remove identity claims
// @Tags claims
// @Router /api/admin/auth/claims [post]
func (h *ClaimsHandler) Update(ctx *fasthttp.RequestCtx) {
	actor, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	var req transport.ClaimsRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var err error
	switch req.Action {
	case transport.ClaimsActionSet:
		err = h.uc.Set(stdCtx, actor.UID(), req.UID, domain.Claims{
			Admin:      req.IsAdmin,
			SuperAdmin: req.IsSuperAdmin,
		}, req.Revoke)
	case transport.ClaimsActionRemove:
		err = h.uc.Remove(stdCtx, actor.UID(), req.UID, req.Revoke)
	default:
		err = domain.ErrInvalidPayload
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Revoke all sessions of an identity
// @Tags claims
// @Router /api/admin/auth/revoke [post]
func (h *ClaimsHandler) Revoke(ctx *fasthttp.RequestCtx) {
	actor, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	var req struct {
		UID string `json:"uid" validate:"required"`
	}
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Revoke(stdCtx, actor.UID(), req.UID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
