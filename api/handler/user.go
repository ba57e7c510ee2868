package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/middleware"
	"github.com/academylabs/backend/pkg/httpcontext"
	"github.com/academylabs/backend/repository"
	userUC "github.com/academylabs/backend/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Own profile
// @Tags users
// @Router /api/v1/profile [get]
func (h *UserHandler) Profile(ctx *fasthttp.RequestCtx) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary List users
// @Tags users
// @Router /api/v1/users [get]
func (h *UserHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.UserFilter{
		Search: string(ctx.QueryArgs().Peek("search")),
		Role:   string(ctx.QueryArgs().Peek("role")),
		Status: string(ctx.QueryArgs().Peek("status")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Get user
// @Tags users
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Replace user roles
// @Tags users
// @Router /api/v1/users/{id}/roles [put]
func (h *UserHandler) SetRoles(ctx *fasthttp.RequestCtx) {
	actor, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}
	id, _ := ctx.UserValue("id").(string)

	var req transport.UserRolesRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetRoles(stdCtx, actor.ID, id, req.Roles); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
