package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/middleware"
	"github.com/academylabs/backend/pkg/httpcontext"
	progressUC "github.com/academylabs/backend/usecase/progress"
)

type ProgressHandler struct {
	baseHandler
	uc *progressUC.UseCase
}

func NewProgressHandler(uc *progressUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Complete a lesson
// @Tags progress
// @Router /api/v1/lessons/{id}/complete [post]
func (h *ProgressHandler) CompleteLesson(ctx *fasthttp.RequestCtx) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}
	lessonID, _ := ctx.UserValue("id").(string)
	if lessonID == "" {
		h.respondError(ctx, domain.ErrMissingParameters)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	completion, err := h.uc.CompleteLesson(stdCtx, user.ID, lessonID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, completion)
}

// @Summary List own completions
// @Tags progress
// @Router /api/v1/progress [get]
func (h *ProgressHandler) Completions(ctx *fasthttp.RequestCtx) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	completions, err := h.uc.Completions(stdCtx, user.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, completions)
}

// @Summary Own credit ledger
// @Tags progress
// @Router /api/v1/credits [get]
func (h *ProgressHandler) Credits(ctx *fasthttp.RequestCtx) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Credits(stdCtx, user.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}
