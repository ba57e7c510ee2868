package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/middleware"
	"github.com/academylabs/backend/pkg/httpcontext"
	mentorUC "github.com/academylabs/backend/usecase/mentor"
)

type MentorHandler struct {
	baseHandler
	uc *mentorUC.UseCase
}

func NewMentorHandler(uc *mentorUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MentorHandler {
	return &MentorHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Apply to become a mentor
// @Tags mentors
// @Router /api/v1/mentor-applications [post]
func (h *MentorHandler) Apply(ctx *fasthttp.RequestCtx) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	var req transport.MentorApplyRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.uc.Apply(stdCtx, user.ID, req.Statement)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, app)
}

// @Summary List mentor applications
// @Tags mentors
// @Router /api/v1/mentor-applications [get]
func (h *MentorHandler) List(ctx *fasthttp.RequestCtx) {
	status := string(ctx.QueryArgs().Peek("status"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	apps, err := h.uc.List(stdCtx, status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, apps)
}

// @Summary Review a mentor application
// @Tags mentors
// @Router /api/v1/mentor-applications/{id}/review [post]
func (h *MentorHandler) Review(ctx *fasthttp.RequestCtx) {
	reviewer, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondError(ctx, domain.ErrMissingParameters)
		return
	}

	var req transport.MentorReviewRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var err error
	switch req.Action {
	case "approve":
		err = h.uc.Approve(stdCtx, id, reviewer.ID, req.Note)
	case "reject":
		err = h.uc.Reject(stdCtx, id, reviewer.ID, req.Note)
	default:
		err = domain.ErrInvalidPayload
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
