package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

// decode unmarshals and validates the request body, answering 400 on failure.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, req interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return false
	}
	if err := transport.Validate(req); err != nil {
		h.respondError(ctx, err)
		return false
	}
	return true
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, string(domain.ErrCodeConflict)
	case domain.IsDomainError(err, domain.ErrCodeUpstream),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusInternalServerError, string(domain.ErrCodeUpstream)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
