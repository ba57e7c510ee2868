package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/internal/infrastructure/monitor"
	"github.com/academylabs/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.Snapshot()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"database":    status.Database,
			"revocations": status.Revocations,
			"queue": map[string]interface{}{
				"online": status.Queue,
				"depth":  status.QueueDepth,
			},
		},
	}

	if status.Healthy() {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
