package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/academylabs/backend/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with a bounded
// deadline and request metadata. Every repository call downstream inherits
// the deadline, so a store outage surfaces as a timeout instead of a hang.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs an Adapter using the provided per-request timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach creates a deadline-bound context enriched with request metadata and
// echoes the request ID back on the response.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set("X-Request-ID", reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}

	return stdCtx, cancel
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if header := string(ctx.Request.Header.Peek("X-Request-ID")); strings.TrimSpace(header) != "" {
		return header
	}
	return uuid.NewString()
}
