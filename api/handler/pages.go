package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/pkg/httpcontext"
)

// PagesHandler serves the minimal server-rendered shells of the admin panel.
// The real UI is a separate frontend; these pages exist so the gate's
// redirect targets resolve and the panel can bootstrap.
type PagesHandler struct {
	baseHandler
}

func NewPagesHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{baseHandler: newBaseHandler(adapter, logger)}
}

// @Summary Admin panel shell
// @Tags pages
// @Router /admin/ [get]
func (h *PagesHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	h.renderPage(ctx, "Academy Admin", `<h1>Academy Admin</h1><div id="app"></div>`)
}

// @Summary Admin login page
// @Tags pages
// @Router /admin/login [get]
func (h *PagesHandler) Login(ctx *fasthttp.RequestCtx) {
	h.renderPage(ctx, "Sign in", `<h1>Sign in</h1><div id="login"></div>`)
}

// @Summary Unauthorized page
// @Tags pages
// @Router /admin/unauthorized [get]
func (h *PagesHandler) Unauthorized(ctx *fasthttp.RequestCtx) {
	h.renderPage(ctx, "Unauthorized", `<h1>Unauthorized</h1><p>Your account does not have access to this panel.</p>`)
}

func (h *PagesHandler) renderPage(ctx *fasthttp.RequestCtx, title, body string) {
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(`<!doctype html><html><head><title>` + title + `</title></head><body>` + body + `</body></html>`)
}
