package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/middleware"
	"github.com/academylabs/backend/pkg/httpcontext"
	authUC "github.com/academylabs/backend/usecase/auth"
)

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	baseHandler
	uc     *authUC.UseCase
	cookie CookieConfig
}

func NewAuthHandler(uc *authUC.UseCase, cookie CookieConfig, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookie:      cookie,
	}
}

// @Summary Admin login
// @Tags auth
// @Router /api/admin/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session.Token)
	h.respondSuccess(ctx, http.StatusOK, transport.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.Claims.ExpiresAt.Unix(),
	})
}

// @Summary Refresh session
// @Tags auth
// @Router /api/admin/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	raw := string(ctx.Request.Header.Cookie(h.cookie.Name))
	if raw == "" {
		var req transport.SessionResponse
		if !h.decode(ctx, &req) {
			return
		}
		raw = req.Token
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Refresh(stdCtx, raw)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session.Token)
	h.respondSuccess(ctx, http.StatusOK, transport.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.Claims.ExpiresAt.Unix(),
	})
}

// @Summary Logout
// @Tags auth
// @Router /api/admin/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	h.expireSessionCookie(ctx)
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Current session claims
// @Tags auth
// @Router /api/admin/me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.MeResponse{
		UID:          claims.UID(),
		Email:        claims.Email,
		IsAdmin:      claims.Admin,
		IsSuperAdmin: claims.SuperAdmin,
	})
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, token string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookie.Name)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSecure(h.cookie.Secure)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetExpire(time.Now().Add(h.cookie.TTL))
	ctx.Response.Header.SetCookie(c)
}

func (h *AuthHandler) expireSessionCookie(ctx *fasthttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookie.Name)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSecure(h.cookie.Secure)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(c)
}
