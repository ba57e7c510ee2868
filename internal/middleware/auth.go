package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/pkg/httpcontext"
	"github.com/academylabs/backend/pkg/token"
	"github.com/academylabs/backend/repository"
)

const (
	claimsKey = "session_claims"
	userKey   = "session_user"
)

// GateConfig describes the protected surface of the admin panel.
type GateConfig struct {
	// PagePrefix covers browser-facing admin pages; failures redirect.
	PagePrefix string
	// APIPrefix covers admin API routes; failures answer 401 JSON.
	APIPrefix string
	// LoginPath is where unauthenticated page requests are sent.
	LoginPath string
	// PublicPaths pass through the gate unchecked (login page,
	// unauthorized page, the login/refresh endpoints themselves).
	PublicPaths []string
	CookieName  string
}

func (c GateConfig) public(path string) bool {
	for _, p := range c.PublicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// underPrefix matches on path-segment boundaries so that /adminfoo is not
// mistaken for a path under /admin.
func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// AdminGate is the single choke point ahead of every admin route. The session
// cookie's signature, expiry and revocation state are verified on every gated
// request; cookie presence alone never passes. The gate mutates nothing.
func AdminGate(cfg GateConfig, verifier *token.Verifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			path := string(ctx.Path())

			isPage := underPrefix(path, cfg.PagePrefix)
			isAPI := underPrefix(path, cfg.APIPrefix)
			if (!isPage && !isAPI) || cfg.public(path) {
				next(ctx)
				return
			}

			raw := string(ctx.Request.Header.Cookie(cfg.CookieName))
			claims, err := verifier.Verify(raw)
			if err != nil {
				logger.Debug("admin gate rejected request",
					zap.String("path", path),
					zap.Error(err))
				if isAPI {
					writeUnauthorized(ctx)
					return
				}
				ctx.Redirect(cfg.LoginPath, fasthttp.StatusFound)
				return
			}

			ctx.SetUserValue(claimsKey, claims)
			next(ctx)
		}
	}
}

// RequireSuperAdmin guards an individual handler with a verified session
// whose token carries superAdmin. A plain admin claim is insufficient.
func RequireSuperAdmin(cookieName string, verifier *token.Verifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return requireClaims(cookieName, verifier, logger, func(c *token.Claims) bool { return c.SuperAdmin })
}

// RequireAdminClaim guards an individual handler with a verified session
// whose token carries at least the admin claim.
func RequireAdminClaim(cookieName string, verifier *token.Verifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return requireClaims(cookieName, verifier, logger, func(c *token.Claims) bool { return c.Admin || c.SuperAdmin })
}

func requireClaims(cookieName string, verifier *token.Verifier, logger *zap.Logger, allowed func(*token.Claims) bool) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			claims, err := verifier.Verify(credential(ctx, cookieName))
			if err != nil {
				writeUnauthorized(ctx)
				return
			}
			if !allowed(claims) {
				writeForbidden(ctx)
				return
			}
			ctx.SetUserValue(claimsKey, claims)
			next(ctx)
		}
	}
}

// RequireRoles decorates a handler with an allowed-roles predicate over the
// persisted user record. The caller's identity is re-derived from the request
// credential; a missing record is unauthenticated, never an empty-privilege
// pass. An empty roles set admits any authenticated user.
func RequireRoles(cookieName string, verifier *token.Verifier, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger, roles ...string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			claims, err := verifier.Verify(credential(ctx, cookieName))
			if err != nil {
				writeUnauthorized(ctx)
				return
			}

			stdCtx, cancel := adapter.Attach(ctx)
			defer cancel()

			user, err := users.GetByID(stdCtx, claims.UID())
			if err != nil {
				if domain.IsDomainError(err, domain.ErrCodeNotFound) {
					writeUnauthorized(ctx)
					return
				}
				logger.Error("role guard could not load user record",
					zap.String("uid", claims.UID()),
					zap.Error(err))
				writeJSON(ctx, http.StatusInternalServerError,
					transport.NewError(string(domain.ErrCodeUpstream), "user store unavailable", nil))
				return
			}
			if !user.IsActive() {
				writeUnauthorized(ctx)
				return
			}
			if !user.HasAnyRole(roles...) {
				writeForbidden(ctx)
				return
			}

			ctx.SetUserValue(claimsKey, claims)
			ctx.SetUserValue(userKey, user)
			next(ctx)
		}
	}
}

// ClaimsFrom returns the verified session claims attached by a guard.
func ClaimsFrom(ctx *fasthttp.RequestCtx) (*token.Claims, bool) {
	claims, ok := ctx.UserValue(claimsKey).(*token.Claims)
	return claims, ok
}

// UserFrom returns the resolved user record attached by the role guard.
func UserFrom(ctx *fasthttp.RequestCtx) (*domain.User, bool) {
	user, ok := ctx.UserValue(userKey).(*domain.User)
	return user, ok
}

// credential extracts the session token from the cookie or, for API clients,
// a bearer Authorization header.
func credential(ctx *fasthttp.RequestCtx, cookieName string) string {
	if raw := string(ctx.Request.Header.Cookie(cookieName)); raw != "" {
		return raw
	}
	header := string(ctx.Request.Header.Peek("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeUnauthorized(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, http.StatusUnauthorized,
		transport.NewError(string(domain.ErrCodeUnauthorized), "authentication required", nil))
}

func writeForbidden(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, http.StatusForbidden,
		transport.NewError(string(domain.ErrCodeForbidden), "insufficient privileges", nil))
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}
