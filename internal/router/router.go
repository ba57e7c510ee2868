package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/academylabs/backend/api/handler"
	"github.com/academylabs/backend/domain"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Claims   *apiHandler.ClaimsHandler
	Course   *apiHandler.CourseHandler
	Progress *apiHandler.ProgressHandler
	Mentor   *apiHandler.MentorHandler
	User     *apiHandler.UserHandler
	Health   *apiHandler.HealthHandler
	Pages    *apiHandler.PagesHandler
}

// Middleware bundles the route guards built in main. RequireRoles produces a
// guard checking the caller's persisted roles; SuperAdmin and AdminClaim
// check the token's privilege flags instead.
type Middleware struct {
	RequireRoles func(roles ...string) func(fasthttp.RequestHandler) fasthttp.RequestHandler
	SuperAdmin   func(fasthttp.RequestHandler) fasthttp.RequestHandler
	AdminClaim   func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

func New(handlers Handlers, mw Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Admin panel pages. The gate in front of the server redirects
	// unauthenticated page requests to /admin/login.
	r.GET("/admin/", handlers.Pages.Dashboard)
	r.GET("/admin/login", handlers.Pages.Login)
	r.GET("/admin/unauthorized", handlers.Pages.Unauthorized)

	// Admin session endpoints. Login and refresh are public; the rest sit
	// behind the gate, and claims administration additionally demands the
	// superAdmin flag on the verified token.
	r.POST("/api/admin/auth/login", handlers.Auth.Login)
	r.POST("/api/admin/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/admin/auth/logout", handlers.Auth.Logout)
	r.GET("/api/admin/me", handlers.Auth.Me)
	r.POST("/api/admin/auth/claims", mw.SuperAdmin(handlers.Claims.Update))
	r.POST("/api/admin/auth/revoke", mw.SuperAdmin(handlers.Claims.Revoke))

	authenticated := mw.RequireRoles()
	admin := mw.RequireRoles(domain.RoleAdmin)
	staff := mw.RequireRoles(domain.RoleAdmin, domain.RoleMentor)

	// Public catalog reads.
	r.GET("/api/v1/courses", handlers.Course.List)
	r.GET("/api/v1/courses/{slug}", handlers.Course.Get)
	r.GET("/api/v1/lessons/{id}", handlers.Course.GetLesson)

	// Learner surface.
	r.GET("/api/v1/profile", authenticated(handlers.User.Profile))
	r.POST("/api/v1/lessons/{id}/complete", authenticated(handlers.Progress.CompleteLesson))
	r.GET("/api/v1/progress", authenticated(handlers.Progress.Completions))
	r.GET("/api/v1/credits", authenticated(handlers.Progress.Credits))
	r.POST("/api/v1/mentor/apply", authenticated(handlers.Mentor.Apply))

	// Catalog administration. Course and topic structure is admin work;
	// lesson content is maintained by staff (admins and mentors).
	r.GET("/api/admin/courses", admin(handlers.Course.List))
	r.POST("/api/admin/courses", admin(handlers.Course.Create))
	r.PUT("/api/admin/courses/{id}", admin(handlers.Course.Update))
	r.DELETE("/api/admin/courses/{id}", admin(handlers.Course.Delete))

	r.POST("/api/admin/topics", admin(handlers.Course.CreateTopic))
	r.PUT("/api/admin/topics/{id}", admin(handlers.Course.UpdateTopic))
	r.DELETE("/api/admin/topics/{id}", admin(handlers.Course.DeleteTopic))

	r.POST("/api/admin/lessons", staff(handlers.Course.CreateLesson))
	r.PUT("/api/admin/lessons/{id}", staff(handlers.Course.UpdateLesson))
	r.DELETE("/api/admin/lessons/{id}", staff(handlers.Course.DeleteLesson))

	// User management.
	r.GET("/api/admin/users", admin(handlers.User.List))
	r.GET("/api/admin/users/{id}", admin(handlers.User.Get))
	r.PUT("/api/admin/users/{id}/roles", admin(handlers.User.SetRoles))

	// Mentor application review.
	r.GET("/api/admin/mentor/applications", admin(handlers.Mentor.List))
	r.POST("/api/admin/mentor/applications/{id}/review", admin(handlers.Mentor.Review))

	return r
}
