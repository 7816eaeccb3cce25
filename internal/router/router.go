package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/skillswap/backend/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Profile   *apiHandler.ProfileHandler
	Swap      *apiHandler.SwapHandler
	Directory *apiHandler.DirectoryHandler
	Admin     *apiHandler.AdminHandler
	Health    *apiHandler.HealthHandler
}

type Middleware struct {
	Authenticate func(fasthttp.RequestHandler) fasthttp.RequestHandler
	RequireAdmin func(fasthttp.RequestHandler) fasthttp.RequestHandler
	RateLimit    func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

func New(h Handlers, mw Middleware) *router.Router {
	r := router.New()

	r.GET("/health", h.Health.Check)

	// Public
	r.POST("/api/users/signup", mw.RateLimit(h.Auth.Signup))
	r.POST("/api/users/login", mw.RateLimit(h.Auth.Login))
	r.POST("/api/users/logout", h.Auth.Logout)
	r.POST("/api/users/forgot-password", mw.RateLimit(h.Auth.ForgotPassword))
	r.POST("/api/users/reset-password/{token}", h.Auth.ResetPassword)
	r.GET("/api/users/refresh-token", h.Auth.Refresh)
	r.GET("/api/announcement", h.Admin.GetAnnouncement)

	// Authenticated
	r.GET("/api/users/me", mw.Authenticate(h.Auth.Me))
	r.GET("/api/users/skills", mw.Authenticate(h.Directory.ListSkills))
	r.GET("/api/users/search/email", mw.Authenticate(h.Directory.SearchByEmail))
	r.GET("/api/users/search/skill", mw.Authenticate(h.Directory.SearchBySkill))
	r.POST("/api/users/save-skills", mw.Authenticate(h.Profile.SaveSkills))
	r.POST("/api/users/request-skill", mw.Authenticate(h.Swap.RequestSkill))
	r.POST("/api/users/skill-swap-action", mw.Authenticate(h.Swap.SwapAction))

	// Admin
	r.GET("/api/admin/requests", mw.RequireAdmin(h.Admin.AllPending))
	r.GET("/api/admin/requests/{email}", mw.RequireAdmin(h.Admin.PendingForUser))
	r.GET("/api/admin/accepted", mw.RequireAdmin(h.Admin.AllAccepted))
	r.GET("/api/admin/accepted/{email}", mw.RequireAdmin(h.Admin.AcceptedForUser))
	r.GET("/api/admin/users/{email}", mw.RequireAdmin(h.Admin.UserByEmail))
	r.POST("/api/admin/users", mw.RequireAdmin(h.Admin.CreateUser))
	r.POST("/api/admin/users/{userId}/ban", mw.RequireAdmin(h.Admin.Ban))
	r.POST("/api/admin/users/{userId}/unban", mw.RequireAdmin(h.Admin.Unban))
	r.POST("/api/admin/announcement", mw.RequireAdmin(h.Admin.Broadcast))

	return r
}
