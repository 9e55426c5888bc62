package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/http/middleware"
	"github.com/Samadhi-12/MinuteMe/pkg/ratelimit"
)

// Handlers bundles every resource handler. Calendar is nil when Google
// OAuth credentials are not configured.
type Handlers struct {
	Agenda        *Agenda
	Meeting       *Meeting
	Transcription *Transcription
	Minutes       *Minutes
	ActionItem    *ActionItem
	Automation    *Automation
	Notification  *Notification
	Quota         *Quota
	Calendar      *Calendar
	Admin         *Admin
}

// Router holds all handlers
type Router struct {
	environment string
	handlers    Handlers
	auth        echo.MiddlewareFunc
	limiter     *ratelimit.KeyedRateLimiter
	metrics     http.Handler
}

// NewRouter creates a new router with all handlers
func NewRouter(environment string, handlers Handlers, auth echo.MiddlewareFunc, limiter *ratelimit.KeyedRateLimiter, metrics http.Handler) *Router {
	return &Router{
		environment: environment,
		handlers:    handlers,
		auth:        auth,
		limiter:     limiter,
		metrics:     metrics,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", rt.auth)

	// Expensive routes are throttled per user
	heavy := []echo.MiddlewareFunc{}
	if rt.limiter != nil {
		heavy = append(heavy, middleware.RateLimit(rt.limiter))
	}

	rt.setupPipelineRoutes(api, heavy)
	rt.setupAgendaRoutes(api)
	rt.setupMeetingRoutes(api)
	rt.setupNotificationRoutes(api)
	rt.setupCalendarRoutes(api)
	rt.setupAdminRoutes(api)
}

func (rt *Router) setupPipelineRoutes(g *echo.Group, heavy []echo.MiddlewareFunc) {
	h := rt.handlers

	g.POST("/transcribe", h.Transcription.Transcribe, heavy...)
	g.GET("/transcripts", h.Transcription.List)
	g.GET("/transcripts/:id", h.Transcription.Get)
	g.DELETE("/transcripts/:id", h.Transcription.Delete)

	g.POST("/generate-minutes", h.Minutes.Generate, heavy...)
	g.GET("/minutes", h.Minutes.List)
	g.GET("/minutes/:id", h.Minutes.Get)

	g.POST("/generate-action-items", h.ActionItem.Generate, heavy...)
	g.GET("/action-items", h.ActionItem.List)
	g.PATCH("/action-items/:id", h.ActionItem.Update)
	g.DELETE("/action-items/:id", h.ActionItem.Delete)

	g.POST("/process-automated", h.Automation.Process, heavy...)
	g.POST("/process-meeting", h.Automation.Process, heavy...)

	g.GET("/quota", h.Quota.All)
	g.GET("/quota/:kind", h.Quota.Kind)
}

func (rt *Router) setupAgendaRoutes(g *echo.Group) {
	h := rt.handlers.Agenda

	g.POST("/agenda", h.Create)
	g.GET("/agendas", h.List)
	g.GET("/agenda/:id", h.Get)
	g.PATCH("/agenda/:id", h.Update)
	g.DELETE("/agenda/:id", h.Delete)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	h := rt.handlers.Meeting

	g.POST("/schedule-agenda", h.Schedule)
	g.GET("/meetings", h.List)
	g.PATCH("/meetings/:id", h.Update)
	g.DELETE("/meetings/:id", h.Delete)
	g.GET("/events", h.Events)
}

func (rt *Router) setupNotificationRoutes(g *echo.Group) {
	h := rt.handlers.Notification

	g.GET("/notifications", h.List)
	g.PATCH("/notifications/read-all", h.MarkAllRead)
	g.PATCH("/notifications/:id/read", h.MarkRead)
}

// setupCalendarRoutes configures the Google Calendar connection routes
func (rt *Router) setupCalendarRoutes(g *echo.Group) {
	google := g.Group("/auth/google")

	if h := rt.handlers.Calendar; h != nil {
		google.GET("/status", h.Status)
		google.GET("/url", h.URL)
		google.POST("/exchange", h.Exchange)
		google.POST("/disconnect", h.Disconnect)
	} else {
		google.GET("/status", rt.notImplemented)
		google.GET("/url", rt.notImplemented)
		google.POST("/exchange", rt.notImplemented)
		google.POST("/disconnect", rt.notImplemented)
	}
}

func (rt *Router) setupAdminRoutes(g *echo.Group) {
	h := rt.handlers.Admin

	g.GET("/me", h.Me)

	admin := g.Group("/admin", middleware.RequireRole(entities.RoleAdmin))
	admin.GET("/users", h.Users)
	admin.PATCH("/user/:id/role", h.UpdateRole)
	admin.PATCH("/user/:id/tier", h.UpdateTier)
	admin.DELETE("/user/:id", h.DeleteUser)
}

// notImplemented returns 501 when an optional integration is not configured
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, errs{
		Code:    http.StatusNotImplemented,
		Message: "Google Calendar integration is not configured",
		Info:    c.Request().Method + " " + c.Request().URL.Path,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.environment,
	})
}
