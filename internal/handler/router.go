package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"counseling/internal/auth"
	"counseling/internal/httpmiddleware"
	"counseling/internal/logging"
	"counseling/internal/metrics"
	"counseling/internal/role"
)

// NewRouter mounts every route behind the shared middleware stack.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.Recovery(h.log))
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(logging.Middleware(h.log))
	r.Use(httpmiddleware.CORS(h.cfg.AllowedOrigins()))
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(metrics.Middleware())
	if h.cfg.RateLimitPerMin > 0 {
		r.Use(httpmiddleware.NewRateLimiter(h.cfg.RateLimitPerMin, h.cfg.RateLimitPerMin).GinMiddleware())
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.Healthz)

	h.Mount(r.Group("/v1"))
	return r
}

// Mount registers the /v1 API on g.
func (h *Handler) Mount(g *gin.RouterGroup) {
	key, issuer := h.cfg.JWTSigningKey, h.cfg.JWTIssuer

	open := g.Group("/auth", auth.OptionalSessionAuth(key, issuer))
	open.POST("/signin", h.SignIn)
	open.POST("/register", h.Register)

	s := g.Group("", auth.SessionAuth(key, issuer), h.withSession)
	s.POST("/auth/signout", h.SignOut)
	s.GET("/auth/me", h.Me)

	in := s.Group("", h.requireSignedIn)
	in.GET("/dashboard", h.Dashboard)

	b := in.Group("/booking")
	b.POST("/session", h.StartBooking)
	b.GET("/session", h.GetBooking)
	b.DELETE("/session", h.CancelBooking)
	b.GET("/teachers", h.SearchTeachers)
	b.GET("/types", h.AppointmentTypes)
	b.POST("/teacher", h.wizardAction(h.selectTeacher))
	b.POST("/date", h.wizardAction(h.selectDate))
	b.POST("/time", h.wizardAction(h.selectTime))
	b.POST("/details", h.wizardAction(h.setDetails))
	b.POST("/back", h.wizardAction(h.back))
	b.POST("/submit", h.wizardAction(h.submit))

	av := in.Group("/availability")
	av.GET("", h.ListAvailability)
	av.GET("/options", h.TimeOptions)
	av.GET("/free", h.FreeTimes)
	teacher := av.Group("", requireRole(role.Teacher.String()))
	teacher.POST("", h.AddAvailability)
	teacher.DELETE("/:id", h.RemoveAvailability)
	teacher.POST("/save", h.SaveAvailability)

	ad := in.Group("/admin", requireRole(role.Admin.String()))
	ad.GET("/users", h.ListUsers)
	ad.POST("/users/bulk", h.BulkUsers)
	ad.GET("/users/export", h.ExportUsers)
	ad.GET("/appointments", h.ListAppointments)
	ad.GET("/appointments/export", h.ExportAppointments)
	ad.PUT("/appointments/:id/status", h.SetAppointmentStatus)
	ad.GET("/stats", h.Stats)
	ad.GET("/activity", h.Activity)
	ad.GET("/settings", h.GetSettings)
	ad.PUT("/settings", h.UpdateSettings)
	ad.POST("/settings/reset", h.ResetSettings)
}
