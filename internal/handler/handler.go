// Package handler exposes the portal over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"counseling/internal/admin"
	"counseling/internal/apperr"
	"counseling/internal/appointment"
	"counseling/internal/auth"
	"counseling/internal/availability"
	"counseling/internal/backend"
	"counseling/internal/booking"
	"counseling/internal/config"
	"counseling/internal/queue"
	"counseling/internal/session"
)

// Deps are the services a Handler serves. Events and Checks may be nil.
type Deps struct {
	Config       config.App
	Log          *zap.Logger
	Sessions     session.Store
	Wizards      booking.SessionStore
	Flow         *booking.Flow
	Backend      backend.Client
	Availability *availability.Book
	Free         availability.Query
	Appointments *appointment.Service
	Users        *appointment.Directory
	Feed         admin.Feed
	Settings     *admin.SettingsStore
	Events       booking.Publisher
	Checks       map[string]func(context.Context) bool
}

// Handler holds dependencies for the HTTP routes.
type Handler struct {
	cfg          config.App
	log          *zap.Logger
	sessions     session.Store
	wizards      booking.SessionStore
	flow         *booking.Flow
	backend      backend.Client
	availability *availability.Book
	free         availability.Query
	appointments *appointment.Service
	users        *appointment.Directory
	feed         admin.Feed
	settings     *admin.SettingsStore
	events       booking.Publisher
	checks       map[string]func(context.Context) bool
}

// New builds a handler.
func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		cfg:          d.Config,
		log:          log,
		sessions:     d.Sessions,
		wizards:      d.Wizards,
		flow:         d.Flow,
		backend:      d.Backend,
		availability: d.Availability,
		free:         d.Free,
		appointments: d.Appointments,
		users:        d.Users,
		feed:         d.Feed,
		settings:     d.Settings,
		events:       d.Events,
		checks:       d.Checks,
	}
}

// Healthz reports every configured dependency check.
func (h *Handler) Healthz(c *gin.Context) {
	body := gin.H{"status": "ok"}
	status := http.StatusOK
	for name, check := range h.checks {
		ok := check(c.Request.Context())
		body[name] = ok
		if !ok {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
	}
	c.JSON(status, body)
}

// fail writes the error response for err and stops the chain.
func fail(c *gin.Context, err error) {
	status, title, details := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": title, "details": details})
}

func classify(err error) (int, string, string) {
	var (
		invalid  *apperr.ValidationError
		conflict *apperr.ConflictError
		network  *apperr.NetworkError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Title, invalid.Message
	case errors.As(err, &conflict):
		return http.StatusConflict, "conflict", conflict.Message
	case errors.As(err, &network):
		return http.StatusBadGateway, "backend unavailable", network.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not found", err.Error()
	}
	return http.StatusInternalServerError, "internal server error", err.Error()
}

// bind decodes the JSON body into v, reporting malformed input as a validation error.
func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return apperr.Invalid("Invalid request", err.Error())
	}
	return nil
}

const (
	providerKey = "session.provider"
	stateKey    = "session.state"
)

func (h *Handler) provider(sessionID string) *session.Provider {
	return session.NewProvider(session.Namespaced(h.sessions, sessionID), h.cfg.MockDelay)
}

// withSession loads the session named by the bearer token.
func (h *Handler) withSession(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session", "details": ""})
		return
	}
	p := h.provider(claims.SessionID)
	st, err := p.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(providerKey, p)
	c.Set(stateKey, st)
	c.Next()
}

func (h *Handler) requireSignedIn(c *gin.Context) {
	if !stateFrom(c).SignedIn() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in", "details": "sign in to continue"})
		return
	}
	c.Next()
}

// requireRole admits sessions whose stored role is one of roles.
func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := stateFrom(c)
		if st.Role != nil {
			for _, r := range roles {
				if st.Role.String() == r {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "details": "requires role " + strings.Join(roles, " or ")})
	}
}

func stateFrom(c *gin.Context) session.State {
	if v, ok := c.Get(stateKey); ok {
		if st, ok := v.(session.State); ok {
			return st
		}
	}
	return session.State{}
}

func providerFrom(c *gin.Context) *session.Provider {
	v, _ := c.Get(providerKey)
	p, _ := v.(*session.Provider)
	return p
}

func sessionID(c *gin.Context) string {
	claims, _ := auth.ClaimsFrom(c)
	return claims.SessionID
}

// publish sends an event when a queue is configured. Failures are logged, never returned.
func (h *Handler) publish(ctx context.Context, typ string, payload any) {
	if h.events == nil {
		return
	}
	msg, err := queue.NewMessage(typ, payload)
	if err == nil {
		err = h.events.Publish(ctx, msg)
	}
	if err != nil {
		h.log.Warn("queue publish failed", zap.String("type", typ), zap.Error(err))
	}
}
