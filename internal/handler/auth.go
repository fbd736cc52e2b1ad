package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"counseling/internal/auth"
	"counseling/internal/logging"
	"counseling/internal/queue"
	"counseling/internal/role"
	"counseling/internal/session"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionOrNew reuses the bearer's session id, or starts a fresh one.
func sessionOrNew(c *gin.Context) string {
	if id := sessionID(c); id != "" {
		return id
	}
	return uuid.NewString()
}

func (h *Handler) issue(c *gin.Context, sid, r string) (auth.Token, bool) {
	tok, err := auth.Issue(sid, r, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL)
	if err != nil {
		fail(c, err)
		return auth.Token{}, false
	}
	return tok, true
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := bind(c, &req); err != nil {
		fail(c, err)
		return
	}
	sid := sessionOrNew(c)
	st, err := h.provider(sid).SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	tok, ok := h.issue(c, sid, st.Role.String())
	if !ok {
		return
	}
	logging.From(c).Info("signed in", zap.String("uid", st.User.UID), zap.String("role", st.Role.String()))
	c.JSON(http.StatusOK, gin.H{"user": st.User, "role": st.Role, "token": tok.AccessToken, "expiresAt": tok.ExpiresAt})
}

func (h *Handler) Register(c *gin.Context) {
	var req session.RegisterData
	if err := bind(c, &req); err != nil {
		fail(c, err)
		return
	}
	sid := sessionOrNew(c)
	res, err := h.provider(sid).Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(c.Request.Context(), queue.TypeUserRegistered, queue.UserRegistered{
		Name:  strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email: req.Email,
		Role:  req.Role,
		At:    time.Now().UTC(),
	})
	tok, ok := h.issue(c, sid, req.Role)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": res.Success, "message": res.Message, "token": tok.AccessToken, "expiresAt": tok.ExpiresAt})
}

func (h *Handler) SignOut(c *gin.Context) {
	ctx := c.Request.Context()
	if err := providerFrom(c).SignOut(ctx); err != nil {
		fail(c, err)
		return
	}
	if err := h.wizards.Delete(ctx, sessionID(c)); err != nil {
		logging.From(c).Warn("clear booking session", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the session identity. A signed-out session answers null user and role.
func (h *Handler) Me(c *gin.Context) {
	st := stateFrom(c)
	nav := []role.NavLink{}
	if st.Role != nil {
		if links, err := role.NavLinks(*st.Role); err == nil {
			nav = links
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": st.User, "role": st.Role, "nav": nav})
}
