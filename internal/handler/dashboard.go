package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"counseling/internal/admin"
	"counseling/internal/apperr"
	"counseling/internal/role"
)

const (
	dashboardActivity = 5
	topTeachers       = 5
)

// Dashboard dispatches on the session role.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	st := stateFrom(c)
	if st.Role == nil {
		fail(c, apperr.Invalid("No role", "Choose a role before opening the dashboard."))
		return
	}
	kind, err := role.DashboardKind(*st.Role)
	if err != nil {
		fail(c, apperr.Invalid("No role", err.Error()))
		return
	}

	switch kind {
	case role.StudentDashboard:
		d, err := h.backend.FetchDashboard(ctx, st.Role)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "dashboard": d})

	case role.TeacherDashboard:
		d, err := h.backend.FetchTeacherDashboard(ctx)
		if err != nil {
			fail(c, err)
			return
		}
		slots := h.availability.Editor(st.User.UID).Slots()
		c.JSON(http.StatusOK, gin.H{"kind": kind, "dashboard": d, "availability": slots})

	case role.AdminDashboard:
		stats, err := h.stats(ctx)
		if err != nil {
			fail(c, err)
			return
		}
		recent, err := h.feed.Recent(ctx, dashboardActivity)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "stats": stats, "activity": recent})
	}
}

func (h *Handler) stats(ctx context.Context) (admin.Stats, error) {
	appts, err := h.appointments.List(ctx)
	if err != nil {
		return admin.Stats{}, err
	}
	return admin.Compute(h.users.List(), appts, topTeachers), nil
}
