package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"counseling/internal/admin"
	"counseling/internal/apperr"
	"counseling/internal/listing"
	"counseling/internal/model"
	"counseling/internal/queue"
)

func pageParam(c *gin.Context) int {
	p, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return p
}

func (h *Handler) filteredUsers(c *gin.Context) ([]model.User, bool) {
	var f listing.UserFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		fail(c, apperr.Invalid("Invalid filter", err.Error()))
		return nil, false
	}
	if err := f.Validate(); err != nil {
		fail(c, err)
		return nil, false
	}
	return listing.Users(h.users.List(), f), true
}

func (h *Handler) filteredAppointments(c *gin.Context) ([]model.Appointment, bool) {
	var f listing.AppointmentFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		fail(c, apperr.Invalid("Invalid filter", err.Error()))
		return nil, false
	}
	if err := f.Validate(); err != nil {
		fail(c, err)
		return nil, false
	}
	items, err := h.appointments.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return listing.Appointments(items, f), true
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, ok := h.filteredUsers(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, listing.Paginate(users, pageParam(c), h.cfg.PageSize))
}

func (h *Handler) BulkUsers(c *gin.Context) {
	var req struct {
		Action string   `json:"action"`
		IDs    []string `json:"ids"`
	}
	if err := bind(c, &req); err != nil {
		fail(c, err)
		return
	}
	action, err := listing.ParseBulkAction(req.Action)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := listing.ApplyBulk(h.users, action, req.IDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Status(http.StatusOK)
}

func (h *Handler) ExportUsers(c *gin.Context) {
	users, ok := h.filteredUsers(c)
	if !ok {
		return
	}
	attachment(c, "users.csv")
	if err := listing.WriteUsersCSV(c.Writer, users); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	items, ok := h.filteredAppointments(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, listing.Paginate(items, pageParam(c), h.cfg.PageSize))
}

func (h *Handler) ExportAppointments(c *gin.Context) {
	items, ok := h.filteredAppointments(c)
	if !ok {
		return
	}
	attachment(c, "appointments.csv")
	if err := listing.WriteAppointmentsCSV(c.Writer, items); err != nil {
		_ = c.Error(err)
	}
}

// SetAppointmentStatus relabels an appointment. Any status may follow any other.
func (h *Handler) SetAppointmentStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := bind(c, &req); err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.appointments.SetStatus(ctx, id, req.Status); err != nil {
		fail(c, err)
		return
	}
	a, err := h.appointments.Get(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	by := ""
	if u := stateFrom(c).User; u != nil {
		by = u.DisplayName
	}
	h.publish(ctx, queue.TypeAppointmentStatus, queue.AppointmentStatus{
		AppointmentID: a.ID,
		StudentName:   a.StudentName,
		TeacherName:   a.TeacherName,
		Status:        string(a.Status),
		ChangedBy:     by,
		At:            time.Now().UTC(),
	})
	c.JSON(http.StatusOK, gin.H{"appointment": a})
}

func (h *Handler) Stats(c *gin.Context) {
	s, err := h.stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Activity(c *gin.Context) {
	n, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.feed.Recent(c.Request.Context(), n)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": entries})
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Get())
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var next admin.Settings
	if err := bind(c, &next); err != nil {
		fail(c, err)
		return
	}
	saved, err := h.settings.Update(next)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) ResetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Reset())
}
