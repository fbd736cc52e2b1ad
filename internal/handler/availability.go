package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"counseling/internal/apperr"
	"counseling/internal/availability"
)

// teacherFor picks the editor a request addresses: an explicit teacher id, else the caller's uid.
func teacherFor(c *gin.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if id := c.Query("teacher"); id != "" {
		return id
	}
	if u := stateFrom(c).User; u != nil {
		return u.UID
	}
	return ""
}

func (h *Handler) ListAvailability(c *gin.Context) {
	id := teacherFor(c, "")
	c.JSON(http.StatusOK, gin.H{"teacherId": id, "slots": h.availability.Editor(id).Slots()})
}

type addSlotRequest struct {
	TeacherID string `json:"teacherId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (h *Handler) AddAvailability(c *gin.Context) {
	var req addSlotRequest
	if err := bind(c, &req); err != nil {
		fail(c, err)
		return
	}
	slot, err := h.availability.Editor(teacherFor(c, req.TeacherID)).Add(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// RemoveAvailability deletes one slot. An unknown id is answered with removed=false.
func (h *Handler) RemoveAvailability(c *gin.Context) {
	removed := h.availability.Editor(teacherFor(c, "")).Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) SaveAvailability(c *gin.Context) {
	e := h.availability.Editor(teacherFor(c, ""))
	c.JSON(http.StatusOK, gin.H{"message": e.Save(), "slots": e.Slots()})
}

func (h *Handler) TimeOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"times": availability.TimeOptions()})
}

func (h *Handler) FreeTimes(c *gin.Context) {
	teacher, date := c.Query("teacher"), c.Query("date")
	if teacher == "" || date == "" {
		fail(c, apperr.Invalid("Missing information", "teacher and date are required"))
		return
	}
	times, err := h.free.Free(c.Request.Context(), teacher, date)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teacherId": teacher, "date": date, "times": times})
}
