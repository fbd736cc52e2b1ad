package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"counseling/internal/apperr"
	"counseling/internal/booking"
	"counseling/internal/model"
)

func (h *Handler) StartBooking(c *gin.Context) {
	st := booking.NewState()
	if err := h.wizards.Save(c.Request.Context(), sessionID(c), st); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"state": st})
}

func (h *Handler) GetBooking(c *gin.Context) {
	st, err := h.wizards.Load(c.Request.Context(), sessionID(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.respondWizard(c, st, nil)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	if err := h.wizards.Delete(c.Request.Context(), sessionID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) SearchTeachers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"teachers": h.flow.Search(c.Query("q"))})
}

func (h *Handler) AppointmentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": model.AppointmentTypes})
}

// wizardAction loads the caller's wizard, applies fn and saves the result.
// A missing wizard starts fresh. When fn fails nothing is saved.
func (h *Handler) wizardAction(fn func(c *gin.Context, st *booking.State) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := sessionID(c)
		st, err := h.wizards.Load(ctx, id)
		if errors.Is(err, apperr.ErrNotFound) {
			st, err = booking.NewState(), nil
		}
		if err != nil {
			fail(c, err)
			return
		}
		result, err := fn(c, &st)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.wizards.Save(ctx, id, st); err != nil {
			fail(c, err)
			return
		}
		h.respondWizard(c, st, result)
	}
}

func (h *Handler) respondWizard(c *gin.Context, st booking.State, result any) {
	body := gin.H{"state": st}
	if t, ok := h.flow.Teacher(st.TeacherID); ok {
		body["teacher"] = t
	}
	if result != nil {
		body["result"] = result
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) selectTeacher(c *gin.Context, st *booking.State) (any, error) {
	var req struct {
		TeacherID string `json:"teacherId"`
	}
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return nil, h.flow.SelectTeacher(st, req.TeacherID)
}

func (h *Handler) selectDate(c *gin.Context, st *booking.State) (any, error) {
	var req struct {
		Date string `json:"date"`
	}
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return nil, h.flow.SelectDate(c.Request.Context(), st, req.Date)
}

func (h *Handler) selectTime(c *gin.Context, st *booking.State) (any, error) {
	var req struct {
		Time string `json:"time"`
	}
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return nil, h.flow.SelectTime(st, req.Time)
}

func (h *Handler) setDetails(c *gin.Context, st *booking.State) (any, error) {
	var req struct {
		Type  string `json:"type"`
		Notes string `json:"notes"`
	}
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return nil, h.flow.SetDetails(st, req.Type, req.Notes)
}

func (h *Handler) back(_ *gin.Context, st *booking.State) (any, error) {
	booking.Back(st)
	return nil, nil
}

func (h *Handler) submit(c *gin.Context, st *booking.State) (any, error) {
	who := booking.Student{}
	if u := stateFrom(c).User; u != nil {
		who = booking.Student{ID: u.UID, Name: u.DisplayName}
	}
	res, err := h.flow.Submit(c.Request.Context(), st, who)
	if err != nil {
		return nil, err
	}
	return res, nil
}
