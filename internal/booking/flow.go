package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"counseling/internal/apperr"
	"counseling/internal/availability"
	"counseling/internal/backend"
	"counseling/internal/metrics"
	"counseling/internal/model"
	"counseling/internal/queue"
)

// Publisher is the part of a queue the wizard writes to.
type Publisher interface {
	Publish(ctx context.Context, msg queue.Message) error
}

// Student identifies who is booking.
type Student struct {
	ID   string
	Name string
}

// Flow applies wizard actions to a State. Actions that fail leave the state untouched.
type Flow struct {
	teachers []model.Teacher
	query    availability.Query
	client   backend.Client
	events   Publisher
	log      *zap.Logger
}

// NewFlow wires a wizard. events may be nil.
func NewFlow(teachers []model.Teacher, query availability.Query, client backend.Client, events Publisher, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{teachers: teachers, query: query, client: client, events: events, log: log}
}

// Search matches name or department, case-insensitively. An empty query returns every teacher.
func (f *Flow) Search(q string) []model.Teacher {
	q = strings.ToLower(q)
	out := make([]model.Teacher, 0, len(f.teachers))
	for _, t := range f.teachers {
		if q == "" || strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Department), q) {
			out = append(out, t)
		}
	}
	return out
}

// Teacher looks up a teacher by id.
func (f *Flow) Teacher(id string) (model.Teacher, bool) {
	for _, t := range f.teachers {
		if t.ID == id {
			return t, true
		}
	}
	return model.Teacher{}, false
}

func (f *Flow) SelectTeacher(st *State, teacherID string) error {
	if _, ok := f.Teacher(teacherID); !ok {
		return apperr.Invalid("Unknown teacher", "Please choose a teacher from the list.")
	}
	st.TeacherID = teacherID
	st.Date = ""
	st.Time = ""
	st.Times = nil
	st.Step = StepSelectDate
	metrics.WizardTransitions.WithLabelValues("teacher").Inc()
	return nil
}

// SelectDate accepts one of the teacher's listed dates and loads its free times.
func (f *Flow) SelectDate(ctx context.Context, st *State, date string) error {
	t, ok := f.Teacher(st.TeacherID)
	if !ok {
		return apperr.Invalid("Missing information", "Please select a teacher first.")
	}
	if !t.HasDate(date) {
		return apperr.Invalid("Date unavailable", t.Name+" is not available on "+date+".")
	}
	times, err := f.query.Free(ctx, t.ID, date)
	if err != nil {
		return err
	}
	st.Date = date
	st.Time = ""
	st.Times = times
	st.Step = StepSelectTime
	metrics.WizardTransitions.WithLabelValues("date").Inc()
	return nil
}

// SelectTime accepts one of the times offered for the chosen date.
func (f *Flow) SelectTime(st *State, label string) error {
	if st.Date == "" {
		return apperr.Invalid("Missing information", "Please select a date first.")
	}
	found := false
	for _, iv := range st.Times {
		if iv.Label == label {
			found = true
			break
		}
	}
	if !found {
		return apperr.Invalid("Time unavailable", label+" is not offered on "+st.Date+".")
	}
	st.Time = label
	st.Step = StepConfirmDetails
	metrics.WizardTransitions.WithLabelValues("time").Inc()
	return nil
}

// SetDetails sets the appointment type and notes. The step does not change.
func (f *Flow) SetDetails(st *State, typ, notes string) error {
	if _, ok := model.LookupAppointmentType(typ); !ok {
		return apperr.Invalid("Invalid appointment type", "Unknown appointment type "+typ+".")
	}
	st.Type = typ
	st.Notes = notes
	return nil
}

// Back moves one step back, never below the first. Selections are kept.
func Back(st *State) {
	if st.Step > StepSearchTeacher {
		st.Step--
		metrics.WizardTransitions.WithLabelValues("back").Inc()
	}
}

// Submit books the selected appointment. On success the wizard starts over;
// on any error the state is unchanged so the user can resubmit.
func (f *Flow) Submit(ctx context.Context, st *State, who Student) (backend.BookingResult, error) {
	if st.TeacherID == "" || st.Date == "" || st.Time == "" || st.Type == "" {
		return backend.BookingResult{}, apperr.Invalid("Missing information", "Please complete all required fields.")
	}

	req := backend.BookingRequest{
		TeacherID:   st.TeacherID,
		Date:        st.Date,
		Time:        st.Time,
		Type:        st.Type,
		Notes:       st.Notes,
		StudentID:   who.ID,
		StudentName: who.Name,
	}
	res, err := f.client.BookAppointment(ctx, req)
	if err != nil {
		metrics.BookingSubmissions.WithLabelValues("failed").Inc()
		f.log.Warn("booking failed", zap.String("teacher_id", req.TeacherID), zap.String("date", req.Date), zap.Error(err))
		return backend.BookingResult{}, err
	}
	metrics.BookingSubmissions.WithLabelValues("booked").Inc()
	f.log.Info("appointment booked", zap.String("appointment_id", res.AppointmentID), zap.String("teacher_id", req.TeacherID))

	f.publish(ctx, req, res)
	st.reset()
	return res, nil
}

func (f *Flow) publish(ctx context.Context, req backend.BookingRequest, res backend.BookingResult) {
	if f.events == nil {
		return
	}
	t, _ := f.Teacher(req.TeacherID)
	msg, err := queue.NewMessage(queue.TypeAppointmentBooked, queue.AppointmentBooked{
		AppointmentID: res.AppointmentID,
		TeacherID:     req.TeacherID,
		TeacherName:   t.Name,
		StudentID:     req.StudentID,
		StudentName:   req.StudentName,
		Date:          req.Date,
		Time:          req.Time,
		Type:          req.Type,
		At:            time.Now().UTC(),
	})
	if err == nil {
		err = f.events.Publish(ctx, msg)
	}
	if err != nil {
		f.log.Warn("queue publish failed", zap.String("appointment_id", res.AppointmentID), zap.Error(err))
	}
}
