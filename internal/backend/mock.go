package backend

import (
	"context"
	"fmt"
	"time"

	"counseling/internal/appointment"
	"counseling/internal/fixture"
	"counseling/internal/model"
	"counseling/internal/role"
)

// Recorder stores appointments created by a booking.
type Recorder interface {
	Create(ctx context.Context, a model.Appointment) (model.Appointment, error)
}

// Delays sets the simulated latency of each Mock call.
type Delays struct {
	Dashboard time.Duration
	Booking   time.Duration
}

// DefaultDelays matches the latency of the hosted mock service.
var DefaultDelays = Delays{Dashboard: time.Second, Booking: 1500 * time.Millisecond}

// Mock serves fixture data after a fixed delay. Booking always succeeds.
type Mock struct {
	delays   Delays
	recorder Recorder
}

// NewMock builds a mock. recorder may be nil, in which case bookings are not kept.
func NewMock(delays Delays, recorder Recorder) *Mock {
	return &Mock{delays: delays, recorder: recorder}
}

// FetchDashboard ignores the role; every caller sees the same summary.
func (m *Mock) FetchDashboard(ctx context.Context, _ *role.Role) (Dashboard, error) {
	if err := sleep(ctx, m.delays.Dashboard); err != nil {
		return Dashboard{}, err
	}
	return fixtureDashboard(), nil
}

func (m *Mock) FetchTeacherDashboard(ctx context.Context) (TeacherDashboard, error) {
	if err := sleep(ctx, m.delays.Dashboard); err != nil {
		return TeacherDashboard{}, err
	}
	return fixtureTeacherDashboard(), nil
}

func (m *Mock) BookAppointment(ctx context.Context, req BookingRequest) (BookingResult, error) {
	if err := sleep(ctx, m.delays.Booking); err != nil {
		return BookingResult{}, err
	}

	id := appointment.NewID()
	if m.recorder != nil {
		a := model.Appointment{
			ID:          id,
			StudentID:   req.StudentID,
			StudentName: req.StudentName,
			TeacherID:   req.TeacherID,
			TeacherName: teacherName(req.TeacherID),
			Date:        req.Date,
			Time:        req.Time,
			Status:      model.StatusPending,
			Subject:     subjectFor(req.Type),
			Type:        req.Type,
			Notes:       req.Notes,
		}
		if _, err := m.recorder.Create(ctx, a); err != nil {
			return BookingResult{}, fmt.Errorf("record appointment: %w", err)
		}
	}
	return BookingResult{Success: true, AppointmentID: id, Message: "Appointment booked successfully"}, nil
}

func teacherName(id string) string {
	for _, t := range fixture.Teachers() {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}

func subjectFor(typeID string) string {
	if t, ok := model.LookupAppointmentType(typeID); ok {
		return t.Label
	}
	return ""
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fixtureDashboard() Dashboard {
	return Dashboard{
		AppointmentSummary: Summary{Upcoming: 3, Completed: 12, Cancelled: 1},
		RecentAppointments: []AppointmentBrief{
			{ID: "appt1", StudentName: "Alex Johnson", TeacherName: "Dr. Jane Smith", Date: "2024-04-25", Time: "10:00 AM", Status: model.StatusConfirmed, Subject: "Project Discussion"},
			{ID: "appt2", StudentName: "Maria Garcia", TeacherName: "Prof. Michael Johnson", Date: "2024-04-26", Time: "2:00 PM", Status: model.StatusPending, Subject: "Thesis Review"},
		},
		UpcomingAppointments: []AppointmentBrief{
			{ID: "appt1", StudentName: "Alex Johnson", TeacherName: "Dr. Jane Smith", Date: "2024-04-25", Time: "10:00 AM", Status: model.StatusConfirmed, Subject: "Project Discussion"},
			{ID: "appt2", StudentName: "Maria Garcia", TeacherName: "Prof. Michael Johnson", Date: "2024-04-26", Time: "2:00 PM", Status: model.StatusPending, Subject: "Thesis Review"},
			{ID: "appt3", StudentName: "John Davis", TeacherName: "Dr. Sarah Williams", Date: "2024-04-29", Time: "11:00 AM", Status: model.StatusConfirmed, Subject: "Research Guidance"},
		},
	}
}

func fixtureTeacherDashboard() TeacherDashboard {
	return TeacherDashboard{
		AppointmentSummary: Summary{Upcoming: 5, Completed: 24, Cancelled: 2},
		TotalStudents:      18,
		AvailabilityHours:  15,
		UpcomingAppointments: []AppointmentBrief{
			{ID: "appt1", StudentName: "Alex Johnson", Date: "2024-04-25", Time: "10:00 AM", Status: model.StatusConfirmed, Subject: "Project Discussion"},
			{ID: "appt2", StudentName: "Maria Garcia", Date: "2024-04-26", Time: "2:00 PM", Status: model.StatusPending, Subject: "Thesis Review"},
			{ID: "appt3", StudentName: "John Davis", Date: "2024-04-29", Time: "11:00 AM", Status: model.StatusConfirmed, Subject: "Research Guidance"},
			{ID: "appt4", StudentName: "Emily Wilson", Date: "2024-04-30", Time: "3:00 PM", Status: model.StatusConfirmed, Subject: "Exam Preparation"},
		},
		RecentAppointments: []AppointmentBrief{
			{ID: "appt5", StudentName: "David Lee", Date: "2024-04-22", Time: "1:00 PM", Status: model.StatusCompleted, Subject: "Career Guidance"},
			{ID: "appt6", StudentName: "Sarah Miller", Date: "2024-04-21", Time: "11:30 AM", Status: model.StatusCompleted, Subject: "Assignment Review"},
		},
	}
}
