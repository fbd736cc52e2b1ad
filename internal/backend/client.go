// Package backend is the boundary between the portal and its data service.
package backend

import (
	"context"

	"counseling/internal/model"
	"counseling/internal/role"
)

// Summary counts appointments by outcome.
type Summary struct {
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// AppointmentBrief is the condensed appointment row shown on dashboards.
type AppointmentBrief struct {
	ID          string       `json:"id"`
	StudentName string       `json:"studentName"`
	TeacherName string       `json:"teacherName,omitempty"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
	Status      model.Status `json:"status"`
	Subject     string       `json:"subject"`
}

// Dashboard is the student dashboard payload.
type Dashboard struct {
	AppointmentSummary   Summary            `json:"appointmentSummary"`
	RecentAppointments   []AppointmentBrief `json:"recentAppointments"`
	UpcomingAppointments []AppointmentBrief `json:"upcomingAppointments"`
}

// TeacherDashboard is the teacher dashboard payload.
type TeacherDashboard struct {
	AppointmentSummary   Summary            `json:"appointmentSummary"`
	TotalStudents        int                `json:"totalStudents"`
	AvailabilityHours    int                `json:"availabilityHours"`
	UpcomingAppointments []AppointmentBrief `json:"upcomingAppointments"`
	RecentAppointments   []AppointmentBrief `json:"recentAppointments"`
}

// BookingRequest asks the backend to book one appointment.
type BookingRequest struct {
	TeacherID   string `json:"teacherId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Notes       string `json:"notes,omitempty"`
	StudentID   string `json:"studentId,omitempty"`
	StudentName string `json:"studentName,omitempty"`
}

// BookingResult is the backend's answer to a BookingRequest.
type BookingResult struct {
	Success       bool   `json:"success"`
	AppointmentID string `json:"appointmentId"`
	Message       string `json:"message"`
}

// Client is implemented by Mock and HTTPClient. Calls are never retried.
type Client interface {
	FetchDashboard(ctx context.Context, r *role.Role) (Dashboard, error)
	FetchTeacherDashboard(ctx context.Context) (TeacherDashboard, error)
	BookAppointment(ctx context.Context, req BookingRequest) (BookingResult, error)
}
