package model

import (
	"fmt"
	"time"

	"counseling/internal/role"
)

// Status is the lifecycle label of an appointment. Transitions are not validated.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus accepts one of the four appointment statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// UserStatus marks whether an account is in use.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// Appointment is a booked meeting between a student and a teacher.
type Appointment struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	TeacherID   string    `json:"teacherId"`
	TeacherName string    `json:"teacherName"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // e.g. "10:00 AM - 11:00 AM"
	Status      Status    `json:"status"`
	Subject     string    `json:"subject"`
	Course      string    `json:"course"`
	Type        string    `json:"type,omitempty"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Teacher is a bookable staff member.
type Teacher struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Department     string   `json:"department"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"reviewCount"`
	Bio            string   `json:"bio"`
	AvailableDates []string `json:"availableDates"`
}

// HasDate reports whether date is one of the teacher's listed dates.
func (t Teacher) HasDate(date string) bool {
	for _, d := range t.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}

// TimeSlot is one availability record entered by a teacher.
type TimeSlot struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacherId"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM, 24h
	EndTime   string `json:"endTime"`   // HH:MM, 24h
}

// User is an account listed in the admin panel.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       role.Role  `json:"role"`
	Department string     `json:"department"`
	Status     UserStatus `json:"status"`
	LastActive time.Time  `json:"lastActive"`
}

// SessionUser is the identity object kept in the session store.
type SessionUser struct {
	UID         string  `json:"uid"`
	Email       string  `json:"email"`
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

// AppointmentType is the kind of meeting requested in the booking wizard.
type AppointmentType struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// DefaultAppointmentType is preselected in a fresh wizard.
const DefaultAppointmentType = "academic"

// AppointmentTypes lists every accepted appointment type.
var AppointmentTypes = []AppointmentType{
	{ID: "academic", Label: "Academic Advising", Description: "Get guidance on your academic path and course selection"},
	{ID: "project", Label: "Project Discussion", Description: "Discuss your project ideas, progress, or challenges"},
	{ID: "research", Label: "Research Guidance", Description: "Get help with research methodology or paper reviews"},
	{ID: "career", Label: "Career Counseling", Description: "Discuss career options, internships, or job applications"},
}

// LookupAppointmentType finds a type by id.
func LookupAppointmentType(id string) (AppointmentType, bool) {
	for _, t := range AppointmentTypes {
		if t.ID == id {
			return t, true
		}
	}
	return AppointmentType{}, false
}
