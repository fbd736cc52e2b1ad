// Package booking drives the four-step appointment booking wizard.
package booking

import (
	"counseling/internal/availability"
	"counseling/internal/model"
)

// Step is a wizard position.
type Step int

const (
	StepSearchTeacher  Step = 1
	StepSelectDate     Step = 2
	StepSelectTime     Step = 3
	StepConfirmDetails Step = 4
)

func (s Step) String() string {
	switch s {
	case StepSearchTeacher:
		return "search-teacher"
	case StepSelectDate:
		return "select-date"
	case StepSelectTime:
		return "select-time"
	case StepConfirmDetails:
		return "confirm-details"
	}
	return "unknown"
}

// State is the serializable wizard progress of one client.
type State struct {
	Step      Step                    `json:"step"`
	TeacherID string                  `json:"teacherId,omitempty"`
	Date      string                  `json:"date,omitempty"`
	Time      string                  `json:"time,omitempty"`
	Type      string                  `json:"type"`
	Notes     string                  `json:"notes,omitempty"`
	Times     []availability.Interval `json:"times,omitempty"`
}

// NewState returns a wizard at step one with the default appointment type.
func NewState() State {
	return State{Step: StepSearchTeacher, Type: model.DefaultAppointmentType}
}

// reset clears the selections after a successful booking.
func (s *State) reset() {
	*s = NewState()
}
