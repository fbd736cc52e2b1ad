// Package appointment stores booked appointments and the admin user directory.
package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"counseling/internal/apperr"
	"counseling/internal/model"
)

// Service fills in defaults before handing appointments to the repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create records a new appointment. Status defaults to pending.
func (s *Service) Create(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	if a.Date == "" || a.Time == "" {
		return model.Appointment{}, apperr.Invalid("Missing information", "date and time are required")
	}
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.Status == "" {
		a.Status = model.StatusPending
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	return s.repo.Insert(ctx, a)
}

// List returns every appointment.
func (s *Service) List(ctx context.Context) ([]model.Appointment, error) {
	return s.repo.List(ctx)
}

// Get returns one appointment.
func (s *Service) Get(ctx context.Context, id string) (model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

// SetStatus relabels an appointment. Any status may follow any other.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	st, err := model.ParseStatus(status)
	if err != nil {
		return apperr.Invalid("Invalid status", err.Error())
	}
	return s.repo.UpdateStatus(ctx, id, st)
}

// NewID returns an appointment identifier such as "appt-3f2a9c1d".
func NewID() string {
	return "appt-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
