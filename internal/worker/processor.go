// Package worker turns queue events into admin activity entries.
package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"counseling/internal/admin"
	"counseling/internal/metrics"
	"counseling/internal/model"
	"counseling/internal/queue"
)

// ErrIgnored is returned by Handle for events that produce no activity.
var ErrIgnored = errors.New("event ignored")

// Processor appends one feed entry per handled event.
type Processor struct {
	feed admin.Feed
	log  *zap.Logger
}

func NewProcessor(feed admin.Feed, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{feed: feed, log: log}
}

// Run consumes q until ctx is cancelled or the queue closes its channel.
func (p *Processor) Run(ctx context.Context, q queue.Queue) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return fmt.Errorf("queue consume init: %w", err)
	}
	p.log.Info("worker started, waiting for messages")
	for msg := range messages {
		err := p.Handle(ctx, msg)
		switch {
		case err == nil:
			metrics.EventsProcessed.WithLabelValues(msg.Type, "ok").Inc()
		case errors.Is(err, ErrIgnored):
			metrics.EventsProcessed.WithLabelValues(msg.Type, "ignored").Inc()
			p.log.Debug("event ignored", zap.String("type", msg.Type))
		default:
			metrics.EventsProcessed.WithLabelValues(msg.Type, "failed").Inc()
			p.log.Warn("event processing failed", zap.String("type", msg.Type), zap.Error(err))
		}
	}
	p.log.Info("worker stopped")
	return nil
}

// Handle converts msg into an activity entry and appends it.
func (p *Processor) Handle(ctx context.Context, msg queue.Message) error {
	e, err := entryFor(msg)
	if err != nil {
		return err
	}
	if err := p.feed.Append(ctx, e); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	p.log.Debug("activity recorded", zap.String("type", e.Type), zap.String("user", e.User))
	return nil
}

func entryFor(msg queue.Message) (admin.Entry, error) {
	switch msg.Type {
	case queue.TypeAppointmentBooked:
		var ev queue.AppointmentBooked
		if err := msg.Decode(&ev); err != nil {
			return admin.Entry{}, err
		}
		return admin.Entry{
			Type:      admin.ActivityAppointmentCreated,
			User:      orDefault(ev.StudentName, "Student"),
			UserType:  "Student",
			Timestamp: ev.At,
			Details:   "Booked appointment with " + orDefault(ev.TeacherName, "a teacher"),
		}, nil

	case queue.TypeUserRegistered:
		var ev queue.UserRegistered
		if err := msg.Decode(&ev); err != nil {
			return admin.Entry{}, err
		}
		return admin.Entry{
			Type:      admin.ActivityUserRegistered,
			User:      orDefault(ev.Name, ev.Email),
			UserType:  title(ev.Role),
			Timestamp: ev.At,
			Details:   "New " + strings.ToLower(ev.Role) + " registration",
		}, nil

	case queue.TypeAppointmentStatus:
		var ev queue.AppointmentStatus
		if err := msg.Decode(&ev); err != nil {
			return admin.Entry{}, err
		}
		var typ, verb string
		switch model.Status(ev.Status) {
		case model.StatusCancelled:
			typ, verb = admin.ActivityAppointmentCancelled, "Cancelled"
		case model.StatusCompleted:
			typ, verb = admin.ActivityAppointmentCompleted, "Completed"
		default:
			return admin.Entry{}, ErrIgnored
		}
		return admin.Entry{
			Type:      typ,
			User:      orDefault(ev.ChangedBy, "Admin User"),
			UserType:  "Admin",
			Timestamp: ev.At,
			Details:   verb + " appointment with " + orDefault(ev.StudentName, ev.AppointmentID),
		}, nil
	}
	return admin.Entry{}, ErrIgnored
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func title(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
