package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"counseling/internal/apperr"
	"counseling/internal/model"
)

// Repository persists appointments.
type Repository interface {
	Insert(ctx context.Context, a model.Appointment) (model.Appointment, error)
	Get(ctx context.Context, id string) (model.Appointment, error)
	List(ctx context.Context) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
}

// MemoryRepository keeps appointments in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []model.Appointment
}

// NewMemoryRepository creates a repo holding seed.
func NewMemoryRepository(seed []model.Appointment) *MemoryRepository {
	items := make([]model.Appointment, len(seed))
	copy(items, seed)
	return &MemoryRepository{items: items}
}

func (r *MemoryRepository) Insert(_ context.Context, a model.Appointment) (model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == a.ID {
			return model.Appointment{}, &apperr.ConflictError{Message: "appointment " + a.ID + " already exists"}
		}
	}
	r.items = append(r.items, a)
	return a, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.Appointment{}, apperr.ErrNotFound
}

// List returns appointments ordered by date, insertion order within a date.
func (r *MemoryRepository) List(_ context.Context) ([]model.Appointment, error) {
	r.mu.RLock()
	out := make([]model.Appointment, len(r.items))
	copy(out, r.items)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status model.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return nil
		}
	}
	return apperr.ErrNotFound
}

// PostgresRepository persists appointments in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the appointments table if it is missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS appointments (
			id           TEXT PRIMARY KEY,
			student_id   TEXT NOT NULL DEFAULT '',
			student_name TEXT NOT NULL DEFAULT '',
			teacher_id   TEXT NOT NULL DEFAULT '',
			teacher_name TEXT NOT NULL DEFAULT '',
			date         TEXT NOT NULL,
			time_label   TEXT NOT NULL,
			status       TEXT NOT NULL,
			subject      TEXT NOT NULL DEFAULT '',
			course       TEXT NOT NULL DEFAULT '',
			type         TEXT NOT NULL DEFAULT '',
			notes        TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// Seed inserts fixtures that are not already present.
func (r *PostgresRepository) Seed(ctx context.Context, items []model.Appointment) error {
	for _, a := range items {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO appointments (id, student_id, student_name, teacher_id, teacher_name, date, time_label, status, subject, course, type, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (id) DO NOTHING
		`, a.ID, a.StudentID, a.StudentName, a.TeacherID, a.TeacherName, a.Date, a.Time, a.Status, a.Subject, a.Course, a.Type, a.Notes); err != nil {
			return fmt.Errorf("seed appointment %s: %w", a.ID, err)
		}
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO appointments (id, student_id, student_name, teacher_id, teacher_name, date, time_label, status, subject, course, type, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at
	`, a.ID, a.StudentID, a.StudentName, a.TeacherID, a.TeacherName, a.Date, a.Time, a.Status, a.Subject, a.Course, a.Type, a.Notes, a.CreatedAt)
	if err := row.Scan(&a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Appointment{}, &apperr.ConflictError{Message: "appointment " + a.ID + " already exists"}
		}
		return model.Appointment{}, err
	}
	return a, nil
}

const selectColumns = `SELECT id, student_id, student_name, teacher_id, teacher_name, date, time_label, status, subject, course, type, notes, created_at FROM appointments`

func (r *PostgresRepository) Get(ctx context.Context, id string) (model.Appointment, error) {
	a, err := scan(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Appointment{}, apperr.ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) List(ctx context.Context) ([]model.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []model.Appointment
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE appointments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (model.Appointment, error) {
	var a model.Appointment
	var status string
	var created time.Time
	if err := s.Scan(&a.ID, &a.StudentID, &a.StudentName, &a.TeacherID, &a.TeacherName, &a.Date, &a.Time, &status, &a.Subject, &a.Course, &a.Type, &a.Notes, &created); err != nil {
		return model.Appointment{}, err
	}
	a.Status = model.Status(status)
	a.CreatedAt = created
	return a, nil
}
