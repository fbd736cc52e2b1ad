// Package availability manages teacher availability slots and answers free-time queries.
package availability

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"counseling/internal/apperr"
	"counseling/internal/model"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Editor holds the availability slots of a single teacher.
type Editor struct {
	mu        sync.RWMutex
	teacherID string
	slots     []model.TimeSlot
	onChange  func(teacherID string)
}

// NewEditor creates an editor starting from seed.
func NewEditor(teacherID string, seed []model.TimeSlot) *Editor {
	slots := make([]model.TimeSlot, len(seed))
	copy(slots, seed)
	return &Editor{teacherID: teacherID, slots: slots}
}

// Slots returns a snapshot in insertion order.
func (e *Editor) Slots() []model.TimeSlot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.TimeSlot, len(e.slots))
	copy(out, e.slots)
	return out
}

// Add appends one slot. Only presence of all fields and start < end are checked.
func (e *Editor) Add(date, start, end string) (model.TimeSlot, error) {
	if date == "" || start == "" || end == "" {
		return model.TimeSlot{}, apperr.Invalid("Missing information", "Please select a date, start time, and end time.")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return model.TimeSlot{}, apperr.Invalid("Invalid date", fmt.Sprintf("%q is not a YYYY-MM-DD date", date))
	}
	s, err := time.Parse(clockLayout, start)
	if err != nil {
		return model.TimeSlot{}, apperr.Invalid("Invalid time range", fmt.Sprintf("%q is not an HH:MM time", start))
	}
	en, err := time.Parse(clockLayout, end)
	if err != nil {
		return model.TimeSlot{}, apperr.Invalid("Invalid time range", fmt.Sprintf("%q is not an HH:MM time", end))
	}
	if !s.Before(en) {
		return model.TimeSlot{}, apperr.Invalid("Invalid time range", "End time must be after start time.")
	}

	slot := model.TimeSlot{
		ID:        uuid.NewString(),
		TeacherID: e.teacherID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	e.mu.Lock()
	e.slots = append(e.slots, slot)
	e.mu.Unlock()
	e.changed()
	return slot, nil
}

// Remove deletes the slot with id. An unknown id is a no-op and reports false.
func (e *Editor) Remove(id string) bool {
	e.mu.Lock()
	removed := false
	kept := make([]model.TimeSlot, 0, len(e.slots))
	for _, s := range e.slots {
		if s.ID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	e.slots = kept
	e.mu.Unlock()
	if removed {
		e.changed()
	}
	return removed
}

// Save reports success. Slots live only in memory.
func (e *Editor) Save() string {
	return "Your availability has been saved successfully."
}

func (e *Editor) changed() {
	if e.onChange != nil {
		e.onChange(e.teacherID)
	}
}

// TimeOptions lists the selectable clock times, 08:00 through 20:00 every 30 minutes.
func TimeOptions() []string {
	opts := make([]string, 0, 25)
	for h := 8; h < 20; h++ {
		opts = append(opts, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return append(opts, "20:00")
}

// Book owns one Editor per teacher, created on first use.
type Book struct {
	mu       sync.Mutex
	editors  map[string]*Editor
	seed     func(teacherID string) []model.TimeSlot
	onChange []func(teacherID string)
}

// NewBook creates a book whose editors start from seed(teacherID). seed may be nil.
func NewBook(seed func(teacherID string) []model.TimeSlot) *Book {
	return &Book{editors: make(map[string]*Editor), seed: seed}
}

// OnChange registers fn to run after any editor adds or removes a slot.
func (b *Book) OnChange(fn func(teacherID string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = append(b.onChange, fn)
}

// Editor returns the editor for teacherID.
func (b *Book) Editor(teacherID string) *Editor {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.editors[teacherID]; ok {
		return e
	}
	var seed []model.TimeSlot
	if b.seed != nil {
		seed = b.seed(teacherID)
	}
	e := NewEditor(teacherID, seed)
	e.onChange = b.notify
	b.editors[teacherID] = e
	return e
}

func (b *Book) notify(teacherID string) {
	b.mu.Lock()
	fns := append([]func(string){}, b.onChange...)
	b.mu.Unlock()
	for _, fn := range fns {
		fn(teacherID)
	}
}
