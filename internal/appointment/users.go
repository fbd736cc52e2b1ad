package appointment

import (
	"sync"

	"counseling/internal/model"
)

// Directory is the in-memory list of portal accounts shown to admins.
type Directory struct {
	mu    sync.RWMutex
	users []model.User
}

// NewDirectory creates a directory holding a copy of seed.
func NewDirectory(seed []model.User) *Directory {
	users := make([]model.User, len(seed))
	copy(users, seed)
	return &Directory{users: users}
}

// List returns a snapshot of every user.
func (d *Directory) List() []model.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.User, len(d.users))
	copy(out, d.users)
	return out
}

// SetStatus changes the status of every listed id and reports how many matched.
func (d *Directory) SetStatus(ids []string, status model.UserStatus) int {
	want := toSet(ids)
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for i := range d.users {
		if _, ok := want[d.users[i].ID]; ok {
			d.users[i].Status = status
			n++
		}
	}
	return n
}

// Delete removes every listed id and reports how many were removed.
func (d *Directory) Delete(ids []string) int {
	want := toSet(ids)
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.users[:0]
	for _, u := range d.users {
		if _, ok := want[u.ID]; !ok {
			kept = append(kept, u)
		}
	}
	n := len(d.users) - len(kept)
	d.users = kept
	return n
}

func toSet(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
