package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"counseling/internal/fixture"
)

// Activity types.
const (
	ActivityUserRegistered       = "user_registered"
	ActivityAppointmentCreated   = "appointment_created"
	ActivityAppointmentCancelled = "appointment_cancelled"
	ActivityAppointmentCompleted = "appointment_completed"
)

// Entry is one row of the recent activity feed.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	User      string    `json:"user"`
	UserType  string    `json:"userType"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
}

// Feed holds recent activity, newest first.
type Feed interface {
	Append(ctx context.Context, e Entry) error
	Recent(ctx context.Context, n int) ([]Entry, error)
}

// DefaultFeedSize bounds how many entries a feed retains.
const DefaultFeedSize = 50

// SeedEntries converts the fixture feed.
func SeedEntries() []Entry {
	src := fixture.Activity()
	out := make([]Entry, len(src))
	for i, a := range src {
		out[i] = Entry{ID: a.ID, Type: a.Type, User: a.User, UserType: a.UserType, Timestamp: a.Timestamp, Details: a.Details}
	}
	return out
}

func fill(e *Entry) {
	if e.ID == "" {
		e.ID = "act-" + uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

// MemoryFeed keeps up to size entries in memory.
type MemoryFeed struct {
	mu      sync.RWMutex
	entries []Entry // newest first
	size    int
}

// NewMemoryFeed creates a feed starting from seed (newest first).
func NewMemoryFeed(size int, seed []Entry) *MemoryFeed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	f := &MemoryFeed{size: size}
	for i := len(seed) - 1; i >= 0; i-- {
		f.push(seed[i])
	}
	return f
}

func (f *MemoryFeed) push(e Entry) {
	f.entries = append([]Entry{e}, f.entries...)
	if len(f.entries) > f.size {
		f.entries = f.entries[:f.size]
	}
}

func (f *MemoryFeed) Append(_ context.Context, e Entry) error {
	fill(&e)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.push(e)
	return nil
}

func (f *MemoryFeed) Recent(_ context.Context, n int) ([]Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if n <= 0 || n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]Entry, n)
	copy(out, f.entries[:n])
	return out, nil
}

// RedisFeed keeps the feed in a capped Redis list so the API and worker share it.
type RedisFeed struct {
	client *redis.Client
	key    string
	size   int
}

// NewRedisFeed creates a feed stored under key.
func NewRedisFeed(client *redis.Client, key string, size int) *RedisFeed {
	if key == "" {
		key = "counseling:activity"
	}
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &RedisFeed{client: client, key: key, size: size}
}

// Seed writes seed when the list is empty.
func (f *RedisFeed) Seed(ctx context.Context, seed []Entry) error {
	n, err := f.client.LLen(ctx, f.key).Result()
	if err != nil || n > 0 {
		return err
	}
	for i := len(seed) - 1; i >= 0; i-- {
		if err := f.Append(ctx, seed[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *RedisFeed) Append(ctx context.Context, e Entry) error {
	fill(&e)
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, f.key, data)
	pipe.LTrim(ctx, f.key, 0, int64(f.size-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (f *RedisFeed) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > f.size {
		n = f.size
	}
	raw, err := f.client.LRange(ctx, f.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
