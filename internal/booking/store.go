package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"counseling/internal/apperr"
)

// SessionTTL is how long an idle wizard is kept.
const SessionTTL = 10 * time.Minute

// SessionStore keeps wizard state per client session id. Load returns apperr.ErrNotFound
// for a missing or expired session.
type SessionStore interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, st State) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	state   State
	expires time.Time
}

// MemorySessionStore is a SessionStore in process memory.
type MemorySessionStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &MemorySessionStore{items: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (m *MemorySessionStore) Load(_ context.Context, id string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return State{}, apperr.ErrNotFound
	}
	if m.now().After(e.expires) {
		delete(m.items, id)
		return State{}, apperr.ErrNotFound
	}
	return e.state, nil
}

func (m *MemorySessionStore) Save(_ context.Context, id string, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = memoryEntry{state: st, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// SessionPrefix namespaces wizard keys in Redis.
const SessionPrefix = "bookingSession:"

// RedisSessionStore keeps wizard state in Redis, refreshing the TTL on every save.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (r *RedisSessionStore) Load(ctx context.Context, id string) (State, error) {
	data, err := r.client.Get(ctx, SessionPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return State{}, apperr.ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("load booking session: %w", err)
	}
	var st State
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return State{}, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return st, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, id string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := r.client.Set(ctx, SessionPrefix+id, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, SessionPrefix+id).Err()
}
