package availability

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"counseling/internal/fixture"
)

const labelLayout = "03:04 PM"

// Interval is a bookable window. Label is the value a client submits when choosing it.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// Query answers which intervals are free for a teacher on a date, ordered by start.
type Query interface {
	Free(ctx context.Context, teacherID, date string) ([]Interval, error)
}

// KeepThreshold is the cut-off of the seeded predicate; a base time survives when r > KeepThreshold.
const KeepThreshold = 0.3

// Seeded offers a reproducible subset of the fixed daily start times.
type Seeded struct {
	Seed  int64
	Times []string
}

// NewSeeded builds a query over fixture.BaseTimes.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{Seed: seed, Times: fixture.BaseTimes}
}

func (s *Seeded) Free(ctx context.Context, teacherID, date string) ([]Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Interval, 0, len(s.Times))
	for _, t := range s.Times {
		if s.roll(teacherID, date, t) <= KeepThreshold {
			continue
		}
		iv, err := hourFrom(t)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

// roll maps (seed, teacher, date, time) to a value in [0, 1).
func (s *Seeded) roll(teacherID, date, t string) float64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s.Seed))
	_, _ = h.Write(buf[:])
	for _, part := range []string{teacherID, date, t} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return float64(h.Sum64()>>11) / float64(1<<53)
}

func hourFrom(label string) (Interval, error) {
	start, err := time.Parse(labelLayout, label)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Start: start.Format(labelLayout),
		End:   start.Add(time.Hour).Format(labelLayout),
		Label: start.Format(labelLayout),
	}, nil
}

// FromSlots derives hourly intervals from the slots teachers entered in their editors.
type FromSlots struct {
	Book *Book
}

func (f *FromSlots) Free(ctx context.Context, teacherID, date string) ([]Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var starts []time.Time
	for _, slot := range f.Book.Editor(teacherID).Slots() {
		if slot.Date != date {
			continue
		}
		start, err := time.Parse(clockLayout, slot.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(clockLayout, slot.EndTime)
		if err != nil {
			continue
		}
		for t := start; !t.Add(time.Hour).After(end); t = t.Add(time.Hour) {
			key := t.Format(clockLayout)
			if seen[key] {
				continue
			}
			seen[key] = true
			starts = append(starts, t)
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	out := make([]Interval, 0, len(starts))
	for _, t := range starts {
		out = append(out, Interval{
			Start: t.Format(labelLayout),
			End:   t.Add(time.Hour).Format(labelLayout),
			Label: t.Format(labelLayout),
		})
	}
	return out, nil
}

// Cached memoizes another Query. Entries are grouped per teacher so one teacher can be invalidated alone.
type Cached struct {
	mu    sync.Mutex
	inner Query
	cache *lru.Cache[string, map[string][]Interval]
	gen   map[string]uint64 // bumped by Invalidate
}

// NewCached wraps inner with an LRU holding up to size teachers.
func NewCached(inner Query, size int) (*Cached, error) {
	if size <= 0 {
		size = 128
	}
	c, err := lru.New[string, map[string][]Interval](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: c, gen: make(map[string]uint64)}, nil
}

func (c *Cached) Free(ctx context.Context, teacherID, date string) ([]Interval, error) {
	c.mu.Lock()
	if byDate, ok := c.cache.Get(teacherID); ok {
		if ivs, ok := byDate[date]; ok {
			c.mu.Unlock()
			return clone(ivs), nil
		}
	}
	gen := c.gen[teacherID]
	c.mu.Unlock()

	ivs, err := c.inner.Free(ctx, teacherID, date)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen[teacherID] != gen {
		// invalidated while inner ran; the result may predate the edit
		return ivs, nil
	}
	byDate, ok := c.cache.Get(teacherID)
	if !ok {
		byDate = make(map[string][]Interval)
	}
	byDate[date] = clone(ivs)
	c.cache.Add(teacherID, byDate)
	return ivs, nil
}

// Invalidate drops everything cached for teacherID.
func (c *Cached) Invalidate(teacherID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[teacherID]++
	c.cache.Remove(teacherID)
}

// Len reports how many teachers have cached entries.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

func clone(ivs []Interval) []Interval {
	out := make([]Interval, len(ivs))
	copy(out, ivs)
	return out
}
