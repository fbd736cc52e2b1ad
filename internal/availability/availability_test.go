package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counseling/internal/apperr"
	"counseling/internal/fixture"
)

func TestEditorAdd(t *testing.T) {
	e := NewEditor("t1", fixture.TimeSlots("t1"))
	require.Len(t, e.Slots(), 3)

	tests := []struct {
		name             string
		date, start, end string
		wantTitle        string
	}{
		{"missing date", "", "09:00", "10:00", "Missing information"},
		{"missing end", "2024-05-20", "09:00", "", "Missing information"},
		{"equal times", "2024-05-20", "10:00", "10:00", "Invalid time range"},
		{"reversed", "2024-05-20", "11:00", "10:00", "Invalid time range"},
		{"unparseable date", "20/05/2024", "09:00", "10:00", "Invalid date"},
		{"unparseable time", "2024-05-20", "9am", "10:00", "Invalid time range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Add(tt.date, tt.start, tt.end)
			var v *apperr.ValidationError
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tt.wantTitle, v.Title)
			assert.Len(t, e.Slots(), 3)
		})
	}

	slot, err := e.Add("2024-05-20", "13:00", "15:30")
	require.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	slots := e.Slots()
	require.Len(t, slots, 4)
	assert.Equal(t, slot, slots[3])
}

func TestEditorRemove(t *testing.T) {
	e := NewEditor("t1", fixture.TimeSlots("t1"))
	assert.True(t, e.Remove("2"))
	assert.False(t, e.Remove("2"))
	assert.False(t, e.Remove("nope"))

	slots := e.Slots()
	require.Len(t, slots, 2)
	assert.Equal(t, "1", slots[0].ID)
	assert.Equal(t, "3", slots[1].ID)
	assert.NotEmpty(t, e.Save())
}

func TestTimeOptions(t *testing.T) {
	opts := TimeOptions()
	require.Len(t, opts, 25)
	assert.Equal(t, "08:00", opts[0])
	assert.Equal(t, "08:30", opts[1])
	assert.Equal(t, "19:30", opts[23])
	assert.Equal(t, "20:00", opts[24])
}

func TestSeededIsDeterministicSubset(t *testing.T) {
	ctx := context.Background()
	a, err := NewSeeded(42).Free(ctx, "1", "2024-05-15")
	require.NoError(t, err)
	b, err := NewSeeded(42).Free(ctx, "1", "2024-05-15")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	base := make(map[string]int)
	for i, bt := range fixture.BaseTimes {
		base[bt] = i
	}
	last := -1
	for _, iv := range a {
		idx, ok := base[iv.Label]
		require.True(t, ok, iv.Label)
		assert.Greater(t, idx, last)
		last = idx
		assert.Equal(t, iv.Start, iv.Label)
	}
}

func TestSeededAcrossDates(t *testing.T) {
	ctx := context.Background()
	q := NewSeeded(7)
	total, kept := 0, 0
	for _, teacher := range fixture.Teachers() {
		for _, date := range teacher.AvailableDates {
			ivs, err := q.Free(ctx, teacher.ID, date)
			require.NoError(t, err)
			total += len(fixture.BaseTimes)
			kept += len(ivs)
		}
	}
	assert.Less(t, kept, total)
	assert.Greater(t, kept, 0)
}

func TestFromSlots(t *testing.T) {
	ctx := context.Background()
	book := NewBook(fixture.TimeSlots)
	q := &FromSlots{Book: book}

	ivs, err := q.Free(ctx, "1", "2024-05-15")
	require.NoError(t, err)
	require.Len(t, ivs, 3)
	assert.Equal(t, Interval{Start: "09:00 AM", End: "10:00 AM", Label: "09:00 AM"}, ivs[0])
	assert.Equal(t, "11:00 AM", ivs[2].Start)

	_, err = book.Editor("1").Add("2024-05-15", "08:00", "09:30")
	require.NoError(t, err)
	ivs, err = q.Free(ctx, "1", "2024-05-15")
	require.NoError(t, err)
	require.Len(t, ivs, 4)
	assert.Equal(t, "08:00 AM", ivs[0].Start)

	ivs, err = q.Free(ctx, "1", "2024-06-01")
	require.NoError(t, err)
	assert.Empty(t, ivs)
}

type countingQuery struct {
	calls int
}

func (c *countingQuery) Free(_ context.Context, teacherID, date string) ([]Interval, error) {
	c.calls++
	return []Interval{{Start: "09:00 AM", End: "10:00 AM", Label: "09:00 AM"}}, nil
}

func TestCachedInvalidatesPerTeacher(t *testing.T) {
	ctx := context.Background()
	inner := &countingQuery{}
	c, err := NewCached(inner, 8)
	require.NoError(t, err)

	book := NewBook(fixture.TimeSlots)
	book.OnChange(c.Invalidate)

	for i := 0; i < 3; i++ {
		_, err := c.Free(ctx, "1", "2024-05-15")
		require.NoError(t, err)
	}
	_, err = c.Free(ctx, "2", "2024-05-15")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, c.Len())

	_, err = book.Editor("1").Add("2024-05-15", "15:00", "16:00")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = c.Free(ctx, "1", "2024-05-15")
	require.NoError(t, err)
	_, err = c.Free(ctx, "2", "2024-05-15")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
}

// gatedQuery answers with label and, when gate is set, waits for it before returning.
type gatedQuery struct {
	mu      sync.Mutex
	label   string
	entered chan struct{}
	gate    chan struct{}
}

func (g *gatedQuery) Free(_ context.Context, _, _ string) ([]Interval, error) {
	g.mu.Lock()
	label, gate := g.label, g.gate
	g.mu.Unlock()
	if gate != nil {
		g.entered <- struct{}{}
		<-gate
	}
	return []Interval{{Label: label}}, nil
}

func TestCachedDropsResultInvalidatedInFlight(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	inner := &gatedQuery{label: "stale", entered: make(chan struct{}, 1), gate: gate}
	c, err := NewCached(inner, 8)
	require.NoError(t, err)

	done := make(chan []Interval, 1)
	go func() {
		ivs, _ := c.Free(ctx, "t1", "2024-05-15")
		done <- ivs
	}()

	select {
	case <-inner.entered:
	case <-time.After(time.Second):
		t.Fatal("inner query not called")
	}
	inner.mu.Lock()
	inner.label, inner.gate = "fresh", nil
	inner.mu.Unlock()
	c.Invalidate("t1")
	close(gate)

	first := <-done
	require.Len(t, first, 1)
	assert.Equal(t, "stale", first[0].Label)

	ivs, err := c.Free(ctx, "t1", "2024-05-15")
	require.NoError(t, err)
	require.Len(t, ivs, 1)
	assert.Equal(t, "fresh", ivs[0].Label)
}
