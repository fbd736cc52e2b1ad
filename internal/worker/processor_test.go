package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counseling/internal/admin"
	"counseling/internal/queue"
)

func message(t *testing.T, typ string, payload any) queue.Message {
	t.Helper()
	msg, err := queue.NewMessage(typ, payload)
	require.NoError(t, err)
	return msg
}

func TestHandle(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		msg     queue.Message
		typ     string
		user    string
		details string
	}{
		{
			name:    "booked",
			msg:     message(t, queue.TypeAppointmentBooked, queue.AppointmentBooked{StudentName: "Pat", TeacherName: "Dr. Jane Smith", At: at}),
			typ:     admin.ActivityAppointmentCreated,
			user:    "Pat",
			details: "Booked appointment with Dr. Jane Smith",
		},
		{
			name:    "booked anonymously",
			msg:     message(t, queue.TypeAppointmentBooked, queue.AppointmentBooked{TeacherName: "Dr. Emily Davis", At: at}),
			typ:     admin.ActivityAppointmentCreated,
			user:    "Student",
			details: "Booked appointment with Dr. Emily Davis",
		},
		{
			name:    "registered",
			msg:     message(t, queue.TypeUserRegistered, queue.UserRegistered{Name: "Ana Ruiz", Role: "teacher", At: at}),
			typ:     admin.ActivityUserRegistered,
			user:    "Ana Ruiz",
			details: "New teacher registration",
		},
		{
			name:    "cancelled",
			msg:     message(t, queue.TypeAppointmentStatus, queue.AppointmentStatus{StudentName: "Michael Brown", Status: "cancelled", At: at}),
			typ:     admin.ActivityAppointmentCancelled,
			user:    "Admin User",
			details: "Cancelled appointment with Michael Brown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := admin.NewMemoryFeed(10, nil)
			p := NewProcessor(feed, nil)
			require.NoError(t, p.Handle(context.Background(), tt.msg))

			got, err := feed.Recent(context.Background(), 0)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.typ, got[0].Type)
			assert.Equal(t, tt.user, got[0].User)
			assert.Equal(t, tt.details, got[0].Details)
			assert.Equal(t, at, got[0].Timestamp)
			assert.NotEmpty(t, got[0].ID)
		})
	}
}

func TestHandleIgnoresOtherEvents(t *testing.T) {
	feed := admin.NewMemoryFeed(10, nil)
	p := NewProcessor(feed, nil)

	err := p.Handle(context.Background(), queue.Message{Type: "checkin", Body: []byte("x")})
	assert.ErrorIs(t, err, ErrIgnored)

	err = p.Handle(context.Background(), message(t, queue.TypeAppointmentStatus, queue.AppointmentStatus{Status: "confirmed"}))
	assert.ErrorIs(t, err, ErrIgnored)

	err = p.Handle(context.Background(), queue.Message{Type: queue.TypeUserRegistered, Body: []byte("{")})
	assert.Error(t, err)

	got, _ := feed.Recent(context.Background(), 0)
	assert.Empty(t, got)
}

func TestRunDrainsQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemory(4)
	feed := admin.NewMemoryFeed(10, nil)
	done := make(chan error, 1)
	go func() { done <- NewProcessor(feed, nil).Run(ctx, q) }()

	require.NoError(t, q.Publish(ctx, message(t, queue.TypeUserRegistered, queue.UserRegistered{Email: "new@uni.edu", Role: "student"})))

	assert.Eventually(t, func() bool {
		got, _ := feed.Recent(ctx, 0)
		return len(got) == 1 && got[0].User == "new@uni.edu"
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("processor did not stop")
	}
}
