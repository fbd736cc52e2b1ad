package appointment

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counseling/internal/apperr"
	"counseling/internal/fixture"
	"counseling/internal/model"
	"counseling/internal/role"
)

func TestCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(nil))

	a, err := svc.Create(ctx, model.Appointment{TeacherID: "1", Date: "2024-05-15", Time: "09:00 AM"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.ID, "appt-"))
	assert.Equal(t, model.StatusPending, a.Status)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.Create(ctx, model.Appointment{TeacherID: "1"})
	assert.True(t, apperr.IsValidation(err))
}

func TestListOrderedByDate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(fixture.Appointments()))

	_, err := svc.Create(ctx, model.Appointment{ID: "early", Date: "2024-04-01", Time: "09:00 AM"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 9)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "appt8", list[8].ID)
}

func TestDuplicateIDConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(fixture.Appointments()))

	_, err := svc.Create(ctx, model.Appointment{ID: "appt1", Date: "2024-04-01", Time: "09:00 AM"})
	var conflict *apperr.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestSetStatusAcceptsAnyTransition(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(fixture.Appointments()))

	// appt5 is cancelled; moving it back to confirmed is allowed.
	require.NoError(t, svc.SetStatus(ctx, "appt5", "confirmed"))
	a, err := svc.Get(ctx, "appt5")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, a.Status)

	assert.True(t, apperr.IsValidation(svc.SetStatus(ctx, "appt5", "archived")))
	assert.ErrorIs(t, svc.SetStatus(ctx, "missing", "pending"), apperr.ErrNotFound)
}

func TestDirectory(t *testing.T) {
	d := NewDirectory(fixture.Users())

	n := d.SetStatus([]string{"user1", "user3", "nobody"}, model.UserInactive)
	assert.Equal(t, 2, n)

	n = d.Delete([]string{"user8"})
	assert.Equal(t, 1, n)

	users := d.List()
	assert.Len(t, users, 7)
	for _, u := range users {
		assert.NotEqual(t, role.Admin, u.Role)
		if u.ID == "user1" {
			assert.Equal(t, model.UserInactive, u.Status)
		}
	}
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Migrate(ctx))
	require.NoError(t, repo.Seed(ctx, fixture.Appointments()))

	svc := NewService(repo)
	a, err := svc.Create(ctx, model.Appointment{TeacherID: "2", TeacherName: "Prof. Michael Johnson", Date: "2024-05-14", Time: "10:00 AM"})
	require.NoError(t, err)

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)

	_, err = repo.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
