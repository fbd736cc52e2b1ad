package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counseling/internal/apperr"
	"counseling/internal/role"
)

func TestSignInInfersRole(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		email string
		want  role.Role
	}{
		{"pat.teacher@uni.edu", role.Teacher},
		{"pat@uni.edu", role.Student},
		{"admin@university.edu", role.Admin},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			p := NewProvider(NewMemoryStore(), 0)
			st, err := p.SignIn(ctx, tt.email, "x")
			require.NoError(t, err)
			require.NotNil(t, st.Role)
			assert.Equal(t, tt.want, *st.Role)
			assert.Nil(t, st.User.PhotoURL)
		})
	}
}

func TestSignInPersistsBothKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := NewProvider(store, 0)

	_, err := p.SignIn(ctx, "pat.teacher@uni.edu", "x")
	require.NoError(t, err)

	r, ok, err := store.Get(ctx, KeyRole)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "teacher", r)

	reloaded, err := NewProvider(store, 0).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, reloaded.User)
	assert.Equal(t, "pat.teacher", reloaded.User.DisplayName)
	assert.Equal(t, UserID("pat.teacher@uni.edu"), reloaded.User.UID)
}

type failingStore struct {
	*MemoryStore
	failKey string
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("write refused")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestSignInRollsBackUserWhenRoleWriteFails(t *testing.T) {
	ctx := context.Background()
	store := failingStore{MemoryStore: NewMemoryStore(), failKey: KeyRole}
	p := NewProvider(store, 0)

	_, err := p.SignIn(ctx, "pat@uni.edu", "x")
	require.ErrorContains(t, err, "store session role")
	assert.False(t, p.Current().SignedIn())

	_, ok, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := NewProvider(store, 0).Load(ctx)
	require.NoError(t, err)
	assert.False(t, reloaded.SignedIn())
}

func TestSignOutClearsSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := NewProvider(store, 0)

	_, err := p.SignIn(ctx, "pat@uni.edu", "x")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx))

	st, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.User)
	assert.Nil(t, st.Role)
	assert.False(t, p.Current().SignedIn())

	_, ok, _ := store.Get(ctx, KeyRole)
	assert.False(t, ok)
}

func TestLoadWithoutUserIgnoresRole(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyRole, "admin"))

	st, err := NewProvider(store, 0).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.User)
	assert.Nil(t, st.Role)
}

func TestLoadUserWithoutRole(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyUser, `{"uid":"u1","email":"a@b.c","displayName":"a","photoURL":null}`))

	st, err := NewProvider(store, 0).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.User)
	assert.Equal(t, "u1", st.User.UID)
	assert.Nil(t, st.Role)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := NewProvider(store, 0)

	res, err := p.Register(ctx, RegisterData{FirstName: "Pat", LastName: "Lee", Email: "pat@uni.edu", Password: "pw", Role: "teacher"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	r, ok, _ := store.Get(ctx, KeyRole)
	assert.True(t, ok)
	assert.Equal(t, "teacher", r)
	_, ok, _ = store.Get(ctx, KeyUser)
	assert.False(t, ok)

	_, err = p.Register(ctx, RegisterData{FirstName: "Pat", LastName: "Lee", Email: "pat@uni.edu", Password: "pw", Role: "guest"})
	assert.True(t, apperr.IsValidation(err))

	_, err = p.Register(ctx, RegisterData{Email: "pat@uni.edu", Role: "student"})
	assert.True(t, apperr.IsValidation(err))
}

func TestDelayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewProvider(NewMemoryStore(), time.Minute)

	_, err := p.SignIn(ctx, "pat@uni.edu", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNamespacedIsolation(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()
	a := NewProvider(Namespaced(shared, "a"), 0)
	b := NewProvider(Namespaced(shared, "b"), 0)

	_, err := a.SignIn(ctx, "admin@uni.edu", "x")
	require.NoError(t, err)

	st, err := b.Load(ctx)
	require.NoError(t, err)
	assert.False(t, st.SignedIn())

	st, err = a.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.SignedIn())
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer s.Close()

	p := NewProvider(s, 0)
	_, err = p.SignIn(ctx, "pat.teacher@uni.edu", "x")
	require.NoError(t, err)

	st, err := NewProvider(s, 0).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.Role)
	assert.Equal(t, role.Teacher, *st.Role)

	require.NoError(t, p.SignOut(ctx))
	st, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.User)
}
