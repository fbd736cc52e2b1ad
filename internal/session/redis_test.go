package session

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	s := NewRedisStore(client, "test:"+uuid.NewString()+":", 0)
	require.NoError(t, s.Set(ctx, KeyRole, "student"))

	v, ok, err := s.Get(ctx, KeyRole)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "student", v)

	require.NoError(t, s.Delete(ctx, KeyRole))
	_, ok, err = s.Get(ctx, KeyRole)
	require.NoError(t, err)
	assert.False(t, ok)
}
