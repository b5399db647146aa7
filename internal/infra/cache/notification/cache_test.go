package notification

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dedup:notification:ORD-1:settlement", Key("ORD-1", "settlement"))
	assert.Equal(t, "dedup:notification:ORD-1:settlement", Key("ORD-1", " Settlement "))
}

func TestNop(t *testing.T) {
	t.Parallel()

	var c Nop
	seen, err := c.Seen(context.Background(), "ORD-1", "settlement")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.NoError(t, c.Mark(context.Background(), "ORD-1", "settlement"))
}

func TestCache_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	rdb := NewClient(addr, "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewCache(rdb, time.Minute)
	ctx := context.Background()
	ref := "ORD-" + uuid.NewString()

	seen, err := c.Seen(ctx, ref, "settlement")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, c.Mark(ctx, ref, "settlement"))

	seen, err = c.Seen(ctx, ref, "settlement")
	require.NoError(t, err)
	assert.True(t, seen)

	// другой статус - другой ключ
	seen, err = c.Seen(ctx, ref, "expire")
	require.NoError(t, err)
	assert.False(t, seen)

	ttl, err := rdb.TTL(ctx, Key(ref, "settlement")).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}
