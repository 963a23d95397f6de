package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newPresenceService(t *testing.T) (*PresenceService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &PresenceService{Client: client, TTL: 5 * time.Minute}, mr
}

func TestPresenceTouchAndOnline(t *testing.T) {
	ctx := context.Background()
	svc, mr := newPresenceService(t)

	online, err := svc.Online(ctx, "u1")
	require.NoError(t, err)
	require.False(t, online)

	require.NoError(t, svc.Touch(ctx, "u1"))

	online, err = svc.Online(ctx, "u1")
	require.NoError(t, err)
	require.True(t, online)

	last, ok, err := svc.LastActive(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.WithinDuration(t, time.Now().UTC(), last, time.Minute)

	t.Run("expires after ttl", func(t *testing.T) {
		mr.FastForward(6 * time.Minute)

		online, err := svc.Online(ctx, "u1")
		require.NoError(t, err)
		require.False(t, online)

		_, ok, err := svc.LastActive(ctx, "u1")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("heartbeat refreshes ttl", func(t *testing.T) {
		require.NoError(t, svc.Touch(ctx, "u2"))
		mr.FastForward(4 * time.Minute)
		require.NoError(t, svc.Touch(ctx, "u2"))
		mr.FastForward(4 * time.Minute)

		online, err := svc.Online(ctx, "u2")
		require.NoError(t, err)
		require.True(t, online)
	})
}

func TestPresenceSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPresenceService(t)

	require.NoError(t, svc.Touch(ctx, "a"))
	require.NoError(t, svc.Touch(ctx, "b"))

	snap, err := svc.Snapshot(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, snap, 2)
	require.Contains(t, snap, "a")
	require.Contains(t, snap, "b")
	require.NotContains(t, snap, "c")
}

func TestPresenceWithoutRedis(t *testing.T) {
	// The degraded mode: no Redis configured, everyone reads as offline
	// and heartbeats are silently dropped.
	ctx := context.Background()
	svc := &PresenceService{}

	require.NoError(t, svc.Touch(ctx, "u1"))

	online, err := svc.Online(ctx, "u1")
	require.NoError(t, err)
	require.False(t, online)

	_, ok, err := svc.LastActive(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)

	snap, err := svc.Snapshot(ctx, []string{"u1"})
	require.NoError(t, err)
	require.Empty(t, snap)
}
