package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docrender/pkg/adapters/redis"
)

func TestLocker_ExcludesSecondHolder(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewFromClient(client, redis.WithPrefix("t:")).Locker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "doc-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("t:lock:doc-1"))

	waitCtx, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "doc-1", time.Minute)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locker.Lock(ctx, "doc-2", time.Minute)
	require.NoError(t, err, "locks are per key")
	require.NoError(t, other(ctx))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("t:lock:doc-1"))

	again, err := locker.Lock(ctx, "doc-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestLocker_WaitsForRelease(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "doc", time.Minute)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		next, err := locker.Lock(ctx, "doc", time.Minute)
		if err == nil {
			_ = next(ctx)
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first is held")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, unlock(ctx))
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second lock not acquired after release")
	}
}

func TestLocker_ReleaseKeepsForeignLock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "doc", time.Second)
	require.NoError(t, err)

	// The lock expired and someone else took it.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("lock:doc", "someone-else"))

	require.NoError(t, unlock(ctx))
	got, err := mr.Get("lock:doc")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
