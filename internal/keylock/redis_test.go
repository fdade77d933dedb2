package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	locker := NewRedis(rdb, 5*time.Second)
	locker.retry = time.Millisecond
	return mr, locker
}

func TestRedisLockUnlock(t *testing.T) {
	mr, l := newTestRedis(t)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "stat:alice:logic")
	require.NoError(t, err)
	assert.True(t, mr.Exists("skillpulse:lock:stat:alice:logic"))

	unlock()
	assert.False(t, mr.Exists("skillpulse:lock:stat:alice:logic"))
}

func TestRedisBlocksUntilReleased(t *testing.T) {
	_, l := newTestRedis(t)
	ctx := context.Background()

	const workers = 10
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "k")
			if err != nil {
				t.Error(err)
				return
			}
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestRedisContextCancel(t *testing.T) {
	_, l := newTestRedis(t)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisStaleUnlockKeepsNewHolder(t *testing.T) {
	mr, l := newTestRedis(t)
	ctx := context.Background()

	unlockOld, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	// The first holder's lease expires and someone else takes the key.
	mr.FastForward(6 * time.Second)
	unlockNew, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	unlockOld()
	assert.True(t, mr.Exists("skillpulse:lock:k"), "stale holder must not release a newer lock")
	unlockNew()
	assert.False(t, mr.Exists("skillpulse:lock:k"))
}

func TestRedisLeaseRenewedWhileHeld(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	l := NewRedis(rdb, 300*time.Millisecond)
	const key = "skillpulse:lock:k"

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	mr.FastForward(250 * time.Millisecond)
	require.True(t, mr.Exists(key))
	assert.Eventually(t, func() bool { return mr.TTL(key) > 100*time.Millisecond },
		time.Second, 10*time.Millisecond, "lease should be extended")

	mr.FastForward(250 * time.Millisecond)
	assert.True(t, mr.Exists(key), "holder past its original TTL keeps the key")

	unlock()
	assert.False(t, mr.Exists(key))
	unlock()
}
