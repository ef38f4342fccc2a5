package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/combiner/internal/adapters/cache"
	"go.trai.ch/combiner/internal/core/domain"
)

func newCache(t *testing.T, size int) *cache.Memory {
	t.Helper()
	c, err := cache.NewMemory(size)
	require.NoError(t, err)
	return c
}

func TestMemory_GetPut(t *testing.T) {
	t.Parallel()
	c := newCache(t, 8)

	_, ok := c.Get(domain.Script, "a.js")
	assert.False(t, ok)

	c.Put(domain.Script, "a.js", &domain.Payload{Key: "a.js", Body: "a"})
	got, ok := c.Get(domain.Script, "a.js")
	require.True(t, ok)
	assert.Equal(t, "a", got.Body)

	// Types are separate namespaces.
	_, ok = c.Get(domain.Style, "a.js")
	assert.False(t, ok)
}

func TestMemory_PutIgnoresFailedPayloads(t *testing.T) {
	t.Parallel()
	c := newCache(t, 8)

	c.Put(domain.Script, "a.js", &domain.Payload{Key: "a.js", Err: domain.ErrFetchFailed})
	c.Put(domain.Script, "b.js", nil)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_LoadCoalescesConcurrentCallers(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := newCache(t, 8)
		var calls atomic.Int32

		loader := func(context.Context) (*domain.Payload, error) {
			calls.Add(1)
			time.Sleep(50 * time.Millisecond)
			return &domain.Payload{Key: "a.js", Body: "a"}, nil
		}

		var wg sync.WaitGroup
		results := make([]*domain.Payload, 10)
		for i := range results {
			wg.Go(func() {
				p, err := c.Load(t.Context(), domain.Script, "a.js", loader)
				assert.NoError(t, err)
				results[i] = p
			})
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, p := range results {
			require.NotNil(t, p)
			assert.Equal(t, "a", p.Body)
		}
		assert.Equal(t, 1, c.Len())
	})
}

func TestMemory_LoadDoesNotCacheFailures(t *testing.T) {
	t.Parallel()
	c := newCache(t, 8)
	var calls int

	loader := func(context.Context) (*domain.Payload, error) {
		calls++
		return &domain.Payload{Key: "a.js", Err: domain.ErrFetchFailed}, nil
	}

	for range 2 {
		p, err := c.Load(t.Context(), domain.Script, "a.js", loader)
		require.NoError(t, err)
		assert.True(t, p.Failed())
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_LoadReturnsLoaderError(t *testing.T) {
	t.Parallel()
	c := newCache(t, 8)
	boom := errors.New("boom")

	_, err := c.Load(t.Context(), domain.Script, "a.js", func(context.Context) (*domain.Payload, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestMemory_LoadCancelledCaller(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := newCache(t, 8)
		ctx, cancel := context.WithCancel(t.Context())

		loader := func(ctx context.Context) (*domain.Payload, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}

		done := make(chan error, 1)
		go func() {
			_, err := c.Load(ctx, domain.Script, "a.js", loader)
			done <- err
		}()
		synctest.Wait()
		cancel()

		require.ErrorIs(t, <-done, context.Canceled)
	})
}

func TestMemory_LoadRetriesWhenLeaderIsCancelled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := newCache(t, 8)
		leaderCtx, cancelLeader := context.WithCancel(t.Context())
		var calls atomic.Int32

		loader := func(ctx context.Context) (*domain.Payload, error) {
			if calls.Add(1) == 1 {
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return &domain.Payload{Key: "a.js", Body: "fresh"}, nil
		}

		leaderDone := make(chan error, 1)
		go func() {
			_, err := c.Load(leaderCtx, domain.Script, "a.js", loader)
			leaderDone <- err
		}()
		synctest.Wait()

		waiterDone := make(chan *domain.Payload, 1)
		go func() {
			p, err := c.Load(t.Context(), domain.Script, "a.js", loader)
			assert.NoError(t, err)
			waiterDone <- p
		}()
		synctest.Wait()

		cancelLeader()
		require.ErrorIs(t, <-leaderDone, context.Canceled)

		p := <-waiterDone
		require.NotNil(t, p)
		assert.Equal(t, "fresh", p.Body)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestMemory_InvalidateForcesReload(t *testing.T) {
	t.Parallel()
	c := newCache(t, 8)
	var calls int

	loader := func(context.Context) (*domain.Payload, error) {
		calls++
		return &domain.Payload{Key: "a.js", Body: "a"}, nil
	}

	_, err := c.Load(t.Context(), domain.Script, "a.js", loader)
	require.NoError(t, err)
	_, err = c.Load(t.Context(), domain.Script, "a.js", loader)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	c.Invalidate(domain.Script, "a.js", "unknown.js")
	_, err = c.Load(t.Context(), domain.Script, "a.js", loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()
	c := newCache(t, 2)

	c.Put(domain.Script, "a.js", &domain.Payload{Key: "a.js"})
	c.Put(domain.Script, "b.js", &domain.Payload{Key: "b.js"})
	c.Put(domain.Script, "c.js", &domain.Payload{Key: "c.js"})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(domain.Script, "a.js")
	assert.False(t, ok)
}

func TestNewMemory_DefaultSize(t *testing.T) {
	t.Parallel()
	c, err := cache.NewMemory(0)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
