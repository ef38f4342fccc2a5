// Package cache provides the in-process payload cache.
package cache

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.PayloadCache = (*Memory)(nil)

type entryKey struct {
	t   domain.AssetType
	key domain.CacheKey
}

func (k entryKey) String() string {
	return k.t.String() + "|" + k.key.String()
}

// Memory is a bounded LRU payload cache with coalesced loads.
// Eviction only causes a refetch.
type Memory struct {
	entries *lru.Cache[entryKey, *domain.Payload]
	group   singleflight.Group
}

// NewMemory creates a cache holding at most size payloads.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = domain.DefaultCacheSize
	}
	entries, err := lru.New[entryKey, *domain.Payload](size)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create payload cache"), "size", size)
	}
	return &Memory{entries: entries}, nil
}

// Get returns the cached payload of key, if any.
func (m *Memory) Get(t domain.AssetType, key domain.CacheKey) (*domain.Payload, bool) {
	return m.entries.Get(entryKey{t: t, key: key})
}

// Put stores payload under key. Failed payloads are ignored.
func (m *Memory) Put(t domain.AssetType, key domain.CacheKey, payload *domain.Payload) {
	if payload == nil || payload.Failed() {
		return
	}
	m.entries.Add(entryKey{t: t, key: key}, payload)
}

// Load returns the cached payload of key or runs loader once for all concurrent callers.
// If the shared load was aborted by the cancellation of another caller's context,
// a caller whose own context is still live retries once with its own context.
func (m *Memory) Load(
	ctx context.Context,
	t domain.AssetType,
	key domain.CacheKey,
	loader ports.PayloadLoader,
) (*domain.Payload, error) {
	if p, ok := m.Get(t, key); ok {
		return p, nil
	}

	k := entryKey{t: t, key: key}
	for attempt := 0; ; attempt++ {
		ch := m.group.DoChan(k.String(), func() (any, error) {
			if p, ok := m.Get(t, key); ok {
				return p, nil
			}
			p, err := loader(ctx)
			if err != nil {
				return nil, err
			}
			m.Put(t, key, p)
			return p, nil
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err == nil {
				return res.Val.(*domain.Payload), nil
			}
			if attempt == 0 && res.Shared && ctx.Err() == nil && isCancellation(res.Err) {
				continue
			}
			return nil, res.Err
		}
	}
}

// Invalidate drops the given keys.
func (m *Memory) Invalidate(t domain.AssetType, keys ...domain.CacheKey) {
	for _, key := range keys {
		m.entries.Remove(entryKey{t: t, key: key})
	}
}

// Purge drops every entry.
func (m *Memory) Purge() {
	m.entries.Purge()
}

// Len returns the number of cached payloads.
func (m *Memory) Len() int {
	return m.entries.Len()
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
