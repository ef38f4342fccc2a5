package ports

import (
	"context"

	"go.trai.ch/combiner/internal/core/domain"
)

// PayloadLoader produces the payload of a key on a cache miss.
type PayloadLoader func(ctx context.Context) (*domain.Payload, error)

// PayloadCache stores fetched payloads, namespaced by asset type.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type PayloadCache interface {
	// Get returns the cached payload of key, if any.
	Get(t domain.AssetType, key domain.CacheKey) (*domain.Payload, bool)

	// Put stores payload under key, replacing any previous entry.
	Put(t domain.AssetType, key domain.CacheKey, payload *domain.Payload)

	// Load returns the cached payload of key or runs loader to produce it.
	// Concurrent calls for the same key share a single loader invocation.
	// Only payloads without a fetch error are stored.
	Load(ctx context.Context, t domain.AssetType, key domain.CacheKey, loader PayloadLoader) (*domain.Payload, error)

	// Invalidate drops the given keys so the next Load fetches them again.
	Invalidate(t domain.AssetType, keys ...domain.CacheKey)

	// Purge drops every entry.
	Purge()

	// Len returns the number of cached payloads.
	Len() int
}
