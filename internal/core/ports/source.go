// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/combiner/internal/core/domain"
)

// ContentSource resolves a logical file to its raw text.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type ContentSource interface {
	// Fetch returns the body of key within the root of asset type t.
	// Failures are returned, never panicked; the caller decides their severity.
	Fetch(ctx context.Context, t domain.AssetType, key domain.CacheKey) (string, error)
}

// Locator maps logical files to filesystem paths and back.
// Sources backed by a filesystem implement it so changes can be traced to cache keys.
type Locator interface {
	// Locate returns the absolute path of key.
	Locate(t domain.AssetType, key domain.CacheKey) (string, bool)
	// KeyFor returns the asset type and key of an absolute path under a known root.
	KeyFor(absPath string) (domain.AssetType, domain.CacheKey, bool)
}
