package ports

import "go.trai.ch/combiner/internal/core/domain"

// BundleInfoStore defines the interface for storing and retrieving bundle records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BundleInfoStore interface {
	// Get retrieves the bundle info of the bundle served at uri.
	// Returns nil, nil if not found.
	Get(uri string) (*domain.BundleInfo, error)

	// Put stores the bundle info under its URI.
	Put(info domain.BundleInfo) error
}
