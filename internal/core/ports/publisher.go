package ports

import (
	"context"

	"go.trai.ch/combiner/internal/core/domain"
)

// Publisher copies written bundles to a remote location.
//
//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// Publish uploads the bundle content under its public URI.
	Publish(ctx context.Context, bundle *domain.Bundle) error
}
