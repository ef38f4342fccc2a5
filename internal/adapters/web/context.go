// Package web attaches bundles to HTTP requests and serves combined assets.
package web

import (
	"context"

	"go.trai.ch/combiner/internal/core/domain"
)

type assetsKey struct{}

// WithPageAssets returns a copy of ctx carrying the bundle URIs of the current page.
func WithPageAssets(ctx context.Context, assets domain.PageAssets) context.Context {
	return context.WithValue(ctx, assetsKey{}, assets)
}

// AssetsFromContext returns the bundle URIs attached by the page middleware.
func AssetsFromContext(ctx context.Context) (domain.PageAssets, bool) {
	assets, ok := ctx.Value(assetsKey{}).(domain.PageAssets)
	return assets, ok
}
