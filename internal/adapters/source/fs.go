// Package source provides content sources that return the raw text of asset files.
package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ContentSource = (*FS)(nil)
	_ ports.Locator       = (*FS)(nil)
)

// FS reads asset files from their type root on the local filesystem.
// Reads go through os.Root so a key can never reach outside its root.
type FS struct {
	roots map[domain.AssetType]string
}

// NewFS creates a filesystem source for the given type roots.
func NewFS(roots map[domain.AssetType]string) *FS {
	cleaned := make(map[domain.AssetType]string, len(roots))
	for t, dir := range roots {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		cleaned[t] = filepath.Clean(dir)
	}
	return &FS{roots: cleaned}
}

// NewFSFromConfig creates a filesystem source for the asset roots of cfg.
func NewFSFromConfig(cfg *domain.Config) *FS {
	return NewFS(map[domain.AssetType]string{
		domain.Script: cfg.Script.Root,
		domain.Style:  cfg.Style.Root,
	})
}

// Fetch reads key from the root of asset type t.
func (s *FS) Fetch(ctx context.Context, t domain.AssetType, key domain.CacheKey) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, ok := s.roots[t]
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownAssetType, "no root configured"), "type", t.String())
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open asset root"), "root", dir)
	}
	defer func() {
		_ = root.Close()
	}()

	data, err := root.ReadFile(filepath.FromSlash(key.String()))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read file"), "path", key.String())
	}
	return string(data), nil
}

// Root returns the directory of asset type t.
func (s *FS) Root(t domain.AssetType) string {
	return s.roots[t]
}

// Locate returns the absolute path of key.
func (s *FS) Locate(t domain.AssetType, key domain.CacheKey) (string, bool) {
	dir, ok := s.roots[t]
	if !ok {
		return "", false
	}
	return filepath.Join(dir, filepath.FromSlash(key.String())), true
}

// KeyFor maps an absolute path back to its asset type and key.
// When roots overlap, the type matching the file extension wins.
func (s *FS) KeyFor(absPath string) (domain.AssetType, domain.CacheKey, bool) {
	byExt, hasExt := domain.AssetTypeForPath(absPath)
	var (
		found    bool
		bestType domain.AssetType
		bestKey  domain.CacheKey
	)
	for _, t := range domain.AssetTypes {
		dir, ok := s.roots[t]
		if !ok {
			continue
		}
		rel, err := filepath.Rel(dir, absPath)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		key, err := domain.NewCacheKey(filepath.ToSlash(rel))
		if err != nil {
			continue
		}
		if !found || (hasExt && t == byExt) {
			found, bestType, bestKey = true, t, key
		}
	}
	return bestType, bestKey, found
}
