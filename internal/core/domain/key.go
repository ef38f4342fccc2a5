package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// CacheKey is a normalized, slash-separated path relative to an asset root.
// Two logical paths naming the same file always produce the same key.
type CacheKey string

// String returns the key as a path.
func (k CacheKey) String() string {
	return string(k)
}

// Dir returns the directory part of the key, "." for files at the root.
func (k CacheKey) Dir() string {
	return path.Dir(string(k))
}

// NewCacheKey normalizes a root-relative logical path.
// Backslashes are treated as separators and a leading slash is ignored.
func NewCacheKey(p string) (CacheKey, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", ErrEmptyPath
	}
	cleaned := path.Clean(strings.TrimLeft(p, "/"))
	switch {
	case cleaned == ".":
		return "", zerr.With(zerr.Wrap(ErrEmptyPath, "invalid path"), "path", p)
	case cleaned == ".." || strings.HasPrefix(cleaned, "../"):
		return "", zerr.With(zerr.Wrap(ErrPathOutsideRoot, "invalid path"), "path", p)
	}
	return CacheKey(cleaned), nil
}

// ResolveRequirement resolves a requirement declared by parent.
// Paths starting with "/" are relative to the asset root; all others are relative
// to the directory of the requiring file. Results outside the root are rejected.
func ResolveRequirement(parent CacheKey, req string) (CacheKey, error) {
	req = strings.TrimSpace(strings.ReplaceAll(req, "\\", "/"))
	if req == "" {
		return "", zerr.With(zerr.Wrap(ErrEmptyPath, "invalid requirement"), "required_by", parent.String())
	}
	if strings.HasPrefix(req, "/") {
		return NewCacheKey(req)
	}
	joined := path.Clean(path.Join(parent.Dir(), req))
	if joined == ".." || strings.HasPrefix(joined, "../") {
		err := zerr.With(zerr.Wrap(ErrPathOutsideRoot, "invalid requirement"), "path", req)
		return "", zerr.With(err, "required_by", parent.String())
	}
	return NewCacheKey(joined)
}
