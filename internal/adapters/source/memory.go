package source

import (
	"context"
	"os"
	"sync"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentSource = (*Memory)(nil)

// Memory is an in-memory registry of asset files.
type Memory struct {
	mu      sync.RWMutex
	files   map[domain.AssetType]map[domain.CacheKey]string
	fetches map[domain.AssetType]map[domain.CacheKey]int
}

// NewMemory creates an empty registry.
func NewMemory() *Memory {
	return &Memory{
		files:   make(map[domain.AssetType]map[domain.CacheKey]string),
		fetches: make(map[domain.AssetType]map[domain.CacheKey]int),
	}
}

// Set registers the body of the file at path p.
func (m *Memory) Set(t domain.AssetType, p, body string) error {
	key, err := domain.NewCacheKey(p)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files[t] == nil {
		m.files[t] = make(map[domain.CacheKey]string)
	}
	m.files[t][key] = body
	return nil
}

// Delete removes the file at path p.
func (m *Memory) Delete(t domain.AssetType, p string) {
	key, err := domain.NewCacheKey(p)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files[t], key)
}

// Fetch returns the registered body of key.
func (m *Memory) Fetch(ctx context.Context, t domain.AssetType, key domain.CacheKey) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetches[t] == nil {
		m.fetches[t] = make(map[domain.CacheKey]int)
	}
	m.fetches[t][key]++

	body, ok := m.files[t][key]
	if !ok {
		return "", zerr.With(zerr.Wrap(os.ErrNotExist, "file not registered"), "path", key.String())
	}
	return body, nil
}

// Fetches returns how many times key has been fetched.
func (m *Memory) Fetches(t domain.AssetType, key domain.CacheKey) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fetches[t][key]
}
