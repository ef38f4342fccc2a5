package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Change describes one batch of invalidated files.
type Change struct {
	// Keys lists the invalidated keys per asset type.
	Keys map[domain.AssetType][]domain.CacheKey
	// Purged is set when the whole cache was dropped.
	Purged bool
}

// Empty reports whether the change touched nothing.
func (c Change) Empty() bool {
	return !c.Purged && len(c.Keys) == 0
}

// Invalidator drops cached payloads of changed files and notifies subscribers.
type Invalidator struct {
	cache   ports.PayloadCache
	locator ports.Locator
	logger  ports.Logger
	ignore  func(path string) bool

	mu          sync.Mutex
	subscribers []func(Change)
}

// NewInvalidator creates an Invalidator for the files known to locator.
// Paths for which ignore returns true are skipped; ignore may be nil.
func NewInvalidator(
	cache ports.PayloadCache,
	locator ports.Locator,
	logger ports.Logger,
	ignore func(path string) bool,
) *Invalidator {
	return &Invalidator{
		cache:   cache,
		locator: locator,
		logger:  logger,
		ignore:  ignore,
	}
}

// IgnoreSuffix returns an ignore function for generated bundles carrying suffix.
func IgnoreSuffix(suffix string) func(string) bool {
	return func(path string) bool {
		return suffix != "" && strings.Contains(path, suffix)
	}
}

// Subscribe registers fn to be called after every non-empty invalidation.
func (i *Invalidator) Subscribe(fn func(Change)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.subscribers = append(i.subscribers, fn)
}

// Invalidate maps changed absolute paths to cache keys and drops them.
// A changed directory under an asset root purges the whole cache, as the affected keys
// cannot be enumerated. Other non-asset files are ignored.
func (i *Invalidator) Invalidate(paths []string) Change {
	change := Change{Keys: make(map[domain.AssetType][]domain.CacheKey)}

	for _, p := range paths {
		if i.ignore != nil && i.ignore(p) {
			continue
		}
		t, key, ok := i.locator.KeyFor(p)
		if !ok {
			continue
		}
		if _, isAsset := domain.AssetTypeForPath(p); !isAsset {
			change.Purged = true
			continue
		}
		change.Keys[t] = append(change.Keys[t], key)
	}

	if change.Purged {
		i.cache.Purge()
		i.logger.Info("PURGED payload cache")
	} else {
		for t, keys := range change.Keys {
			i.cache.Invalidate(t, keys...)
			i.logger.Info(fmt.Sprintf("INVALIDATED %s %s", t, joinKeys(keys)))
		}
	}
	if len(change.Keys) == 0 {
		change.Keys = nil
	}

	if !change.Empty() {
		i.mu.Lock()
		subscribers := append([]func(Change){}, i.subscribers...)
		i.mu.Unlock()
		for _, fn := range subscribers {
			fn(change)
		}
	}
	return change
}

// Run watches root and invalidates changed files until ctx is done.
// Events are coalesced over window before they are applied.
func (i *Invalidator) Run(ctx context.Context, w ports.Watcher, root string, window time.Duration) error {
	if err := w.Start(ctx, root); err != nil {
		return err
	}

	debouncer := NewDebouncer(window, func(paths []string) {
		i.Invalidate(paths)
	})

	for event := range w.Events() {
		debouncer.Add(event.Path)
	}
	debouncer.Flush()

	return w.Stop()
}

// wasDirectory reports whether p is, or most likely was, a directory.
// Removed paths cannot be inspected; those without an extension count as directories.
func wasDirectory(p string) bool {
	info, err := os.Stat(p)
	if err == nil {
		return info.IsDir()
	}
	return filepath.Ext(p) == ""
}

func joinKeys(keys []domain.CacheKey) string {
	parts := make([]string, len(keys))
	for idx, k := range keys {
		parts[idx] = k.String()
	}
	return strings.Join(parts, ", ")
}
