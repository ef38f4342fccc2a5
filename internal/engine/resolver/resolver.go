// Package resolver discovers the transitive requirements of entry files and orders them.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/combiner/internal/engine/scanner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options tunes a Resolver.
type Options struct {
	// Concurrency bounds the number of concurrent fetches. Defaults to 4x the CPU count.
	Concurrency int
	// FetchTimeout bounds a single fetch. Defaults to domain.DefaultFetchTimeout.
	FetchTimeout time.Duration
	// Log enables per-file GOT, CACHED and REQS lines.
	Log bool
}

// Policy decides how fetch failures affect a resolution.
type Policy struct {
	// Strict fails the resolution on the first fetch failure.
	// Otherwise failures are recorded and the failed files contribute nothing.
	Strict bool
}

// Resolver builds dependency-first orderings of asset files.
type Resolver struct {
	source  ports.ContentSource
	cache   ports.PayloadCache
	scanner *scanner.Scanner
	tracer  ports.Tracer
	logger  ports.Logger
	opts    Options
	sem     *semaphore.Weighted
}

// New creates a Resolver with the given dependencies.
func New(
	source ports.ContentSource,
	cache ports.PayloadCache,
	scan *scanner.Scanner,
	tracer ports.Tracer,
	logger ports.Logger,
	opts Options,
) *Resolver {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU() * 4
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = domain.DefaultFetchTimeout
	}
	return &Resolver{
		source:  source,
		cache:   cache,
		scanner: scan,
		tracer:  tracer,
		logger:  logger,
		opts:    opts,
		sem:     semaphore.NewWeighted(int64(opts.Concurrency)),
	}
}

// discovery is the shared state of one resolution's discovery phase.
type discovery struct {
	t      domain.AssetType
	policy Policy

	mu       sync.Mutex
	seen     map[domain.CacheKey]bool
	payloads map[domain.CacheKey]*domain.Payload
}

// claim marks key as seen and reports whether the caller should visit it.
func (d *discovery) claim(key domain.CacheKey) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	return true
}

func (d *discovery) record(p *domain.Payload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payloads[p.Key] = p
}

// Resolve discovers every file required by entries and orders them so that each file
// follows everything it requires. Entries keep their input order; requirements keep
// their declaration order.
func (r *Resolver) Resolve(
	ctx context.Context,
	t domain.AssetType,
	entries []string,
	policy Policy,
) (*domain.Resolution, error) {
	if len(entries) == 0 {
		return nil, domain.ErrNoEntries
	}

	ctx, span := r.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute("type", t.String())
	span.SetAttribute("entries", entries)
	span.SetAttribute("strict", policy.Strict)

	keys, err := r.entryKeys(entries, policy)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	d := &discovery{
		t:        t,
		policy:   policy,
		seen:     make(map[domain.CacheKey]bool),
		payloads: make(map[domain.CacheKey]*domain.Payload),
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		if d.claim(key) {
			g.Go(func() error {
				return r.visit(gctx, d, key)
			})
		}
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	res := r.order(t, keys, d.payloads)
	span.SetAttribute("files", len(res.Order))
	span.SetAttribute("failed", len(res.Failed))
	return res, nil
}

// entryKeys normalizes and deduplicates the entry paths.
func (r *Resolver) entryKeys(entries []string, policy Policy) ([]domain.CacheKey, error) {
	keys := make([]domain.CacheKey, 0, len(entries))
	for _, entry := range entries {
		key, err := domain.NewCacheKey(entry)
		if err != nil {
			if policy.Strict {
				return nil, err
			}
			r.warn(err)
			continue
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// visit loads key and discovers its unseen requirements concurrently.
// It returns only once every requirement below key has been discovered.
func (r *Resolver) visit(ctx context.Context, d *discovery, key domain.CacheKey) error {
	p, err := r.load(ctx, d.t, key)
	if err != nil {
		return err
	}
	d.record(p)

	if p.Failed() {
		if d.policy.Strict {
			return p.Err
		}
		r.warn(p.Err)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, dep := range p.Deps {
		if d.claim(dep) {
			g.Go(func() error {
				return r.visit(gctx, d, dep)
			})
		}
	}
	return g.Wait()
}

// load returns the payload of key from the cache, fetching it on a miss.
func (r *Resolver) load(ctx context.Context, t domain.AssetType, key domain.CacheKey) (*domain.Payload, error) {
	if p, ok := r.cache.Get(t, key); ok {
		r.info("CACHED " + key.String())
		return p, nil
	}
	return r.cache.Load(ctx, t, key, func(ctx context.Context) (*domain.Payload, error) {
		return r.fetch(ctx, t, key)
	})
}

// fetch reads and scans key. Fetch failures are recorded on the payload;
// only cancellation of ctx is returned as an error.
func (r *Resolver) fetch(ctx context.Context, t domain.AssetType, key domain.CacheKey) (*domain.Payload, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	fetchCtx, span := r.tracer.Start(ctx, "fetch")
	defer span.End()
	span.SetAttribute("path", key.String())

	fetchCtx, cancel := context.WithTimeout(fetchCtx, r.opts.FetchTimeout)
	defer cancel()

	body, err := r.source.Fetch(fetchCtx, t, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		err = zerr.With(fmt.Errorf("%w: %w", domain.ErrFetchFailed, err), "path", key.String())
		span.RecordError(err)
		return &domain.Payload{Key: key, Err: err, FetchedAt: time.Now()}, nil
	}
	r.info("GOT " + key.String())

	requires := r.scanner.Scan(body)
	if len(requires) > 0 {
		r.info(fmt.Sprintf("REQS %s [%s]", key, strings.Join(requires, ", ")))
	}

	deps := make([]domain.CacheKey, 0, len(requires))
	for _, req := range requires {
		dep, errReq := domain.ResolveRequirement(key, req)
		if errReq != nil {
			r.warn(errReq)
			continue
		}
		if !slices.Contains(deps, dep) {
			deps = append(deps, dep)
		}
	}
	span.SetAttribute("requires", len(deps))

	return &domain.Payload{
		Key:       key,
		Body:      body,
		Requires:  requires,
		Deps:      deps,
		Digest:    xxhash.Sum64String(body),
		FetchedAt: time.Now(),
	}, nil
}

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// order produces the dependency-first ordering by depth-first post-order traversal.
// Requirements that point back to a file still in progress close a cycle and are dropped.
func (r *Resolver) order(
	t domain.AssetType,
	entries []domain.CacheKey,
	payloads map[domain.CacheKey]*domain.Payload,
) *domain.Resolution {
	res := &domain.Resolution{
		Type:     t,
		Entries:  entries,
		Order:    make([]domain.CacheKey, 0, len(payloads)),
		Payloads: payloads,
	}
	state := make(map[domain.CacheKey]visitState, len(payloads))

	var walk func(key domain.CacheKey)
	walk = func(key domain.CacheKey) {
		state[key] = inProgress
		if p := payloads[key]; p != nil && !p.Failed() {
			for _, dep := range p.Deps {
				switch state[dep] {
				case inProgress:
					res.Cycles = append(res.Cycles, domain.Edge{From: key, To: dep})
					r.warn(zerr.With(zerr.With(zerr.Wrap(domain.ErrCycleDetected, "dropped requirement"),
						"from", key.String()), "to", dep.String()))
				case unvisited:
					walk(dep)
				case done:
				}
			}
		}
		state[key] = done
		res.Order = append(res.Order, key)
		if p := payloads[key]; p.Failed() {
			res.Failed = append(res.Failed, key)
		}
	}

	for _, key := range entries {
		if state[key] == unvisited {
			walk(key)
		}
	}
	return res
}

func (r *Resolver) info(msg string) {
	if r.opts.Log && r.logger != nil {
		r.logger.Info(msg)
	}
}

func (r *Resolver) warn(err error) {
	if r.logger != nil {
		r.logger.Warn(describe(err))
	}
}

// describe renders err followed by its metadata as sorted key=value pairs.
func describe(err error) string {
	msg := err.Error()
	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		return msg
	}
	meta := zErr.Metadata()
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		msg += fmt.Sprintf(" %s=%v", k, meta[k])
	}
	return msg
}
