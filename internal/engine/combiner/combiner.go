// Package combiner bundles entry files of one asset type into a single artifact.
package combiner

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/combiner/internal/engine/assembler"
	"go.trai.ch/combiner/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Combiner resolves and writes bundles for one asset type.
// It is safe for concurrent use; per-call targets override the configured output.
type Combiner struct {
	cfg       domain.CombinerConfig
	resolver  *resolver.Resolver
	assembler *assembler.Assembler
	tracer    ports.Tracer
	logger    ports.Logger
	store     ports.BundleInfoStore
	publisher ports.Publisher
}

// Option configures optional collaborators of a Combiner.
type Option func(*Combiner)

// WithStore records every written bundle in store.
func WithStore(store ports.BundleInfoStore) Option {
	return func(c *Combiner) {
		c.store = store
	}
}

// WithPublisher uploads every bundle whose content changed.
func WithPublisher(publisher ports.Publisher) Option {
	return func(c *Combiner) {
		c.publisher = publisher
	}
}

// New creates a Combiner for cfg.Type.
func New(
	cfg domain.CombinerConfig,
	res *resolver.Resolver,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Combiner {
	c := &Combiner{
		cfg:       cfg,
		resolver:  res,
		assembler: assembler.New(cfg.Asset),
		tracer:    tracer,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the asset type of the combiner.
func (c *Combiner) Type() domain.AssetType {
	return c.cfg.Type
}

// Config returns the per-instance configuration.
func (c *Combiner) Config() domain.CombinerConfig {
	return c.cfg
}

// Resolve orders the transitive requirements of entries under the configured policy.
func (c *Combiner) Resolve(ctx context.Context, entries []string) (*domain.Resolution, error) {
	return c.resolver.Resolve(ctx, c.cfg.Type, entries, resolver.Policy{Strict: c.cfg.Strict})
}

// Bundle resolves entries and assembles their bundle in memory without writing it.
func (c *Combiner) Bundle(ctx context.Context, entries []string, target domain.Target) (*domain.Bundle, error) {
	res, err := c.Resolve(ctx, entries)
	if err != nil {
		return nil, err
	}
	return c.assembler.Build(res, c.target(target))
}

// Write resolves entries and writes their bundle.
// Written bundles are recorded in the store and published when their content changed.
func (c *Combiner) Write(ctx context.Context, entries []string, target domain.Target) (*domain.Bundle, error) {
	ctx, span := c.tracer.Start(ctx, "bundle")
	defer span.End()
	span.SetAttribute("type", c.cfg.Type.String())

	res, err := c.Resolve(ctx, entries)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	_, writeSpan := c.tracer.Start(ctx, "write")
	bundle, err := c.assembler.Write(res, c.target(target))
	if err != nil {
		writeSpan.RecordError(err)
		writeSpan.End()
		span.RecordError(err)
		return nil, err
	}
	writeSpan.SetAttribute("path", bundle.Path)
	writeSpan.SetAttribute("written", bundle.Written)
	writeSpan.End()

	if c.cfg.Log {
		state := "UNCHANGED"
		if bundle.Written {
			state = "WROTE"
		}
		c.logger.Info(fmt.Sprintf("%s %s (%d files)", state, bundle.URI, len(bundle.Order)))
	}

	c.record(res, bundle)
	if bundle.Written {
		c.publish(ctx, bundle)
	}
	return bundle, nil
}

// target fills unset fields of t from the configuration.
func (c *Combiner) target(t domain.Target) domain.Target {
	if t.Name == "" {
		t.Name = c.cfg.Output
	}
	if t.Dir == "" {
		t.Dir = c.cfg.OutputDir
	}
	if t.Suffix == "" {
		t.Suffix = c.cfg.Suffix
	}
	return t
}

func (c *Combiner) record(res *domain.Resolution, bundle *domain.Bundle) {
	if c.store == nil {
		return
	}
	info := domain.BundleInfo{
		Name:      bundle.Name,
		Type:      bundle.Type.String(),
		Entries:   res.Entries,
		Order:     bundle.Order,
		Failed:    bundle.Failed,
		Digest:    bundle.Digest,
		Path:      bundle.Path,
		URI:       bundle.URI,
		Size:      len(bundle.Content),
		Timestamp: time.Now(),
	}
	if err := c.store.Put(info); err != nil {
		c.logger.Error(zerr.With(err, "bundle", bundle.Name))
	}
}

func (c *Combiner) publish(ctx context.Context, bundle *domain.Bundle) {
	if c.publisher == nil {
		return
	}
	ctx, span := c.tracer.Start(ctx, "publish")
	defer span.End()
	if err := c.publisher.Publish(ctx, bundle); err != nil {
		span.RecordError(err)
		c.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "uri", bundle.URI))
	}
}
