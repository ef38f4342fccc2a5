package cache

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/combiner/internal/adapters/config"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
)

// NodeID is the unique identifier for the payload cache Graft node.
const NodeID graft.ID = "adapter.payload_cache"

func init() {
	graft.Register(graft.Node[ports.PayloadCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.PayloadCache, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			size := domain.DefaultCacheSize
			// Configuration errors surface again when the command loads it.
			if cwd, errWd := os.Getwd(); errWd == nil {
				if cfg, errLoad := loader.Load(cwd); errLoad == nil && cfg.CacheSize > 0 {
					size = cfg.CacheSize
				}
			}
			cache, err := NewMemory(size)
			if err != nil {
				return nil, err
			}
			return cache, nil
		},
	})
}
