package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Combiner bundles entry files of one asset type.
type Combiner interface {
	Type() domain.AssetType
	Config() domain.CombinerConfig
	Bundle(ctx context.Context, entries []string, target domain.Target) (*domain.Bundle, error)
	Write(ctx context.Context, entries []string, target domain.Target) (*domain.Bundle, error)
}

// PageName returns the page identity of a URL path: "index" for the root,
// otherwise the last path element without extension or query string.
func PageName(urlPath string) string {
	if i := strings.IndexAny(urlPath, "?#"); i >= 0 {
		urlPath = urlPath[:i]
	}
	trimmed := strings.Trim(urlPath, "/")
	if trimmed == "" {
		return domain.IndexPageName
	}
	base := path.Base(trimmed)
	if name := strings.TrimSuffix(base, path.Ext(base)); name != "" {
		return name
	}
	return base
}

// Pages bundles the per-page script and style entries of every request it wraps.
type Pages struct {
	combiners []Combiner
	logger    ports.Logger
}

// NewPages creates page middleware over one combiner per asset type.
func NewPages(logger ports.Logger, combiners ...Combiner) *Pages {
	return &Pages{combiners: combiners, logger: logger}
}

// Middleware bundles the assets of the requested page before calling next.
func (p *Pages) Middleware(next http.Handler) http.Handler {
	return p.Named("", next)
}

// Named is Middleware for a route that borrows the bundles of the page at alias.
// alias is a URL path such as "/" or "/blog/post"; an empty alias uses the request path.
func (p *Pages) Named(alias string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageURL := alias
		if pageURL == "" {
			pageURL = r.URL.Path
		}

		assets, err := p.Assets(r.Context(), pageURL)
		if err != nil {
			p.logger.Error(zerr.With(err, "page", pageURL))
			if failed := failingPath(err); failed != "" {
				http.Error(w, "failed to bundle "+failed, http.StatusBadGateway)
				return
			}
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPageAssets(r.Context(), assets)))
	})
}

// Assets writes the bundles of the page at pageURL and returns their URIs.
// Bundles of all asset types are built concurrently.
func (p *Pages) Assets(ctx context.Context, pageURL string) (domain.PageAssets, error) {
	name := PageName(pageURL)
	uris := make([]string, len(p.combiners))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range p.combiners {
		g.Go(func() error {
			entry, target := PageTarget(c.Config(), pageURL, name)
			bundle, err := c.Write(gctx, []string{entry}, target)
			if err != nil {
				return zerr.With(err, "type", c.Type().String())
			}
			uris[i] = bundle.URI
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.PageAssets{}, err
	}

	var assets domain.PageAssets
	for i, c := range p.combiners {
		switch c.Type() {
		case domain.Script:
			assets.Script = uris[i]
		case domain.Style:
			assets.Style = uris[i]
		}
	}
	return assets, nil
}

// PageTarget returns the entry of page name and where its bundle goes:
// <root>/<dir of urlPath>/pages/<name><suffix><ext>.
func PageTarget(cfg domain.CombinerConfig, urlPath, name string) (string, domain.Target) {
	entry := path.Join(domain.PagesDirName, name+cfg.Type.Ext())

	dir := path.Dir("/" + strings.Trim(urlPath, "/"))
	if i := strings.IndexAny(dir, "?#"); i >= 0 {
		dir = dir[:i]
	}
	outDir := filepath.Join(cfg.Asset.Root, filepath.FromSlash(strings.TrimPrefix(dir, "/")), domain.PagesDirName)

	return entry, domain.Target{Name: name, Dir: outDir, Suffix: cfg.Suffix}
}

// failingPath returns the path metadata of the first failed fetch in err.
func failingPath(err error) string {
	for current := err; current != nil; current = errors.Unwrap(current) {
		z, ok := current.(*zerr.Error)
		if !ok {
			continue
		}
		if p, ok := z.Metadata()["path"]; ok {
			return fmt.Sprint(p)
		}
	}
	return ""
}
