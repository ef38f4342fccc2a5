package web

import (
	"errors"
	"net/http"
	"os"
	"path"
	"slices"
	"strings"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
)

// Assets serves the combined content of single entry files under each type's URI prefix.
type Assets struct {
	combiners []Combiner
	logger    ports.Logger
}

// NewAssets creates asset handlers for the given combiners.
func NewAssets(logger ports.Logger, combiners ...Combiner) *Assets {
	return &Assets{combiners: combiners, logger: logger}
}

// Register mounts "GET <prefix>/{path...}" for every combiner on mux.
func (a *Assets) Register(mux *http.ServeMux) {
	for _, c := range a.combiners {
		prefix := strings.TrimSuffix(c.Config().Asset.URIPrefix, "/")
		mux.Handle("GET "+prefix+"/{path...}", a.Handler(c))
	}
}

// Handler serves the bundle of the requested file. The raw file is served instead
// when the bypass parameter is set or the file is itself a generated bundle.
func (a *Assets) Handler(c Combiner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := c.Config()
		file := r.PathValue("path")

		if r.URL.Query().Get(domain.BypassParam) == "true" || isBundle(file, cfg.Suffix) {
			http.ServeFileFS(w, r, os.DirFS(cfg.Asset.Root), file)
			return
		}

		key, err := domain.NewCacheKey(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bundle, err := c.Bundle(r.Context(), []string{key.String()}, domain.Target{Name: key.String()})
		switch {
		case errors.Is(err, domain.ErrFetchFailed):
			a.logger.Error(err)
			http.Error(w, "failed to bundle "+failingPath(err), http.StatusBadGateway)
			return
		case err != nil:
			a.logger.Error(zerr.With(err, "path", file))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		case slices.Contains(bundle.Failed, key):
			http.NotFound(w, r)
			return
		}

		etag := `"` + bundle.Digest + `"`
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", c.Type().ContentType())
		_, _ = w.Write(bundle.Content)
	})
}

// isBundle reports whether file names an output of the combiner.
func isBundle(file, suffix string) bool {
	return suffix != "" && strings.Contains(path.Base(file), suffix)
}
