package web_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/combiner/internal/adapters/cache"
	"go.trai.ch/combiner/internal/adapters/source"
	"go.trai.ch/combiner/internal/adapters/telemetry"
	"go.trai.ch/combiner/internal/adapters/web"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports/mocks"
	"go.trai.ch/combiner/internal/engine/combiner"
	"go.trai.ch/combiner/internal/engine/resolver"
	"go.trai.ch/combiner/internal/engine/scanner"
	"go.uber.org/mock/gomock"
)

type site struct {
	cfg    *domain.Config
	logger *mocks.MockLogger
	script *combiner.Combiner
	style  *combiner.Combiner
}

func newSite(t *testing.T, strict bool) *site {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	cfg := domain.DefaultConfig(t.TempDir())
	cfg.Strict = strict

	c, err := cache.NewMemory(64)
	require.NoError(t, err)
	src := source.NewFSFromConfig(cfg)
	tracer := telemetry.NewNoOpTracer()
	res := resolver.New(src, c, scanner.New(logger), tracer, logger, resolver.Options{})

	return &site{
		cfg:    cfg,
		logger: logger,
		script: combiner.New(cfg.Combiner(domain.Script), res, tracer, logger),
		style:  combiner.New(cfg.Combiner(domain.Style), res, tracer, logger),
	}
}

func (s *site) write(t *testing.T, rel, content string) {
	t.Helper()
	p := filepath.Join(s.cfg.Root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), domain.DirPerm))
	require.NoError(t, os.WriteFile(p, []byte(content), domain.FilePerm))
}

func (s *site) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.cfg.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func (s *site) pages() *web.Pages {
	return web.NewPages(s.logger, s.script, s.style)
}

func (s *site) assets() *web.Assets {
	return web.NewAssets(s.logger, s.script, s.style)
}

// captureAssets is a terminal handler recording the attached page assets.
func captureAssets(got *domain.PageAssets, ok *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *ok = web.AssetsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestPageName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/":                "index",
		"":                 "index",
		"/about":           "about",
		"/blog/post.html":  "post",
		"/blog/post/":      "post",
		"/search?q=x":      "search",
		"/docs/intro.md#a": "intro",
	}
	for in, want := range tests {
		assert.Equal(t, want, web.PageName(in), "PageName(%q)", in)
	}
}

func TestPageTarget(t *testing.T) {
	t.Parallel()

	cfg := domain.CombinerConfig{
		Type:   domain.Style,
		Asset:  domain.AssetConfig{Root: "/srv/public/css", URIPrefix: "/css"},
		Suffix: ".packaged",
	}

	entry, target := web.PageTarget(cfg, "/blog/post", "post")
	assert.Equal(t, "pages/post.css", entry)
	assert.Equal(t, domain.Target{Name: "post", Dir: "/srv/public/css/blog/pages", Suffix: ".packaged"}, target)

	_, target = web.PageTarget(cfg, "/", "index")
	assert.Equal(t, "/srv/public/css/pages", target.Dir)
}

func TestPages_Middleware(t *testing.T) {
	t.Parallel()

	s := newSite(t, false)
	s.write(t, "js/lib/util.js", "var util = {};\n")
	s.write(t, "js/pages/about.js", "// @require [\"../lib/util.js\"]\nvar about = util;\n")
	s.write(t, "css/base.css", "body { margin: 0; }\n")
	s.write(t, "css/pages/about.css", "/* @require [\"/base.css\"] */\nh1 { color: red; }\n")

	var got domain.PageAssets
	var ok bool
	rec := httptest.NewRecorder()
	s.pages().Middleware(captureAssets(&got, &ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/company/about", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, ok)
	assert.Equal(t, domain.PageAssets{
		Script: "/js/company/pages/about.packaged.js",
		Style:  "/css/company/pages/about.packaged.css",
	}, got)
	assert.Equal(t, "var util = {};\n// @require [\"../lib/util.js\"]\nvar about = util;\n",
		s.read(t, "js/company/pages/about.packaged.js"))
	assert.Equal(t, "body { margin: 0; }\n/* @require [\"/base.css\"] */\nh1 { color: red; }\n",
		s.read(t, "css/company/pages/about.packaged.css"))
}

func TestPages_Named(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		alias      string
		url        string
		files      map[string]string
		wantScript string
		wantStyle  string
	}{
		{
			name:       "root page",
			alias:      "/",
			url:        "/home",
			files:      map[string]string{"js/pages/index.js": "var home;\n", "css/pages/index.css": "body {}\n"},
			wantScript: "/js/pages/index.packaged.js",
			wantStyle:  "/css/pages/index.packaged.css",
		},
		{
			name:       "page in another directory",
			alias:      "/about",
			url:        "/users/42",
			files:      map[string]string{"js/pages/about.js": "var about;\n", "css/pages/about.css": "h1 {}\n"},
			wantScript: "/js/pages/about.packaged.js",
			wantStyle:  "/css/pages/about.packaged.css",
		},
		{
			name:       "nested alias",
			alias:      "/blog/post",
			url:        "/news/today",
			files:      map[string]string{"js/pages/post.js": "var post;\n", "css/pages/post.css": "p {}\n"},
			wantScript: "/js/blog/pages/post.packaged.js",
			wantStyle:  "/css/blog/pages/post.packaged.css",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSite(t, false)
			for p, body := range tt.files {
				s.write(t, p, body)
			}

			var got domain.PageAssets
			var ok bool
			rec := httptest.NewRecorder()
			s.pages().Named(tt.alias, captureAssets(&got, &ok)).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.wantScript, got.Script)
			assert.Equal(t, tt.wantStyle, got.Style)
			assert.NotEmpty(t, s.read(t, strings.TrimPrefix(tt.wantScript, "/")))
		})
	}
}

func TestPages_LenientFailOpen(t *testing.T) {
	t.Parallel()

	s := newSite(t, false)
	s.write(t, "js/pages/index.js", "// @require [\"missing.js\"]\nvar home;\n")

	var got domain.PageAssets
	var ok bool
	rec := httptest.NewRecorder()
	s.pages().Middleware(captureAssets(&got, &ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNoContent, rec.Code, "the page renders with partial bundles")
	assert.Equal(t, "/js/pages/index.packaged.js", got.Script)
	assert.Equal(t, "/css/pages/index.packaged.css", got.Style)
	assert.Equal(t, "// @require [\"missing.js\"]\nvar home;\n", s.read(t, "js/pages/index.packaged.js"))
	assert.Empty(t, s.read(t, "css/pages/index.packaged.css"))
}

func TestPages_StrictFailClosed(t *testing.T) {
	t.Parallel()

	s := newSite(t, true)
	s.write(t, "js/pages/index.js", "// @require [\"missing.js\"]\nvar home;\n")
	s.write(t, "css/pages/index.css", "body {}\n")

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
	rec := httptest.NewRecorder()
	s.pages().Middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "pages/missing.js")
}

func TestAssets_Handler(t *testing.T) {
	t.Parallel()

	s := newSite(t, false)
	s.write(t, "js/lib/util.js", "var util = {};\n")
	s.write(t, "js/app.js", "// @require [\"lib/util.js\"]\nvar app = util;\n")
	s.write(t, "js/app.packaged.js", "stale output\n")

	mux := http.NewServeMux()
	s.assets().Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Run("combined", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/js/app.js")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/javascript; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.NotEmpty(t, resp.Header.Get("ETag"))
		assert.Equal(t, "var util = {};\n// @require [\"lib/util.js\"]\nvar app = util;\n", string(body))

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/js/app.js", nil)
		require.NoError(t, err)
		req.Header.Set("If-None-Match", resp.Header.Get("ETag"))
		cached, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = cached.Body.Close()
		assert.Equal(t, http.StatusNotModified, cached.StatusCode)
	})

	t.Run("bypass", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/js/app.js?" + domain.BypassParam + "=true")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "// @require [\"lib/util.js\"]\nvar app = util;\n", string(body))
	})

	t.Run("generated bundle passthrough", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/js/app.packaged.js")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "stale output\n", string(body))
	})

	t.Run("missing entry", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/css/nope.css")
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer(t *testing.T) {
	t.Parallel()

	s := newSite(t, false)
	s.write(t, "js/pages/index.js", "var home;\n")
	s.write(t, "css/pages/index.css", "body {}\n")
	s.write(t, "robots.txt", "User-agent: *\n")

	lr := &fakeLiveReload{}
	server := web.NewServer(web.ServerOptions{
		Root:             s.cfg.Root,
		LiveReload:       lr,
		LiveReloadPath:   "/__livereload",
		LiveReloadScript: "/__livereload.js",
	}, s.pages(), s.assets(), s.logger)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	body := get(t, srv.URL+"/")
	assert.Contains(t, body, `<title>index</title>`)
	assert.Contains(t, body, `<link rel="stylesheet" href="/css/pages/index.packaged.css">`)
	assert.Contains(t, body, `<script src="/js/pages/index.packaged.js"></script>`)
	assert.Contains(t, body, `<script src="/__livereload.js"></script>`)

	assert.Equal(t, "User-agent: *\n", get(t, srv.URL+"/robots.txt"))
	assert.Equal(t, "var home;\n", get(t, srv.URL+"/js/pages/index.packaged.js"))
	assert.Equal(t, "lr", get(t, srv.URL+"/__livereload.js"))
}

func TestServer_Serve_StopsOnCancel(t *testing.T) {
	t.Parallel()

	s := newSite(t, false)
	server := web.NewServer(web.ServerOptions{Root: s.cfg.Root}, s.pages(), s.assets(), s.logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/missing.txt")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

type fakeLiveReload struct{}

func (fakeLiveReload) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusSwitchingProtocols)
}

func (fakeLiveReload) ServeScript(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "lr")
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode, url)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
