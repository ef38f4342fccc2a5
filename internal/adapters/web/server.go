package web

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"os"
	"path"
	"time"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Style}}
<link rel="stylesheet" href="{{.Style}}">
{{- end}}
</head>
<body data-page="{{.Title}}">
{{- if .Script}}
<script src="{{.Script}}"></script>
{{- end}}
{{- if .LiveReload}}
<script src="{{.LiveReload}}"></script>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Title      string
	Script     string
	Style      string
	LiveReload string
}

// LiveReload is the live reload endpoint pair mounted by the server.
type LiveReload interface {
	http.Handler
	ServeScript(w http.ResponseWriter, r *http.Request)
}

// ServerOptions configures the development server.
type ServerOptions struct {
	// Addr is the listen address.
	Addr string
	// Root is the statically served public directory.
	Root string
	// LiveReload, when set, is mounted and referenced from every page.
	LiveReload LiveReload
	// LiveReloadPath and LiveReloadScript are where LiveReload is mounted.
	LiveReloadPath   string
	LiveReloadScript string
}

// Server serves pages, combined assets and static files.
type Server struct {
	opts   ServerOptions
	logger ports.Logger
	mux    *http.ServeMux
}

// NewServer wires the routes of the development server.
func NewServer(opts ServerOptions, pages *Pages, assets *Assets, logger ports.Logger) *Server {
	s := &Server{opts: opts, logger: logger, mux: http.NewServeMux()}

	assets.Register(s.mux)
	if opts.LiveReload != nil {
		s.mux.Handle("GET "+opts.LiveReloadPath, opts.LiveReload)
		s.mux.HandleFunc("GET "+opts.LiveReloadScript, opts.LiveReload.ServeScript)
	}

	static := http.FileServerFS(os.DirFS(opts.Root))
	page := pages.Middleware(http.HandlerFunc(s.renderPage))
	s.mux.Handle("GET /", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) != "" {
			static.ServeHTTP(w, r)
			return
		}
		page.ServeHTTP(w, r)
	}))
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", s.opts.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("serving http://" + ln.Addr().String())

	select {
	case err := <-errCh:
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	return nil
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request) {
	assets, _ := AssetsFromContext(r.Context())
	data := pageData{
		Title:  PageName(r.URL.Path),
		Script: assets.Script,
		Style:  assets.Style,
	}
	if s.opts.LiveReload != nil {
		data.LiveReload = s.opts.LiveReloadScript
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error(zerr.Wrap(err, "failed to render page"))
	}
}
