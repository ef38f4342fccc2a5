// Package app implements the application layer for combiner.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/combiner/internal/adapters/livereload" //nolint:depguard // Wired in app layer
	"go.trai.ch/combiner/internal/adapters/publish"    //nolint:depguard // Wired in app layer
	"go.trai.ch/combiner/internal/adapters/source"     //nolint:depguard // Wired in app layer
	"go.trai.ch/combiner/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/combiner/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/combiner/internal/adapters/web"        //nolint:depguard // Wired in app layer
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/combiner/internal/engine/combiner"
	"go.trai.ch/combiner/internal/engine/resolver"
	"go.trai.ch/combiner/internal/engine/scanner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// slowSpanThreshold is the duration above which finished spans are logged.
const slowSpanThreshold = 500 * time.Millisecond

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	cache        ports.PayloadCache
	store        ports.BundleInfoStore
	tracer       ports.Tracer
	watcher      ports.Watcher
	out          io.Writer
	cwd          string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	cache ports.PayloadCache,
	store ports.BundleInfoStore,
	tracer ports.Tracer,
	w ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		cache:        cache,
		store:        store,
		tracer:       tracer,
		watcher:      w,
		out:          os.Stdout,
	}
}

// WithOutput sets where command results are printed.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithWorkDir sets the directory the configuration is searched from.
// It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.cwd = dir
	return a
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// BundleOptions configures the Bundle method.
type BundleOptions struct {
	// Type is the asset type name or extension.
	Type    string
	Entries []string
	// Name, Dir and Suffix override the configured output when set.
	Name   string
	Dir    string
	Suffix string
	Strict bool
}

// Bundle writes one bundle of the given entries and prints its path.
func (a *App) Bundle(ctx context.Context, opts BundleOptions) error {
	t, err := domain.ParseAssetType(opts.Type)
	if err != nil {
		return err
	}
	if len(opts.Entries) == 0 {
		return domain.ErrNoEntries
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	cfg.Strict = cfg.Strict || opts.Strict

	shutdown := a.startTracing()
	defer shutdown(ctx)

	combiners, _, err := a.combiners(cfg)
	if err != nil {
		return err
	}

	target := domain.Target{Name: opts.Name, Dir: opts.Dir, Suffix: opts.Suffix}
	if target.Dir != "" && !filepath.IsAbs(target.Dir) {
		target.Dir = filepath.Join(a.workDir(), target.Dir)
	}
	bundle, err := combiners[t].Write(ctx, opts.Entries, target)
	if err != nil {
		return zerr.Wrap(err, "failed to bundle")
	}

	_, _ = fmt.Fprintln(a.out, bundle.Path)
	return nil
}

// PageOptions configures the Page method.
type PageOptions struct {
	// URL is the request path of the page.
	URL string
	// Alias is the URL path of the page whose bundles are used instead of URL's.
	Alias string
}

// Page writes the script and style bundles of a page and prints their URIs.
func (a *App) Page(ctx context.Context, opts PageOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	shutdown := a.startTracing()
	defer shutdown(ctx)

	combiners, _, err := a.combiners(cfg)
	if err != nil {
		return err
	}

	pageURL := opts.Alias
	if pageURL == "" {
		pageURL = opts.URL
	}
	pages := web.NewPages(a.logger, combiners[domain.Script], combiners[domain.Style])
	assets, err := pages.Assets(ctx, pageURL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to bundle page"), "page", pageURL)
	}

	_, _ = fmt.Fprintf(a.out, "script: %s\nstyle: %s\n", assets.Script, assets.Style)
	return nil
}

// ServeOptions configures the Serve method.
type ServeOptions struct {
	// Addr overrides the configured listen address.
	Addr         string
	NoWatch      bool
	NoLiveReload bool
	// Listener, when set, is used instead of listening on Addr.
	Listener net.Listener
}

// Serve runs the development server until ctx is done.
// File changes invalidate cached payloads and, with live reload, refresh connected pages.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	watch := cfg.Server.Watch && !opts.NoWatch
	reload := watch && cfg.Server.LiveReload && !opts.NoLiveReload

	shutdown := a.startTracing()
	defer shutdown(ctx)

	combiners, src, err := a.combiners(cfg)
	if err != nil {
		return err
	}
	script, style := combiners[domain.Script], combiners[domain.Style]

	serverOpts := web.ServerOptions{Addr: cfg.Server.Addr, Root: cfg.Root}
	var hub *livereload.Hub
	if reload {
		hub = livereload.NewHub(a.logger)
		defer hub.Close()
		serverOpts.LiveReload = hub
		serverOpts.LiveReloadPath = livereload.Path
		serverOpts.LiveReloadScript = livereload.ScriptPath
	}
	server := web.NewServer(serverOpts,
		web.NewPages(a.logger, script, style),
		web.NewAssets(a.logger, script, style),
		a.logger,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if opts.Listener != nil {
			return server.Serve(ctx, opts.Listener)
		}
		return server.Run(ctx)
	})

	if watch {
		inv := watcher.NewInvalidator(a.cache, src, a.logger, watcher.IgnoreSuffix(cfg.Suffix))
		if hub != nil {
			inv.Subscribe(func(watcher.Change) { hub.Reload() })
		}
		g.Go(func() error {
			return inv.Run(ctx, a.watcher, cfg.Root, watcher.DefaultDebounceWindow)
		})
	}

	return g.Wait()
}

// Inspect prints the recorded information of the bundle served at uri.
func (a *App) Inspect(_ context.Context, uri string) error {
	info, err := a.store.Get(uri)
	if err != nil {
		return zerr.With(err, "uri", uri)
	}
	if info == nil {
		return zerr.With(zerr.Wrap(domain.ErrBundleNotFound, "nothing recorded"), "uri", uri)
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Store removes the bundle info store.
	Store bool
	// Bundles removes every generated bundle under the public root.
	Bundles bool
}

// Clean removes recorded state and generated bundles based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	if options.Store {
		a.logger.Info("removing bundle info store...")
		if err := os.RemoveAll(filepath.Join(a.workDir(), domain.DefaultStatePath())); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()))
		} else {
			a.logger.Info("removed bundle info store")
		}
	}

	if options.Bundles {
		cfg, err := a.loadConfig()
		if err != nil {
			return errors.Join(errs, err)
		}
		removed, err := removeBundles(cfg.Root, cfg.Suffix)
		if err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()), "root", cfg.Root))
		}
		a.logger.Info(fmt.Sprintf("removed %d bundles", removed))
	}

	a.cache.Purge()
	return errs
}

// removeBundles deletes the asset files under root whose name carries suffix.
func removeBundles(root, suffix string) (int, error) {
	if suffix == "" {
		return 0, nil
	}
	removed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == domain.StateDirName {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := domain.AssetTypeForPath(path); !ok || !strings.Contains(d.Name(), suffix) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

func (a *App) workDir() string {
	if a.cwd != "" {
		return a.cwd
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func (a *App) loadConfig() (*domain.Config, error) {
	cfg, err := a.configLoader.Load(a.workDir())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// combiners builds one combiner per asset type over a shared resolver.
func (a *App) combiners(cfg *domain.Config) (map[domain.AssetType]*combiner.Combiner, *source.FS, error) {
	src := source.NewFSFromConfig(cfg)
	res := resolver.New(src, a.cache, scanner.New(a.logger), a.tracer, a.logger, resolver.Options{
		Concurrency:  cfg.Concurrency,
		FetchTimeout: cfg.FetchTimeout,
		Log:          cfg.Log,
	})

	publisher, err := publish.New(cfg.Publish)
	if err != nil {
		return nil, nil, err
	}
	opts := []combiner.Option{combiner.WithStore(a.store), combiner.WithPublisher(publisher)}

	return map[domain.AssetType]*combiner.Combiner{
		domain.Script: combiner.New(cfg.Combiner(domain.Script), res, a.tracer, a.logger, opts...),
		domain.Style:  combiner.New(cfg.Combiner(domain.Style), res, a.tracer, a.logger, opts...),
	}, src, nil
}

// startTracing installs the SDK provider reporting slow and failed spans to the logger.
func (a *App) startTracing() func(context.Context) {
	tp := telemetry.Setup(telemetry.NewBridge(a.logger, slowSpanThreshold))
	return func(ctx context.Context) {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}
}
