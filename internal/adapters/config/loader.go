// Package config provides the configuration loader for combiner.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the config file version understood by this loader.
const SupportedVersion = "1"

// EnvFileName is the dotenv file read from the project directory.
const EnvFileName = ".env"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger    ports.Logger
	fs        FileSystem
	lookupEnv func(string) (string, bool)
}

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem replaces the filesystem used to find and read configuration.
func WithFileSystem(fsys FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithLookupEnv replaces the process environment lookup.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(l *Loader) {
		l.lookupEnv = lookup
	}
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		Logger:    logger,
		fs:        NewOSFS(),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load finds combiner.yaml from cwd upwards and returns the resolved configuration.
// Without a config file the defaults are rooted at cwd. Values from the .env file of
// the project directory and from the process environment override the file.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cwd = filepath.Clean(cwd)

	var file Configfile
	dir := cwd
	configPath, found := l.findConfiguration(cwd)
	if found {
		if err := readAndUnmarshalYAML(l.fs, configPath, &file); err != nil {
			return nil, zerr.With(err, "file", configPath)
		}
		dir = filepath.Dir(configPath)
		if file.Version != "" && file.Version != SupportedVersion {
			l.Logger.Warn(fmt.Sprintf("%s declares unsupported version %q, reading it as version %s",
				configPath, file.Version, SupportedVersion))
		}
	}

	env, err := l.environment(dir)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(&file, env); err != nil {
		return nil, err
	}

	cfg, err := buildConfig(dir, &file)
	if err != nil {
		if found {
			return nil, zerr.With(err, "file", configPath)
		}
		return nil, err
	}
	if found {
		cfg.File = configPath
	}
	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

// environment merges the project .env file with the process environment.
// Process variables win over the file.
func (l *Loader) environment(dir string) (func(string) (string, bool), error) {
	envPath := filepath.Join(dir, EnvFileName)
	fileEnv := map[string]string{}

	data, err := l.fs.ReadFile(envPath)
	switch {
	case err == nil:
		fileEnv, err = godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", envPath)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", envPath)
	}

	return func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

// applyEnv overrides file values with COMBINER_* variables.
func applyEnv(file *Configfile, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"COMBINER_ROOT":          &file.Root,
		"COMBINER_OUTPUT_NAME":   &file.Output.Name,
		"COMBINER_OUTPUT_DIR":    &file.Output.Dir,
		"COMBINER_FETCH_TIMEOUT": &file.FetchTimeout,
		"COMBINER_ADDR":          &file.Server.Addr,
		"COMBINER_S3_ENDPOINT":   &file.Publish.Endpoint,
		"COMBINER_S3_REGION":     &file.Publish.Region,
		"COMBINER_S3_ACCESS_KEY": &file.Publish.AccessKey,
		"COMBINER_S3_SECRET_KEY": &file.Publish.SecretKey,
		"COMBINER_S3_BUCKET":     &file.Publish.Bucket,
		"COMBINER_S3_PREFIX":     &file.Publish.Prefix,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	if v, ok := lookup("COMBINER_SUFFIX"); ok {
		file.Output.Suffix = &v
	}

	bools := map[string]*bool{
		"COMBINER_LOG":             &file.Log,
		"COMBINER_STRICT":          &file.Strict,
		"COMBINER_PUBLISH_ENABLED": &file.Publish.Enabled,
		"COMBINER_S3_USE_SSL":      &file.Publish.UseSSL,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "expected a boolean"), key, v)
		}
		*dst = b
	}

	ints := map[string]*int{
		"COMBINER_CONCURRENCY": &file.Concurrency,
		"COMBINER_CACHE_SIZE":  &file.Cache.Size,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "expected an integer"), key, v)
		}
		*dst = n
	}
	return nil
}

func buildConfig(dir string, file *Configfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig(dir)
	cfg.Root = resolvePath(dir, file.Root, domain.DefaultPublicRoot)

	var err error
	if cfg.Script, err = resolveAsset(cfg.Root, file.Script, domain.DefaultScriptRoot); err != nil {
		return nil, zerr.With(err, "asset", domain.Script.String())
	}
	if cfg.Style, err = resolveAsset(cfg.Root, file.Style, domain.DefaultStyleRoot); err != nil {
		return nil, zerr.With(err, "asset", domain.Style.String())
	}

	if cfg.Script.URIPrefix == "/" || cfg.Style.URIPrefix == "/" || cfg.Script.URIPrefix == cfg.Style.URIPrefix {
		return nil, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrConfigInvalid, "script and style need distinct uri prefixes below /"),
			"script.uri", cfg.Script.URIPrefix), "style.uri", cfg.Style.URIPrefix)
	}

	if file.Output.Name != "" {
		cfg.Output = file.Output.Name
	}
	if file.Output.Dir != "" {
		cfg.OutputDir = resolvePath(dir, file.Output.Dir, "")
	}
	if file.Output.Suffix != nil {
		cfg.Suffix = *file.Output.Suffix
	}
	cfg.Log = file.Log
	cfg.Strict = file.Strict

	if file.FetchTimeout != "" {
		d, parseErr := time.ParseDuration(file.FetchTimeout)
		if parseErr != nil || d <= 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "fetchTimeout must be a positive duration"),
				"fetchTimeout", file.FetchTimeout)
		}
		cfg.FetchTimeout = d
	}
	if file.Concurrency < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "concurrency must not be negative"),
			"concurrency", file.Concurrency)
	}
	cfg.Concurrency = file.Concurrency
	if file.Cache.Size < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "cache size must not be negative"),
			"cache.size", file.Cache.Size)
	}
	if file.Cache.Size > 0 {
		cfg.CacheSize = file.Cache.Size
	}

	if file.Server.Addr != "" {
		cfg.Server.Addr = file.Server.Addr
	}
	if file.Server.Watch != nil {
		cfg.Server.Watch = *file.Server.Watch
	}
	if file.Server.LiveReload != nil {
		cfg.Server.LiveReload = *file.Server.LiveReload
	}

	cfg.Publish = domain.PublishConfig{
		Enabled:   file.Publish.Enabled,
		Endpoint:  file.Publish.Endpoint,
		Region:    file.Publish.Region,
		AccessKey: file.Publish.AccessKey,
		SecretKey: file.Publish.SecretKey,
		Bucket:    file.Publish.Bucket,
		Prefix:    strings.Trim(file.Publish.Prefix, "/"),
		UseSSL:    file.Publish.UseSSL,
	}
	if cfg.Publish.Enabled && (cfg.Publish.Endpoint == "" || cfg.Publish.Bucket == "") {
		return nil, zerr.Wrap(domain.ErrConfigInvalid, "publish requires an endpoint and a bucket")
	}
	return cfg, nil
}

// resolveAsset resolves an asset directory under root and derives its URI prefix.
func resolveAsset(root string, dto AssetDTO, fallback string) (domain.AssetConfig, error) {
	assetRoot := resolvePath(root, dto.Root, fallback)

	uri := dto.URI
	if uri == "" {
		rel, err := filepath.Rel(root, assetRoot)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return domain.AssetConfig{}, zerr.With(
				zerr.Wrap(domain.ErrConfigInvalid, "an asset root outside the public root needs an explicit uri"),
				"root", assetRoot)
		}
		if rel != "." {
			uri = filepath.ToSlash(rel)
		}
	}
	uri = "/" + strings.Trim(uri, "/")
	if uri != "/" {
		uri = strings.TrimSuffix(uri, "/")
	}

	return domain.AssetConfig{Root: assetRoot, URIPrefix: uri}, nil
}

// resolvePath resolves configured against base, using fallback when it is empty.
func resolvePath(base, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(base, configured))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](fsys FileSystem, configPath string, target *T) error {
	configFile, err := fsys.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
