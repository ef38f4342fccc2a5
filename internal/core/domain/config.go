package domain

import (
	"path/filepath"
	"time"
)

// AssetConfig locates one asset type on disk and on the web.
type AssetConfig struct {
	// Root is the absolute directory holding files of this type.
	Root      string
	// URIPrefix is the public path under which Root is served, e.g. "/js".
	URIPrefix string
}

// CombinerConfig is the per-instance configuration of a combiner.
type CombinerConfig struct {
	Type      AssetType
	Asset     AssetConfig
	Output    string
	OutputDir string
	Suffix    string
	Log       bool
	Strict    bool
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Addr       string
	Watch      bool
	LiveReload bool
}

// PublishConfig configures uploads of written bundles to S3-compatible storage.
type PublishConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// Config is the resolved project configuration.
type Config struct {
	// Dir is the project directory: where the config file was found, or the working directory.
	Dir          string
	// File is the config file the configuration was read from, empty for defaults.
	File         string
	// Root is the absolute public root directory.
	Root         string
	Script       AssetConfig
	Style        AssetConfig
	Output       string
	OutputDir    string
	Suffix       string
	Log          bool
	Strict       bool
	FetchTimeout time.Duration
	Concurrency  int
	CacheSize    int
	Server       ServerConfig
	Publish      PublishConfig
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(cwd string) *Config {
	root := filepath.Join(cwd, DefaultPublicRoot)
	return &Config{
		Dir:          cwd,
		Root:         root,
		Script:       AssetConfig{Root: filepath.Join(root, DefaultScriptRoot), URIPrefix: "/" + DefaultScriptRoot},
		Style:        AssetConfig{Root: filepath.Join(root, DefaultStyleRoot), URIPrefix: "/" + DefaultStyleRoot},
		Output:       DefaultOutputName,
		Suffix:       DefaultSuffix,
		FetchTimeout: DefaultFetchTimeout,
		CacheSize:    DefaultCacheSize,
		Server:       ServerConfig{Addr: DefaultServerAddr, Watch: true, LiveReload: true},
	}
}

// Asset returns the asset configuration of t.
func (c *Config) Asset(t AssetType) AssetConfig {
	if t == Style {
		return c.Style
	}
	return c.Script
}

// Combiner returns the per-instance configuration for asset type t.
func (c *Config) Combiner(t AssetType) CombinerConfig {
	return CombinerConfig{
		Type:      t,
		Asset:     c.Asset(t),
		Output:    c.Output,
		OutputDir: c.OutputDir,
		Suffix:    c.Suffix,
		Log:       c.Log,
		Strict:    c.Strict,
	}
}
