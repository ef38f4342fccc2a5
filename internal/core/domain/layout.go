package domain

import (
	"path/filepath"
	"time"
)

const (
	// StateDirName is the name of the internal state directory.
	StateDirName = ".combiner"

	// StoreDirName is the name of the bundle info store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "combiner.yaml"

	// DefaultPublicRoot is the statically served directory when no config is present.
	DefaultPublicRoot = "public"

	// DefaultScriptRoot is the script directory within the public root.
	DefaultScriptRoot = "js"

	// DefaultStyleRoot is the style directory within the public root.
	DefaultStyleRoot = "css"

	// DefaultOutputName is the bundle base name used when none is given.
	DefaultOutputName = "concatted"

	// DefaultSuffix is appended to bundle names before the extension.
	DefaultSuffix = ".packaged"

	// PagesDirName is the directory holding per-page entry files and bundles.
	PagesDirName = "pages"

	// IndexPageName is the page identity of the root path.
	IndexPageName = "index"

	// BypassParam is the query parameter asking the asset handlers for the raw file.
	BypassParam = "skipCombiner"

	// DefaultFetchTimeout bounds a single content fetch.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultCacheSize is the number of payloads kept per process.
	DefaultCacheSize = 4096

	// DefaultServerAddr is the listen address of the development server.
	DefaultServerAddr = ":3000"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStatePath returns the default root directory for combiner metadata.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultStorePath returns the default path for the bundle info store.
// It joins .combiner and store.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, StoreDirName)
}
