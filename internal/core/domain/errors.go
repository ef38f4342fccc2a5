package domain

import "go.trai.ch/zerr"

var (
	// ErrAnnotationParse is reported when a @require declaration cannot be decoded as a list of strings.
	ErrAnnotationParse = zerr.New("malformed @require declaration")

	// ErrFetchFailed is returned when the content of a file cannot be fetched.
	ErrFetchFailed = zerr.New("failed to fetch file")

	// ErrCycleDetected is reported when a requirement chain refers back to a file still being resolved.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrWriteFailed is returned when a bundle cannot be written to its destination.
	ErrWriteFailed = zerr.New("failed to write bundle")

	// ErrOutputDirCreateFailed is returned when the bundle output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrPathOutsideRoot is returned when a logical path escapes its asset root.
	ErrPathOutsideRoot = zerr.New("path is outside asset root")

	// ErrEmptyPath is returned when a logical path is empty.
	ErrEmptyPath = zerr.New("empty path")

	// ErrUnknownAssetType is returned when an asset type name or extension is not recognised.
	ErrUnknownAssetType = zerr.New("unknown asset type, expected 'script' or 'style'")

	// ErrNoEntries is returned when a bundle is requested without any entry files.
	ErrNoEntries = zerr.New("no entry files specified")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a configuration value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrStoreCreateFailed is returned when the bundle info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create bundle info store directory")

	// ErrStoreReadFailed is returned when the bundle info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read bundle info")

	// ErrStoreUnmarshalFailed is returned when the bundle info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal bundle info")

	// ErrStoreMarshalFailed is returned when the bundle info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal bundle info")

	// ErrStoreWriteFailed is returned when the bundle info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write bundle info")

	// ErrBundleNotFound is returned when no bundle info exists for a name.
	ErrBundleNotFound = zerr.New("bundle not found")

	// ErrPublishFailed is returned when a bundle cannot be uploaded to object storage.
	ErrPublishFailed = zerr.New("failed to publish bundle")

	// ErrPublisherConfig is returned when the object storage publisher is misconfigured.
	ErrPublisherConfig = zerr.New("invalid publisher configuration")

	// ErrServerFailed is returned when the HTTP server stops unexpectedly.
	ErrServerFailed = zerr.New("server failed")

	// ErrFailedToCleanOutput is returned when removing cached state or outputs fails.
	ErrFailedToCleanOutput = zerr.New("failed to clean output")
)
