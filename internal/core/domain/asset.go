// Package domain contains the core types of the asset combiner.
package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// AssetType classifies a combinable resource.
type AssetType uint8

const (
	// Script is a JavaScript asset.
	Script AssetType = iota
	// Style is a stylesheet asset.
	Style
)

// AssetTypes lists every asset type in a stable order.
var AssetTypes = []AssetType{Script, Style}

const (
	// ExtJS is the script extension.
	ExtJS = ".js"
	// ExtCSS is the stylesheet extension.
	ExtCSS = ".css"
	// ExtLESS is the LESS stylesheet extension.
	ExtLESS = ".less"
	// ExtSCSS is the SCSS stylesheet extension.
	ExtSCSS = ".scss"
	// ExtSASS is the SASS stylesheet extension.
	ExtSASS = ".sass"
)

// String returns the lower-case name of the asset type.
func (t AssetType) String() string {
	switch t {
	case Script:
		return "script"
	case Style:
		return "style"
	default:
		return "unknown"
	}
}

// Ext returns the default file extension, including the dot.
func (t AssetType) Ext() string {
	if t == Style {
		return ExtCSS
	}
	return ExtJS
}

// ContentType returns the MIME type served for bundles of this type.
func (t AssetType) ContentType() string {
	if t == Style {
		return "text/css; charset=utf-8"
	}
	return "text/javascript; charset=utf-8"
}

// ParseAssetType maps a type name or extension ("script", "js", ".css", ...) to an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "script", "js", "javascript":
		return Script, nil
	case "style", "css", "stylesheet":
		return Style, nil
	}
	if t, ok := AssetTypeForExt(name); ok {
		return t, nil
	}
	return 0, zerr.With(zerr.Wrap(ErrUnknownAssetType, "invalid asset type"), "type", s)
}

// AssetTypeForExt reports the asset type of a file extension.
func AssetTypeForExt(ext string) (AssetType, bool) {
	switch {
	case IsScriptExt(ext):
		return Script, true
	case IsStyleExt(ext):
		return Style, true
	default:
		return 0, false
	}
}

// AssetTypeForPath reports the asset type of a file path by its extension.
func AssetTypeForPath(p string) (AssetType, bool) {
	return AssetTypeForExt(path.Ext(p))
}

// IsScriptExt reports whether ext names a script file.
func IsScriptExt(ext string) bool {
	return strings.EqualFold(normalizeExt(ext), ExtJS)
}

// IsStyleExt reports whether ext names a file of the stylesheet family.
func IsStyleExt(ext string) bool {
	switch strings.ToLower(normalizeExt(ext)) {
	case ExtCSS, ExtLESS, ExtSCSS, ExtSASS:
		return true
	default:
		return false
	}
}

func normalizeExt(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
