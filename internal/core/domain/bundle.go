package domain

import "time"

// Edge is a requirement from one file to another.
type Edge struct {
	From CacheKey
	To   CacheKey
}

// Resolution is the ordered, deduplicated set of files needed for one bundle.
type Resolution struct {
	Type     AssetType
	// Entries are the normalized entry keys in request order.
	Entries  []CacheKey
	// Order is dependency-first: every file follows everything it requires.
	Order    []CacheKey
	// Payloads holds the payload of every key in Order.
	Payloads map[CacheKey]*Payload
	// Failed lists keys whose fetch failed, in Order.
	Failed   []CacheKey
	// Cycles lists requirement edges dropped because they closed a cycle.
	Cycles   []Edge
}

// Body returns the body of key, or "" when it is unknown or failed.
func (r *Resolution) Body(key CacheKey) string {
	p, ok := r.Payloads[key]
	if !ok || p.Failed() {
		return ""
	}
	return p.Body
}

// Target describes where and under which name a bundle is written.
type Target struct {
	// Name is the base output name; any extension or query string is dropped.
	Name   string
	// Dir overrides the output directory.
	Dir    string
	// Suffix is inserted between the base name and the extension.
	Suffix string
}

// Bundle is the result of writing one resolution.
type Bundle struct {
	Type    AssetType
	Name    string
	Path    string
	URI     string
	Digest  string
	Content []byte
	Order   []CacheKey
	Failed  []CacheKey
	Written bool
}

// BundleInfo is the persisted record of the last write of a bundle.
type BundleInfo struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Entries   []CacheKey `json:"entries"`
	Order     []CacheKey `json:"order"`
	Failed    []CacheKey `json:"failed,omitempty"`
	Digest    string     `json:"digest"`
	Path      string     `json:"path"`
	URI       string     `json:"uri"`
	Size      int        `json:"size"`
	Timestamp time.Time  `json:"timestamp"`
}

// PageAssets are the bundle URIs attached to a rendering context.
type PageAssets struct {
	Script string
	Style  string
}
