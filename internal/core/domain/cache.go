package domain

import "time"

// Payload is the fetched and scanned state of one file.
type Payload struct {
	// Key identifies the file within its asset type.
	Key       CacheKey
	// Body is the raw file text. It is empty when Err is set.
	Body      string
	// Err records a fetch failure. Failed payloads are never cached.
	Err       error
	// Requires lists the requirement paths exactly as declared, in declaration order.
	Requires  []string
	// Deps lists the normalized keys of Requires that could be resolved.
	Deps      []CacheKey
	// Digest is the xxhash of Body.
	Digest    uint64
	// FetchedAt is when the body was read from the content source.
	FetchedAt time.Time
}

// Failed reports whether the payload carries a fetch error.
func (p *Payload) Failed() bool {
	return p != nil && p.Err != nil
}
