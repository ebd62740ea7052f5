package phonofix

import "context"

// CacheStats are best-effort counters for a PhoneticBackend's memoisation
// cache. This implementation increments them atomically (sync/atomic), one
// of the two contracts spec.md §4.1 permits; the "approximate" alternative
// (no happens-before guarantee) is not used here, so Hits+Misses always
// equals the number of ToPhonetic calls observed so far.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int64
}

// PhoneticBackend performs deterministic text -> phonetic conversion,
// amortised by memoisation. Each Engine holds its own instance: NewEngine
// calls the registered capability's NewBackend every time, so two Engines
// for the same language share neither a backend nor its cache. Initialisation
// may be expensive (hundreds of ms to seconds) because it may wrap an
// external grapheme-to-phonetic engine.
type PhoneticBackend interface {
	// ToPhonetic converts text (which may mix scripts) to this language's
	// phonetic key. Whitespace is normalised; stress/tone markers are kept
	// or dropped per the backend's own configuration.
	ToPhonetic(ctx context.Context, text string) (PhoneticKey, error)

	// IsInitialized reports whether the backend has completed its (possibly
	// expensive, one-time) external initialisation.
	IsInitialized() bool

	// Init performs that one-time initialisation. Init is idempotent: a
	// backend that is already initialized returns nil immediately.
	Init(ctx context.Context) error

	// CacheStats returns a snapshot of the memoisation cache's counters.
	CacheStats() CacheStats

	// Close releases any resources (subprocess handles, connections)
	// acquired by Init. Safe to call on an uninitialized backend.
	Close() error
}
