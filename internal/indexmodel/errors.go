package indexmodel

import "errors"

// Sentinel error kinds. Kept internal to the engine layers; the host
// bindings stringify them at the boundary rather than exposing kinds to
// the host runtime.
var (
	// ErrEmptyInput is returned by a builder invoked with zero articles.
	ErrEmptyInput = errors.New("necmp: no articles to index")
	// ErrDecodeFailure covers a short buffer, magic mismatch, version
	// above the loader's max, or an inflated-length mismatch.
	ErrDecodeFailure = errors.New("necmp: invalid index data")
	// ErrNotInitialized is returned by a query call made before a
	// successful init.
	ErrNotInitialized = errors.New("necmp: index not initialized")
)
