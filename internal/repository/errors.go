package repository

import "errors"

// Error taxonomy surfaced by the repository. Everything else coming out of the
// store propagates untranslated; nothing is retried internally.
var (
	// ErrNotFound: zero rows matched a required lookup.
	ErrNotFound = errors.New("item not found")
	// ErrMultipleResults: criteria that should identify one row matched more
	// than one. Treated as a server-side integrity defect.
	ErrMultipleResults = errors.New("multiple results found")
	// ErrConflict: a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict with existing resource")
	// ErrStoreUnavailable: connectivity or pool-exhaustion failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)
