package engine

import "errors"

// Errors returned across the engine boundary. The core never panics
// out of StartSearch (spec.md §7); the only fallible call site is
// resizing the shared hash table.
var (
	errTTSizeOutOfRange  = errors.New("engine: hash size out of range (1-1048576 MB)")
	errThreadsOutOfRange = errors.New("engine: thread count out of range (1-512)")
	errSearchInProgress  = errors.New("engine: cannot resize hash while a search is running")
)
