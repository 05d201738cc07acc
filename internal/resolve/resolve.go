// Package resolve classifies the outcome of consulting a data source in a
// fallback chain. A source that errors is not the same as a source with no
// rows: callers degrade identically (empty list, 404) but the distinction is
// preserved for logging and tests instead of being swallowed.
package resolve

// Status is the outcome of consulting a single source.
type Status int

const (
	// Found means the source answered with data.
	Found Status = iota
	// Empty means the source was reachable but had no matching data.
	Empty
	// Unavailable means the source could not be consulted. For optional
	// fallback sources this degrades to Empty at the API boundary.
	Unavailable
)

// String returns the status name for log attributes.
func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Empty:
		return "empty"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result pairs a source outcome with its value. Value is only meaningful
// when Status == Found; Err is only set when Status == Unavailable.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// Hit returns a Found result.
func Hit[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: Found}
}

// Miss returns an Empty result.
func Miss[T any]() Result[T] {
	return Result[T]{Status: Empty}
}

// Failed returns an Unavailable result carrying the source error.
func Failed[T any](err error) Result[T] {
	return Result[T]{Status: Unavailable, Err: err}
}

// Found reports whether the source answered with data.
func (r Result[T]) Found() bool {
	return r.Status == Found
}
