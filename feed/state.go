package feed

import (
	"fmt"
	"strings"
)

// State is the lifecycle state of a Feed.
type State int

const (
	// StateEmpty means nothing has been loaded yet.
	StateEmpty State = iota
	// StateLoading means an initial load is in flight.
	StateLoading
	// StateReady means records are loaded and more are available.
	StateReady
	// StateLoadingMore means a next-page request is in flight.
	StateLoadingMore
	// StateExhausted means the server reported no more records.
	StateExhausted
	// StateErrored means the last operation failed; Retry re-runs it.
	StateErrored
	// StateClosed means Close was called.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading_more"
	case StateExhausted:
		return "exhausted"
	case StateErrored:
		return "errored"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// FallbackPolicy decides what an initial load failure leaves in the feed.
type FallbackPolicy int

const (
	// FallbackNone leaves the feed empty on initial load failure.
	FallbackNone FallbackPolicy = iota
	// FallbackSample fills the feed with sample records on initial load
	// failure. The error is still recorded.
	FallbackSample
)

// String returns the policy name as used in configuration.
func (p FallbackPolicy) String() string {
	if p == FallbackSample {
		return "sample"
	}
	return "none"
}

// ParseFallback parses "none", "sample" or "" (none).
func ParseFallback(s string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FallbackNone, nil
	case "sample":
		return FallbackSample, nil
	default:
		return FallbackNone, fmt.Errorf("feed: unknown fallback policy %q", s)
	}
}

// op identifies the fetch operation that is in flight or last failed.
type op int

const (
	opNone op = iota
	opInitial
	opMore
)

func (o op) String() string {
	switch o {
	case opInitial:
		return "initial_load"
	case opMore:
		return "load_more"
	default:
		return "none"
	}
}
