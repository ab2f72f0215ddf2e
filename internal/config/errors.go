package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name exactly what is wrong.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic handling while still providing
// human-readable messages.
var (
	// ErrNoStartURL is returned when no start URL was provided.
	ErrNoStartURL = errors.New("no start URL specified")

	// ErrInvalidStartURL is returned when the start URL is not an absolute
	// http or https URL.
	ErrInvalidStartURL = errors.New("invalid start URL: must be an absolute http or https URL")

	// ErrNoOutputDir is returned when no output directory was provided.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidMaxDepth is returned when the depth bound is negative.
	// Depth 0 is valid and fetches only the start page.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidConcurrency is returned when the worker pool size is less
	// than one.
	ErrInvalidConcurrency = errors.New("invalid max concurrency: must be at least 1")

	// ErrInvalidRateLimit is returned when the rate limit is negative.
	// Use 0 for no spacing between fetches.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidTimeout is returned when the per-fetch timeout is not
	// positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
