package memdex

import "memdex/internal/base"

// Options configures tree behavior.
type Options struct {
	minDegree       int
	lookupCacheSize int // 0 disables the membership cache
	freeListSize    int
	logger          Logger
}

// DefaultOptions returns the default configuration: minimum degree 3, no
// lookup cache, discard logging.
func DefaultOptions() Options {
	return Options{
		minDegree:    3,
		freeListSize: base.DefaultFreeListSize,
		logger:       DiscardLogger{},
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithMinDegree sets the minimum degree t. Every non-root node holds
// between t-1 and 2t keys; larger t means shallower, wider trees. Must be
// at least 2.
func WithMinDegree(t int) Option {
	return func(opts *Options) {
		opts.minDegree = t
	}
}

// WithLookupCache enables a membership cache of the given entry count in
// front of Contains. Useful when probes are heavily skewed toward a small
// hot set.
func WithLookupCache(entries int) Option {
	return func(opts *Options) {
		opts.lookupCacheSize = entries
	}
}

// WithFreeListSize bounds how many released nodes are kept for reuse.
func WithFreeListSize(n int) Option {
	return func(opts *Options) {
		opts.freeListSize = n
	}
}

// WithLogger routes structural events (root splits, root collapses, close)
// to l instead of discarding them.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.logger = l
	}
}
