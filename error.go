package memdex

import "errors"

var (
	// ErrKeyOutOfRange is returned for keys outside [0, 2^31-1).
	ErrKeyOutOfRange = errors.New("key outside [0, 2^31-1)")
	// ErrTreeClosed is returned by every operation after Close.
	ErrTreeClosed = errors.New("tree is closed")

	ErrInvalidMinDegree = errors.New("minimum degree must be at least 2")
	ErrInvalidCacheSize = errors.New("lookup cache size must be positive")
)
