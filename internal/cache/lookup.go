// Package cache provides a read-through memo of membership probes, so hot
// Contains calls skip the tree descent entirely.
package cache

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// Lookup caches membership facts keyed by the probed key. Facts stay
// precise across mutations without flushing: inserting k makes "k present"
// true and changes nothing for other keys, so the tree records the new fact
// for k and leaves the rest alone. Deletes only evict (see Forget), because
// with duplicates allowed a successful delete does not prove absence.
//
// Not safe for concurrent use, matching the tree it fronts.
type Lookup struct {
	lru *freelru.LRU[uint32, bool]

	hits   uint64
	misses uint64
}

func hashKey(k uint32) uint32 {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], k)
	return uint32(xxhash.Sum64(b[:]))
}

// NewLookup returns a lookup cache holding up to entries facts.
func NewLookup(entries int) (*Lookup, error) {
	lru, err := freelru.New[uint32, bool](uint32(entries), hashKey)
	if err != nil {
		return nil, err
	}
	return &Lookup{lru: lru}, nil
}

// Get returns the cached membership fact for key, if one is held.
func (l *Lookup) Get(key uint32) (present, ok bool) {
	present, ok = l.lru.Get(key)
	if ok {
		l.hits++
	} else {
		l.misses++
	}
	return present, ok
}

// Note records a definite membership fact for key.
func (l *Lookup) Note(key uint32, present bool) {
	l.lru.Add(key, present)
}

// Forget drops whatever fact is held for key.
func (l *Lookup) Forget(key uint32) {
	l.lru.Remove(key)
}

// Purge drops every cached fact.
func (l *Lookup) Purge() {
	l.lru.Purge()
}

// Len reports how many facts are currently cached.
func (l *Lookup) Len() int {
	return l.lru.Len()
}

// Hits reports how many Get calls were answered from the cache.
func (l *Lookup) Hits() uint64 { return l.hits }

// Misses reports how many Get calls fell through to the tree.
func (l *Lookup) Misses() uint64 { return l.misses }
