package memdex

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests the in-order key stream with xxhash. Two trees
// holding the same multiset of keys have equal fingerprints regardless of
// insertion order, which makes it a cheap "content unchanged" witness for
// tests and callers diffing snapshots.
func (tr *Tree) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [4]byte
	for k := range tr.All() {
		binary.BigEndian.PutUint32(buf[:], k)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
