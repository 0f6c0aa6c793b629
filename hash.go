package atlaspack

import "encoding/binary"

// fnvOffset and fnvPrime are the standard FNV-1a 64-bit constants.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// Hash computes a 64-bit fingerprint of the allocator's current
// occupancy, usable as a regression-test checksum. It visits shelves in
// stored (bottom-to-top) order and blocks within each shelf
// left-to-right, folding in, per block: in_use (one byte), offset,
// shelf.y, size.Width, and size.Height, each as a little-endian
// uint64 — in that exact order. Block ids, names, and shelf heights
// are not hashed: the fingerprint characterizes only the geometric
// state visible to a consumer such as the svg package.
//
// Two allocators that have been driven through identical sequences of
// Allocate/Free calls always produce the same Hash for the same seed.
func (a *Allocator) Hash(seed uint64) uint64 {
	h := fnvOffset ^ seed

	var buf [8]byte
	mix := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		for _, b := range buf {
			h ^= uint64(b)
			h *= fnvPrime
		}
	}

	for i := range a.shelves {
		sh := &a.shelves[i]
		for slot := sh.head; slot != noLink; slot = a.blocks[slot].next {
			b := &a.blocks[slot]

			inUse := uint64(0)
			if b.inUse {
				inUse = 1
			}
			h ^= inUse
			h *= fnvPrime

			mix(uint64(b.offset))
			mix(uint64(sh.y))
			mix(uint64(b.size.Width))
			mix(uint64(b.size.Height))
		}
	}

	return h
}
