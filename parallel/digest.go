package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// Digest is an exactly-once record of the sample indices consumed in one
// epoch. Every position must be written exactly once; a second write to the
// same position panics, which mechanically enforces at-most-once sampling.
// Sum is position-ordered, so two runs visiting the same indices in the same
// order produce the same digest regardless of worker interleaving.
type Digest struct {
	mut    sync.Mutex
	values []uint32
	seen   []uint64
	count  int
}

// NewDigest creates a digest over n positions.
func NewDigest(n int) *Digest {
	return &Digest{
		values: make([]uint32, n),
		seen:   make([]uint64, (n+63)/64),
	}
}

// MustPut records the sample index consumed at position pos. Panics if the
// position was already written or is out of range.
func (d *Digest) MustPut(pos int, index uint32) {
	d.mut.Lock()
	defer d.mut.Unlock()
	if pos < 0 || pos >= len(d.values) {
		panic("digest position out of range")
	}
	mask := uint64(1) << (pos % 64)
	if d.seen[pos/64]&mask != 0 {
		panic("duplicate digest write, sample consumed twice")
	}
	d.seen[pos/64] |= mask
	d.values[pos] = index
	d.count++
}

// Complete reports whether every position has been written.
func (d *Digest) Complete() bool {
	d.mut.Lock()
	defer d.mut.Unlock()
	return d.count == len(d.values)
}

// Sum hashes the recorded indices in position order.
func (d *Digest) Sum() (ret [32]byte) {
	d.mut.Lock()
	defer d.mut.Unlock()
	h := sha256.New()
	var buf [4]byte
	for _, v := range d.values {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	copy(ret[:], h.Sum(nil))
	return
}
