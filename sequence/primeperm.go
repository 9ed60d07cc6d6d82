package sequence

import "math/rand"

import "github.com/jbarham/primegen"

// PrimePerm is a deterministic permutation of [0, n) computed without
// materializing an index slice, for sample sets too large to shuffle in
// memory. It walks the affine bijection j -> (a*j + b) mod p over the
// smallest prime p >= n with cycle-walking to skip values >= n, which keeps
// the map a bijection on [0, n).
type PrimePerm struct {
	n    uint64
	p    uint64
	seed int64
	a, b uint64
}

// NewPrimePerm creates a streaming permutation over n samples seeded for
// epoch 0. n is capped at 2^31 so p stays below 2^32 and the affine step
// cannot overflow uint64.
func NewPrimePerm(n int, seed int64) *PrimePerm {
	if n < 0 || uint64(n) > 1<<31 {
		panic("prime permutation: sample count out of range")
	}
	pp := &PrimePerm{n: uint64(n), seed: seed}
	gen := primegen.New()
	pp.p = gen.Next()
	for pp.p < pp.n {
		pp.p = gen.Next()
	}
	pp.Reshuffle(0)
	return pp
}

// Reshuffle draws fresh affine coefficients for the given epoch. The result
// depends only on (seed, epoch).
func (pp *PrimePerm) Reshuffle(epoch int) {
	r := rand.New(rand.NewSource(pp.seed + int64(uint64(epoch)*epochStride)))
	pp.a = 1 + uint64(r.Int63())%(pp.p-1)
	pp.b = uint64(r.Int63()) % pp.p
}

func (pp *PrimePerm) step(j uint64) uint64 {
	return (pp.a*j + pp.b) % pp.p
}

// At maps a position to its shuffled sample index. Walks the affine cycle
// until it lands below n; the orbit always returns to its in-range start, so
// the walk terminates.
func (pp *PrimePerm) At(i int) int {
	j := pp.step(uint64(i))
	for j >= pp.n {
		j = pp.step(j)
	}
	return int(j)
}

// Len returns the number of samples.
func (pp *PrimePerm) Len() int {
	return int(pp.n)
}
