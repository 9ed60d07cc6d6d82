package sequence

import "math/rand"

// mixes epoch into the base seed so consecutive epochs do not correlate
const epochStride uint64 = 0x9E3779B97F4A7C15

// Perm is a deterministic per-epoch permutation of sample indices held in
// memory. Equal (seed, epoch) pairs always produce equal permutations.
type Perm struct {
	seed int64
	idx  []int
}

// NewPerm creates the identity permutation over n samples seeded for epoch 0.
func NewPerm(n int, seed int64) *Perm {
	p := &Perm{seed: seed, idx: make([]int, n)}
	p.Reshuffle(0)
	return p
}

// Reshuffle rebuilds the permutation for the given epoch. The result depends
// only on (seed, epoch), never on previous epochs.
func (p *Perm) Reshuffle(epoch int) {
	for i := range p.idx {
		p.idx[i] = i
	}
	r := rand.New(rand.NewSource(p.seed + int64(uint64(epoch)*epochStride)))
	r.Shuffle(len(p.idx), func(i, j int) { p.idx[i], p.idx[j] = p.idx[j], p.idx[i] })
}

// At maps a position to its shuffled sample index.
func (p *Perm) At(i int) int {
	return p.idx[i]
}

// Len returns the number of samples.
func (p *Perm) Len() int {
	return len(p.idx)
}
