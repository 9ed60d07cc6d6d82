// Package sequence implements the batch-indexing abstraction feeding
// larger-than-memory sample sets to the training loop by integer batch index.
package sequence

import "github.com/neurlang/batchseq/datasets/images"

// Batch is one contiguous window of decoded samples. Samples holds the
// shuffled sample index behind each position, for epoch accounting.
type Batch struct {
	Index   int
	Images  []images.Raster
	Labels  []uint8
	Samples []int
}

// Sequence converts integer batch indices into loaded batches. Implementations
// must be safe for concurrent Batch calls with distinct indices.
type Sequence interface {

	// Len returns the number of batches per epoch.
	Len() int

	// Batch loads the i-th batch. i must be in [0, Len()).
	Batch(i int) (Batch, error)
}

// EpochEnder is implemented by sequences which reshuffle between epochs.
type EpochEnder interface {
	EpochEnd(epoch int)
}

// Permuter is a reshufflable sample index permutation. Perm and PrimePerm
// both satisfy it.
type Permuter interface {
	At(i int) int
	Len() int
	Reshuffle(epoch int)
}

// Batches returns the number of batches covering samples, the last batch
// possibly short.
func Batches(samples, batchSize int) int {
	if batchSize <= 0 || samples <= 0 {
		return 0
	}
	return (samples + batchSize - 1) / batchSize
}

// Span returns the half-open sample range of batch i. The range never
// exceeds the sample count.
func Span(i, batchSize, samples int) (lo, hi int) {
	lo = i * batchSize
	hi = lo + batchSize
	if hi > samples {
		hi = samples
	}
	if lo > samples {
		lo = samples
	}
	return
}
