package manifest

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/neurlang/batchseq/datasets/images"
	"github.com/neurlang/batchseq/parallel"
	"github.com/neurlang/batchseq/sequence"
)

// streaming permutation pays off above this many samples
const streamingThreshold = 1 << 22

// Seq converts integer batch indices into (image batch, label batch) pairs
// read from disk. It implements sequence.Sequence and reshuffles its index
// permutation at every epoch end.
type Seq struct {
	m       *Manifest
	batch   int
	workers int
	perm    sequence.Permuter
}

// NewSequence builds a shuffled batch sequence over the manifest. A zero
// workers count uses the CPU default. Sample sets too large for an in-memory
// index slice get a streaming prime permutation instead.
func NewSequence(m *Manifest, batchSize int, seed int64, workers int) (*Seq, error) {
	if batchSize <= 0 {
		return nil, errors.Errorf("batch size %d is not positive", batchSize)
	}
	if workers <= 0 {
		workers = sequence.DefaultWorkers()
	}
	s := &Seq{m: m, batch: batchSize, workers: workers}
	if m.Len() >= streamingThreshold {
		s.perm = sequence.NewPrimePerm(m.Len(), seed)
	} else {
		s.perm = sequence.NewPerm(m.Len(), seed)
	}
	return s, nil
}

// Len returns the number of batches per epoch.
func (s *Seq) Len() int {
	return sequence.Batches(s.m.Len(), s.batch)
}

// Samples returns the number of samples per epoch.
func (s *Seq) Samples() int {
	return s.m.Len()
}

// Batch decodes the i-th shuffled batch from disk, loading its images with
// bounded worker goroutines. The last batch may be short.
func (s *Seq) Batch(i int) (sequence.Batch, error) {
	if i < 0 || i >= s.Len() {
		return sequence.Batch{}, errors.Errorf("batch index %d out of range [0, %d)", i, s.Len())
	}
	lo, hi := sequence.Span(i, s.batch, s.m.Len())
	out := sequence.Batch{
		Index:   i,
		Images:  make([]images.Raster, hi-lo),
		Labels:  make([]uint8, hi-lo),
		Samples: make([]int, hi-lo),
	}
	var mu sync.Mutex
	var firstErr error
	parallel.ForEach(hi-lo, s.workers, func(j int) {
		sample := s.perm.At(lo + j)
		out.Samples[j] = sample
		out.Labels[j] = s.m.Labels[sample]
		img, err := images.Load(s.m.Paths[sample])
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			return
		}
		out.Images[j] = img
	})
	if firstErr != nil {
		return sequence.Batch{}, errors.Wrapf(firstErr, "batch %d", i)
	}
	return out, nil
}

// SampleAt reports the shuffled sample index behind position pos of the
// current epoch, for epoch digests.
func (s *Seq) SampleAt(pos int) int {
	return s.perm.At(pos)
}

// EpochEnd reshuffles the permutation for the epoch after the finished one.
func (s *Seq) EpochEnd(epoch int) {
	s.perm.Reshuffle(epoch + 1)
}
