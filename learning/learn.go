// Package learning implements the per-unit solving stage of the classifier
package learning

import "encoding/binary"
import "math/rand"
import "sync"
import "time"

import crypto_rand "crypto/rand"

import "github.com/pkg/errors"

import "github.com/neurlang/batchseq/datasets"
import "github.com/neurlang/batchseq/hash"
import "github.com/neurlang/batchseq/hashtron"
import "github.com/neurlang/batchseq/parallel"

// Training trains a single hashtron on the dataset d. It returns the trained
// hashtron, or an error when no attempt found a solution.
func (h *HyperParameters) Training(d datasets.Splitter) (*hashtron.Hashtron, error) {
	h.defaults()

	var sd = datasets.BalanceDataset(d.Split())

	if h.Seed {
		var b [8]byte
		_, err := crypto_rand.Read(b[:])
		if err == nil {
			rand.Seed(int64(binary.LittleEndian.Uint64(b[:])))
		}
	}

	var best *hashtron.Hashtron
	for attempt := 0; attempt < h.DeadlineRetry; attempt++ {
		tron := h.Solve(sd)
		if tron == nil {
			continue
		}
		if best == nil || tron.Len() < best.Len() {
			best = tron
		}
		if h.EndWhenSolved {
			break
		}
	}
	if best == nil {
		return nil, errors.Errorf("no solution for %d+%d features within %d attempts",
			len(sd[0]), len(sd[1]), h.DeadlineRetry)
	}
	return best, nil
}

// Solve attempts one solution on a splitted dataset. Most callers should use
// Training instead. Returns nil when the attempt was abandoned.
func (h *HyperParameters) Solve(d datasets.SplittedDataset) *hashtron.Hashtron {
	h.defaults()

	var alphabet [2][]uint32
	for n := range d {
		alphabet[n] = make([]uint32, 0, len(d[n]))
		for v := range d[n] {
			alphabet[n] = append(alphabet[n], v)
		}
	}

	var program [][2]uint32
	maxl := uint64(len(alphabet[0]))
	max := uint32(4)
	if m := maxl * maxl / uint64(h.Factor); m > 4 {
		if m > 1<<30 {
			m = 1 << 30
		}
		max = uint32(m)
	}

	var failures int
	for {
		// a parity salt over all remaining values finishes the program
		if s, ok := h.parity(&alphabet); ok {
			program = append(program, [2]uint32{s, 2})
			if h.l != nil {
				h.l.Println(h.Name, "solution size", len(program))
			}
			tron, err := hashtron.New(program, 1)
			if err != nil {
				return nil
			}
			return tron
		}
		if len(program) >= h.InitialLimit {
			return nil
		}

		s, ok := h.reduce(max, &alphabet)
		if !ok {
			failures++
			if failures > h.DeadlineRetry {
				return nil
			}
			max++
			continue
		}
		h.apply(s, max, &alphabet)
		program = append(program, [2]uint32{s, max})

		max = max / h.Denominator * h.Numerator
		if max > h.Subtractor+4 {
			max -= h.Subtractor
		}
		if max < 4 {
			max = 4
		}
	}
}

// parity searches for a salt mapping every false-class value to an even and
// every true-class value to an odd residue modulo 2. The search is bounded,
// large alphabets are expected to fail until reduce shrinks them.
func (h *HyperParameters) parity(alphabet *[2][]uint32) (salt uint32, ok bool) {
	total := uint(len(alphabet[0]) + len(alphabet[1]))
	if total > 20 {
		return 0, false
	}
	tries := uint32(1) << (total + 6)
	var mut sync.Mutex
	parallel.Loop(h.Threads).LoopUntil(func(i uint32, ender parallel.LoopStopper) bool {
		if i >= tries {
			return true
		}
		for _, v := range alphabet[0] {
			if hash.Hash(v, i, 2) != 0 {
				return false
			}
		}
		for _, v := range alphabet[1] {
			if hash.Hash(v, i, 2) != 1 {
				return false
			}
		}
		mut.Lock()
		if !ok {
			salt, ok = i, true
		}
		mut.Unlock()
		return true
	})
	return
}

// reduce searches for a salt which keeps the two hashed alphabets disjoint
// and equally sized under the given modulo.
func (h *HyperParameters) reduce(max uint32, alphabet *[2][]uint32) (salt uint32, ok bool) {
	if h.Shuffle {
		for n := range alphabet {
			a := alphabet[n]
			rand.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
		}
	}
	start := time.Now()
	deadline := time.Duration(h.DeadlineMs) * time.Millisecond
	var mut sync.Mutex
	parallel.Loop(h.Threads).LoopUntil(func(i uint32, ender parallel.LoopStopper) bool {
		if time.Since(start) > deadline {
			return true
		}
		var img [2]map[uint32]struct{}
		for n := range alphabet {
			img[n] = make(map[uint32]struct{}, len(alphabet[n]))
			for _, v := range alphabet[n] {
				img[n][hash.Hash(v, i, max)] = struct{}{}
			}
		}
		if len(img[0]) != len(img[1]) {
			return false
		}
		for v := range img[0] {
			if _, bad := img[1][v]; bad {
				return false
			}
		}
		mut.Lock()
		if !ok {
			salt, ok = i, true
		}
		mut.Unlock()
		return true
	})
	return
}

// apply rewrites both alphabets through the accepted program step.
func (h *HyperParameters) apply(salt, max uint32, alphabet *[2][]uint32) {
	for n := range alphabet {
		salts := make([]uint32, len(alphabet[n]))
		for i := range salts {
			salts[i] = salt
		}
		hashed := make([]uint32, len(alphabet[n]))
		hash.Vectorized(hashed, alphabet[n], salts, max)

		seen := make(map[uint32]struct{}, len(hashed))
		dst := alphabet[n][:0]
		for _, hsh := range hashed {
			if _, dup := seen[hsh]; dup {
				continue
			}
			seen[hsh] = struct{}{}
			dst = append(dst, hsh)
		}
		alphabet[n] = dst
	}
}
