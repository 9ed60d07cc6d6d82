package parallel

import "sync/atomic"
import "testing"

func TestForEachVisitsAll(t *testing.T) {
	var sum atomic.Int64
	ForEach(1000, 16, func(i int) {
		sum.Add(int64(i))
	})
	if sum.Load() != 999*1000/2 {
		t.Errorf("sum = %d", sum.Load())
	}
}

func TestForEachEdgeCases(t *testing.T) {
	ForEach(0, 4, func(i int) { t.Error("body called for zero length") })
	var n atomic.Int64
	ForEach(10, 0, func(i int) { n.Add(1) }) // limit 0 falls back to 1
	if n.Load() != 10 {
		t.Errorf("visited %d, want 10", n.Load())
	}
}

func TestDigestExactlyOnce(t *testing.T) {
	d := NewDigest(100)
	ForEach(100, 8, func(i int) {
		d.MustPut(i, uint32(i*3))
	})
	if !d.Complete() {
		t.Error("digest incomplete after writing every position")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate write did not panic")
		}
	}()
	d.MustPut(5, 15)
}

func TestDigestDeterministic(t *testing.T) {
	a := NewDigest(50)
	b := NewDigest(50)
	for i := 0; i < 50; i++ {
		a.MustPut(i, uint32(i))
	}
	// same values, reversed write order
	for i := 49; i >= 0; i-- {
		b.MustPut(i, uint32(i))
	}
	if a.Sum() != b.Sum() {
		t.Error("digest must not depend on write interleaving")
	}

	c := NewDigest(50)
	for i := 0; i < 50; i++ {
		c.MustPut(i, uint32(i+1))
	}
	if a.Sum() == c.Sum() {
		t.Error("different indices must change the digest")
	}
}
