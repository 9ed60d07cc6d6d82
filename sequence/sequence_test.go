package sequence

import "testing"

func TestBatches(t *testing.T) {
	cases := []struct{ samples, size, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 0},
	}
	for _, c := range cases {
		if got := Batches(c.samples, c.size); got != c.want {
			t.Errorf("Batches(%d, %d) = %d, want %d", c.samples, c.size, got, c.want)
		}
	}
}

func TestSpanCoversExactlyOnce(t *testing.T) {
	const samples = 25
	const size = 10
	var covered [samples]int
	for i := 0; i < Batches(samples, size); i++ {
		lo, hi := Span(i, size, samples)
		if lo < 0 || hi > samples || lo > hi {
			t.Fatalf("batch %d span [%d, %d) out of bounds", i, lo, hi)
		}
		for j := lo; j < hi; j++ {
			covered[j]++
		}
	}
	for j, c := range covered {
		if c != 1 {
			t.Errorf("sample %d covered %d times", j, c)
		}
	}
}

func TestSpanShortLastBatch(t *testing.T) {
	lo, hi := Span(2, 10, 25)
	if lo != 20 || hi != 25 {
		t.Errorf("last span = [%d, %d), want [20, 25)", lo, hi)
	}
}
