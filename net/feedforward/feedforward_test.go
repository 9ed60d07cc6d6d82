package feedforward

import "bytes"
import "testing"

import "github.com/neurlang/batchseq/datasets"
import "github.com/neurlang/batchseq/layer/majpool2d"

type vecInput []uint32

func (v vecInput) Feature(n int) uint32 {
	return v[n%len(v)]
}

func smallNet() (net FeedforwardNetwork) {
	net.NewLayer(4)
	net.NewCombiner(majpool2d.MustNew(2, 2, 1, 1, 1))
	net.NewLayer(1)
	return
}

func TestInferBinary(t *testing.T) {
	net := smallNet()
	if net.Len() != 5 {
		t.Fatalf("network has %d hashtrons, want 5", net.Len())
	}
	for n := uint32(0); n < 64; n++ {
		out := net.Infer(vecInput{n, n * 3, n * 5, n * 7}).Feature(0)
		if out > 1 {
			t.Fatalf("binary network inferred %d", out)
		}
	}
}

func TestInferDeterministic(t *testing.T) {
	net := smallNet()
	in := vecInput{1, 2, 3, 4}
	first := net.Infer(in).Feature(0)
	for i := 0; i < 10; i++ {
		if net.Infer(in).Feature(0) != first {
			t.Fatal("inference is not deterministic")
		}
	}
}

func TestShuffleVisitsAllOnce(t *testing.T) {
	net := smallNet()
	for _, reverse := range []bool{false, true} {
		order := net.Shuffle(reverse)
		if len(order) != net.Len() {
			t.Fatalf("order length %d, want %d", len(order), net.Len())
		}
		seen := make([]bool, net.Len())
		for _, n := range order {
			if seen[n] {
				t.Fatalf("hashtron %d visited twice", n)
			}
			seen[n] = true
		}
	}
	// reverse order starts at the output layer
	order := net.Shuffle(true)
	if net.GetLayer(order[0]) != 2 {
		t.Error("reverse shuffle must start at the last layer")
	}
}

func TestForgetResets(t *testing.T) {
	net := smallNet()
	// grow one unit's program so the reset is observable
	net.GetHashtron(0).Push([2]uint32{123, 7})
	if net.GetHashtron(0).Len() != 2 {
		t.Fatalf("unit 0 has %d steps, want 2", net.GetHashtron(0).Len())
	}
	net.Forget()
	for i := 0; i < net.Len(); i++ {
		if net.GetHashtron(i).Len() != 1 {
			t.Fatalf("unit %d has %d steps after forget, want 1", i, net.GetHashtron(i).Len())
		}
	}
	if out := net.Infer(vecInput{1, 2, 3, 4}).Feature(0); out > 1 {
		t.Errorf("forgotten network inferred %d", out)
	}
}

func TestTallyProducesVotes(t *testing.T) {
	net := smallNet()
	var tally datasets.Tally
	tally.Init()
	less := func(i, j FeedforwardNetworkInput) bool {
		a := i.Feature(0) ^ 1
		b := j.Feature(0) ^ 1
		return a < b
	}
	for n := uint32(0); n < 200; n++ {
		in := vecInput{n, n + 1, n + 2, n + 3}
		var out SingleValue = SingleValue(n & 1)
		for worst := 0; worst < net.Len(); worst++ {
			net.Tally(in, out, worst, &tally, less)
		}
	}
	if tally.Len() == 0 {
		t.Error("tallying 200 samples produced no votes")
	}
}

func TestWeightsRoundtrip(t *testing.T) {
	net := smallNet()
	var buf bytes.Buffer
	if err := net.WriteCompressedWeights(&buf); err != nil {
		t.Fatal(err)
	}

	restored := smallNet()
	if err := restored.ReadCompressedWeights(&buf); err != nil {
		t.Fatal(err)
	}
	for n := uint32(0); n < 64; n++ {
		in := vecInput{n, n * 3, n * 5, n * 7}
		if net.Infer(in).Feature(0) != restored.Infer(in).Feature(0) {
			t.Fatalf("restored network disagrees on input %d", n)
		}
	}

	other := FeedforwardNetwork{}
	other.NewLayer(2)
	var buf2 bytes.Buffer
	if err := net.WriteCompressedWeights(&buf2); err != nil {
		t.Fatal(err)
	}
	if err := other.ReadCompressedWeights(&buf2); err == nil {
		t.Error("mismatched architecture must be rejected")
	}
}
