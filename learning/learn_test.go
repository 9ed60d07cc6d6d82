package learning

import "testing"

import "github.com/neurlang/batchseq/datasets"

func solveAndCheck(t *testing.T, d datasets.Dataset) {
	t.Helper()
	var h HyperParameters
	h.Threads = 4
	h.Shuffle = true
	h.DeadlineMs = 2000
	h.DeadlineRetry = 5
	h.InitialLimit = 100
	h.EndWhenSolved = true

	tron, err := h.Training(d)
	if err != nil {
		t.Fatal(err)
	}
	for v, class := range d {
		want := uint16(0)
		if class {
			want = 1
		}
		if got := tron.Forward(v, false); got != want {
			t.Errorf("value %d: classified %d, want %d", v, got, want)
		}
	}
}

func TestSolveTwoValues(t *testing.T) {
	solveAndCheck(t, datasets.Dataset{2: false, 3: true})
}

func TestSolveSmallSet(t *testing.T) {
	solveAndCheck(t, datasets.Dataset{
		100: false, 2000: false, 30000: false,
		111: true, 2221: true, 33331: true,
	})
}

func TestSolveDefaults(t *testing.T) {
	var h HyperParameters
	h.defaults()
	if h.Threads < 1 || h.Factor == 0 || h.Denominator == 0 {
		t.Error("defaults left zero hyperparameters")
	}
}
