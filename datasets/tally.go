package datasets

import "sync"

// Tally counts votes on features seen during a training pass and lowers
// the majority votes into a dataset for the solver.
type Tally struct {
	// votes for features which caused a correct overall result.
	// true is added as +1, false as -1. A positive tally maps the
	// feature to true, a negative one to false.
	correct map[uint32]int64

	// votes for features which improved the overall result
	improve map[uint32]int64

	mut sync.Mutex

	// improvementPossible reports whether any vote can still move the model
	improvementPossible bool
}

// Init initializes the tally structure
func (t *Tally) Init() {
	t.correct = make(map[uint32]int64)
	t.improve = make(map[uint32]int64)
	t.improvementPossible = false
}

// Free frees the memory occupied by the tally structure
func (t *Tally) Free() {
	t.correct = nil
	t.improve = nil
}

// GetImprovementPossible reports whether any vote can still move the model
func (t *Tally) GetImprovementPossible() bool {
	t.mut.Lock()
	defer t.mut.Unlock()
	return t.improvementPossible
}

// Len estimates the size of the tally
func (t *Tally) Len() (o int) {
	t.mut.Lock()
	o = len(t.correct) + len(t.improve)
	t.mut.Unlock()
	return
}

// AddToImprove votes for a feature which improved the overall result
func (t *Tally) AddToImprove(feature uint32, vote int8) {
	if vote == 0 {
		return
	}
	t.mut.Lock()
	t.improve[feature] += int64(vote)
	if t.improve[feature] == 0 {
		delete(t.improve, feature)
	}
	t.mut.Unlock()
}

// AddToCorrect votes for a feature which caused the overall result to be correct
func (t *Tally) AddToCorrect(feature uint32, vote int8, improvement bool) {
	if vote == 0 {
		return
	}
	t.mut.Lock()
	t.correct[feature] += int64(vote)
	if t.correct[feature] == 0 {
		delete(t.correct, feature)
	}
	if improvement {
		t.improvementPossible = true
	}
	t.mut.Unlock()
}

// Dataset lowers the tally into a dataset. Improvement votes are applied
// first so correctness votes win on conflict.
func (t *Tally) Dataset() Dataset {
	t.mut.Lock()
	defer t.mut.Unlock()
	var sett Dataset
	sett.Init()
	for value, rating := range t.improve {
		if rating != 0 {
			sett[value] = rating > 0
		}
	}
	for value, rating := range t.correct {
		if rating != 0 {
			sett[value] = rating > 0
		}
	}
	return sett
}

// Split lowers the tally into a splitted dataset.
func (t *Tally) Split() SplittedDataset {
	return t.Dataset().Split()
}
