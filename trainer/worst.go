package trainer

import "fmt"

import "github.com/neurlang/quaternary"

import "github.com/neurlang/batchseq/datasets"
import "github.com/neurlang/batchseq/learning"
import "github.com/neurlang/batchseq/net/feedforward"

// trainWorst solves the tallied votes for one unit and installs the result
// unless the learned data grew past the unit it replaces. Returns an undo
// closure when a new unit was installed.
func trainWorst(net *feedforward.FeedforwardNetwork, worst int, tally *datasets.Tally,
	h *learning.HyperParameters) (undo func(), err error) {

	if !tally.GetImprovementPossible() {
		return nil, nil
	}

	h.Name = fmt.Sprint(worst)
	tron, err := h.Training(tally)
	if err != nil {
		return nil, err
	}

	// size check against the learned quaternary filter of the vote set
	q := quaternary.Make(map[uint32]bool(tally.Dataset()))
	ptr := net.GetHashtron(worst)
	if prev := ptr.LenF(); prev > 0 && len(q) > prev {
		return nil, nil
	}
	tron.SetFilter([]byte(q))

	backup := *ptr
	*ptr = *tron
	return func() {
		*ptr = backup
	}, nil
}
