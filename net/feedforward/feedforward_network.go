// Package feedforward implements the binary feedforward classifier network
package feedforward

import "sync"

import "github.com/neurlang/batchseq/datasets"
import "github.com/neurlang/batchseq/hashtron"
import "github.com/neurlang/batchseq/layer"

// Intermediate is an intermediate value used as both layer input and layer output
type Intermediate interface {

	// Feature extracts the n-th feature from the Intermediate
	Feature(n int) uint32

	// Disregard reports whether the Intermediate doesn't regard the n-th bit
	// as affecting the output
	Disregard(n int) bool
}

// SingleValue is a single value returned by the final layer
type SingleValue uint32

// Feature extracts the feature from SingleValue
func (v SingleValue) Feature(n int) uint32 {
	return uint32(v)
}

// Disregard reports whether SingleValue doesn't regard the n-th bit as affecting the output
func (v SingleValue) Disregard(n int) bool {
	return false
}

// FeedforwardNetworkInput is one individual input to the feedforward network
type FeedforwardNetworkInput interface {
	Feature(n int) uint32
}

// FeedforwardNetwork is a stack of unit layers interleaved with combiners,
// ending in a single binary unit.
type FeedforwardNetwork struct {
	layers    [][]hashtron.Hashtron
	combiners []layer.Layer
}

// Len returns the number of hashtrons which need to be trained inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for _, v := range f.layers {
		o += len(v)
	}
	return
}

// LenLayers returns the number of layers. Each Layer and Combiner counts as a layer here.
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer gets the layer number of hashtron based on hashtron number. Returns -1 on failure.
func (f FeedforwardNetwork) GetLayer(n int) int {
	for i, v := range f.layers {
		if n < len(v) {
			return i
		}
		n -= len(v)
	}
	return -1
}

// GetPosition gets the position of hashtron within its layer based on the
// overall hashtron number. Returns -1 on failure.
func (f FeedforwardNetwork) GetPosition(n int) int {
	for _, v := range f.layers {
		if n < len(v) {
			return n
		}
		n -= len(v)
	}
	return -1
}

// GetHashtron gets the n-th hashtron pointer in the network.
func (f FeedforwardNetwork) GetHashtron(n int) *hashtron.Hashtron {
	for _, v := range f.layers {
		if n < len(v) {
			return &v[n]
		}
		n -= len(v)
	}
	return nil
}

// Forget resets every hashtron in the network to a random program.
func (f *FeedforwardNetwork) Forget() {
	for _, v := range f.layers {
		for j := range v {
			h, _ := hashtron.New(nil, 1)
			if h != nil {
				v[j] = *h
			}
		}
	}
}

// NewLayer adds a layer of n binary hashtrons to the end of the network.
func (f *FeedforwardNetwork) NewLayer(n int) {
	var l = make([]hashtron.Hashtron, n)
	for i := range l {
		h, _ := hashtron.New(nil, 1)
		l[i] = *h
	}
	f.layers = append(f.layers, l)
	f.combiners = append(f.combiners, nil)
}

// NewCombiner adds a combiner layer to the end of the network
func (f *FeedforwardNetwork) NewCombiner(l layer.Layer) {
	f.layers = append(f.layers, nil)
	f.combiners = append(f.combiners, l)
}

// Infer infers the network output bit based on input.
func (f FeedforwardNetwork) Infer(in FeedforwardNetworkInput) FeedforwardNetworkInput {
	out := in
	for l := 0; l < f.LenLayers(); l += 2 {
		out, _ = f.Forward(out, l, -1, 0)
	}
	return out
}

// Forward computes the intermediate after layer l from that layer's input in.
// The bit of the worst hashtron is optionally negated (neg == 1) and returned
// as computed.
func (f FeedforwardNetwork) Forward(in FeedforwardNetworkInput, l, worst, neg int) (inter Intermediate, computed bool) {
	if len(f.combiners) > l+1 && f.combiners[l+1] != nil {
		var combiner = f.combiners[l+1].Lay()
		wg := sync.WaitGroup{}
		var mu sync.Mutex
		for i := 0; i < len(f.layers[l]); i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var bit = f.layers[l][i].Forward(in.Feature(i), (i == worst) && (neg == 1))
				mu.Lock()
				combiner.Put(i, bit&1 != 0)
				if i == worst {
					computed = bit&1 != 0
				}
				mu.Unlock()
			}(i)
		}
		wg.Wait()
		return combiner, computed
	}

	var bit = f.layers[l][0].Forward(in.Feature(0), (0 == worst) && (neg == 1))
	return SingleValue(bit & 1), (bit & 1) != 0
}

// Tally tallies the network on an input/output pair with respect to the
// to-be-trained worst hashtron, storing votes into the thread safe tally.
// Two outputs i, j are compared by less (true when i is less wrong than j).
func (f *FeedforwardNetwork) Tally(in, output FeedforwardNetworkInput, worst int, tally *datasets.Tally,
	less func(i, j FeedforwardNetworkInput) bool) {
	l := f.GetLayer(worst)
	if l < 0 {
		return
	}
	for lPrev := 0; lPrev < l; lPrev += 2 {
		in, _ = f.Forward(in, lPrev, -1, 0)
	}
	feature := in.Feature(f.GetPosition(worst))

	if len(f.combiners) > l+1 && f.combiners[l+1] != nil {
		var predicted [2]FeedforwardNetworkInput
		var compute [2]int8
		for neg := 0; neg < 2; neg++ {
			inter, computed := f.Forward(in, l, f.GetPosition(worst), neg)
			if computed {
				compute[neg] = 1
			} else {
				compute[neg] = -1
			}
			if neg == 0 && inter.Disregard(f.GetPosition(worst)) {
				return
			}
			var post FeedforwardNetworkInput = inter
			for lPost := l + 2; lPost < f.LenLayers(); lPost += 2 {
				post, _ = f.Forward(post, lPost, -1, 0)
			}
			predicted[neg] = post
		}
		if !less(predicted[0], output) && !less(predicted[1], output) &&
			!less(output, predicted[0]) && !less(output, predicted[1]) {
			// correct either way
			return
		}
		for neg := 0; neg < 2; neg++ {
			if !less(predicted[neg], output) && !less(output, predicted[neg]) {
				// shift to the correct output
				tally.AddToCorrect(feature, compute[neg], neg == 1)
				return
			}
		}
		if less(output, predicted[0]) != less(output, predicted[1]) {
			// output lies between the two predictions, shift away from wrong
			if less(output, predicted[0]) {
				tally.AddToImprove(feature, -compute[0])
			} else {
				tally.AddToImprove(feature, -compute[1])
			}
		} else {
			// output is below or above both, shift towards the better one
			if less(output, predicted[1]) {
				tally.AddToImprove(feature, compute[0])
			} else {
				tally.AddToImprove(feature, compute[1])
			}
		}
		return
	}

	// final layer
	_, actual := f.Forward(in, l, f.GetPosition(worst), 0)
	changed := actual != (output.Feature(0)&1 != 0)
	tally.AddToCorrect(feature, 2*int8(output.Feature(0)&1)-1, changed)
}
