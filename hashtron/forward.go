package hashtron

import "github.com/neurlang/batchseq/hash"

// Forward runs the hashtron program on command and returns its output bits.
// The unit under training can have its bit negated using negate.
func (h Hashtron) Forward(command uint32, negate bool) (out uint16) {
	if h.Len() == 0 {
		return
	}
	for j := byte(0); j < h.Bits(); j++ {
		var input = uint32(command) | (uint32(j) << 16)
		for i := 0; i < h.Len(); i++ {
			var s, max = h.Get(i)
			input = hash.Hash(input, s, max)
		}
		input &= 1
		if negate {
			input ^= 1
		}
		if input != 0 {
			out |= 1 << j
		}
	}
	return
}
