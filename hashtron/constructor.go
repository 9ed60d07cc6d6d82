package hashtron

import "math/rand"

import "github.com/pkg/errors"

// New creates a hashtron from a program. A nil program yields a random
// single-step program so an untrained unit still produces output.
func New(program [][2]uint32, bits byte) (h *Hashtron, err error) {
	return NewFiltered(program, bits, nil)
}

// NewFiltered creates a hashtron from a program and a learned quaternary
// filter blob produced by quaternary.Make.
func NewFiltered(program [][2]uint32, bits byte, filter []byte) (h *Hashtron, err error) {
	h = new(Hashtron)
	if bits == 0 {
		bits = 1
	}
	if program == nil {
		h.program = [][2]uint32{{rand.Uint32() >> 1, 2}}
	} else {
		for _, v := range program {
			if v[1] == 0 {
				return nil, errors.New("hashtron program step with zero modulo")
			}
		}
		h.program = program
	}
	h.bits = bits
	h.filter = filter
	return
}
