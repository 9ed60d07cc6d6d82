// Package hashtron implements a single hash-based classifier unit
package hashtron

// Hashtron represents an individual classifier unit in memory
type Hashtron struct {
	program [][2]uint32
	bits    byte

	filter []byte
}

// Push pushes the hashing command to position 0
func (h *Hashtron) Push(data [2]uint32) {
	h.program = append([][2]uint32{data}, h.program...)
}

// Get gets the hashing command at position n
func (h Hashtron) Get(n int) (s uint32, max uint32) {
	return h.program[n][0], h.program[n][1]
}

// Len gets the number of hashing commands (size of hashtron program)
func (h Hashtron) Len() int {
	return len(h.program)
}

// LenF gets the size of the learned quaternary filter in bytes
func (h Hashtron) LenF() int {
	return len(h.filter)
}

// SetFilter attaches a learned quaternary filter to the hashtron
func (h *Hashtron) SetFilter(filter []byte) {
	h.filter = filter
}

// Bits determines the number of output bits returned by Forward
func (h Hashtron) Bits() byte {
	return h.bits
}

// SetBits sets the number of output bits returned by Forward
func (h *Hashtron) SetBits(bits byte) {
	h.bits = bits
}
