package majpool2d

// Put sets the n-th input bit.
func (s *MajPool2D) Put(n int, v bool) {
	s.vec[n] = v
}

// Feature returns the m-th pooled feature: 1 when the majority of the
// subwidth x subheight pool feeding output m is set, 0 otherwise.
func (s *MajPool2D) Feature(m int) (o uint32) {
	pool := s.subwidth * s.subheight
	base := m * pool
	var w int
	for n := 0; n < pool; n++ {
		if s.vec[base+n] {
			w++
		} else {
			w--
		}
	}
	if w > 0 {
		o = 1
	}
	return
}

// Disregard tells whether putting value false at position n would not affect
// any feature output (as opposed to putting value true at position n).
// A pool vote decided by more than one bit cannot be flipped by one input.
func (s *MajPool2D) Disregard(n int) bool {
	pool := s.subwidth * s.subheight
	base := (n / pool) * pool
	var w int
	for m := 0; m < pool; m++ {
		if base+m == n {
			continue
		}
		if s.vec[base+m] {
			w++
		} else {
			w--
		}
	}
	if w < 0 {
		w = -w
	}
	return w > 1
}
