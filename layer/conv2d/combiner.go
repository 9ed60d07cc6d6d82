package conv2d

// Put inserts a boolean at position n.
func (f *Conv2D) Put(n int, v bool) {
	f.vec[n] = v
}

// Feature returns the n-th feature from the combiner: the popcount of the
// subwidth x subheight window anchored at the n-th sliding position.
func (f *Conv2D) Feature(n int) (o uint32) {
	block := (f.width - f.subwidth + 1) * (f.height - f.subheight + 1)
	nin := n % block
	nadd := (n / block) * f.width * f.height
	ny := nin / (f.width - f.subwidth + 1)
	nx := nin % (f.width - f.subwidth + 1)

	for i := 0; i < f.subheight; i++ {
		for j := 0; j < f.subwidth; j++ {
			if f.vec[nadd+f.width*(ny+i)+nx+j] {
				o++
			}
		}
	}
	return
}

// Disregard tells whether putting value false at position n would not affect
// any feature output (as opposed to putting value true at position n).
func (f *Conv2D) Disregard(n int) bool {
	return false
}
