// Package majpool2d implements a majority-pooling layer and combiner
package majpool2d

import "fmt"

import "github.com/neurlang/batchseq/layer"

// MajPool2DLayer describes the geometry of a majority pool.
type MajPool2DLayer struct {
	width, height, subwidth, subheight, repeat int
}

// MajPool2D is the instantiated combiner holding one layer of output bits.
type MajPool2D struct {
	vec                                        []bool
	width, height, subwidth, subheight, repeat int
}

// MustNew creates a new MajPool2D layer with size, subsize and repeat
func MustNew(width, height, subwidth, subheight, repeat int) *MajPool2DLayer {
	o, err := New(width, height, subwidth, subheight, repeat)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new MajPool2D layer with size, subsize and repeat
func New(width, height, subwidth, subheight, repeat int) (o *MajPool2DLayer, err error) {
	if width < 1 || height < 1 || subwidth < 1 || subheight < 1 || repeat < 1 {
		return nil, fmt.Errorf("new MajPool2D: invalid geometry %dx%d/%dx%d repeat %d",
			width, height, subwidth, subheight, repeat)
	}
	o = new(MajPool2DLayer)
	o.width = width
	o.height = height
	o.subwidth = subwidth
	o.subheight = subheight
	o.repeat = repeat
	return
}

// Inputs reports the number of bits this layer consumes.
func (i *MajPool2DLayer) Inputs() int {
	return i.width * i.height * i.subwidth * i.subheight * i.repeat
}

// Outputs reports the number of pooled features this layer produces.
func (i *MajPool2DLayer) Outputs() int {
	return i.width * i.height * i.repeat
}

// Lay turns the MajPool2D layer into a combiner
func (i *MajPool2DLayer) Lay() layer.Combiner {
	var o MajPool2D
	o.vec = make([]bool, i.Inputs())
	o.width = i.width
	o.height = i.height
	o.subwidth = i.subwidth
	o.subheight = i.subheight
	o.repeat = i.repeat
	return &o
}
