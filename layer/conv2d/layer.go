// Package conv2d implements a 2D bit-convolution layer and combiner
package conv2d

import "fmt"

import "github.com/neurlang/batchseq/layer"

// Conv2DLayer describes the geometry of a sliding-window bit convolution.
type Conv2DLayer struct {
	width, height, subwidth, subheight, repeat int
}

// Conv2D is the instantiated combiner holding one layer of output bits.
type Conv2D struct {
	vec                                        []bool
	width, height, subwidth, subheight, repeat int
}

// MustNew creates a new Conv2D layer with size, subsize and repeat
func MustNew(width, height, subwidth, subheight, repeat int) *Conv2DLayer {
	o, err := New(width, height, subwidth, subheight, repeat)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with size, subsize and repeat
func New(width, height, subwidth, subheight, repeat int) (o *Conv2DLayer, err error) {
	if width < subwidth {
		return nil, fmt.Errorf("new Conv2D: width %d is lower than subwidth %d", width, subwidth)
	}
	if height < subheight {
		return nil, fmt.Errorf("new Conv2D: height %d is lower than subheight %d", height, subheight)
	}
	if repeat < 1 {
		return nil, fmt.Errorf("new Conv2D: repeat %d is lower than 1", repeat)
	}
	o = new(Conv2DLayer)
	o.width = width
	o.height = height
	o.subwidth = subwidth
	o.subheight = subheight
	o.repeat = repeat
	return
}

// Outputs reports the number of features this layer produces.
func (i *Conv2DLayer) Outputs() int {
	return (i.width - i.subwidth + 1) * (i.height - i.subheight + 1) * i.repeat
}

// Inputs reports the number of bits this layer consumes.
func (i *Conv2DLayer) Inputs() int {
	return i.width * i.height * i.repeat
}

// Lay turns the Conv2D layer into a combiner
func (i *Conv2DLayer) Lay() layer.Combiner {
	var o Conv2D
	o.vec = make([]bool, i.width*i.height*i.repeat)
	o.width = i.width
	o.height = i.height
	o.subwidth = i.subwidth
	o.subheight = i.subheight
	o.repeat = i.repeat
	return &o
}
