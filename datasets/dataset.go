// Package datasets implements the feature/label set types consumed by the solver
package datasets

import "math/rand"

// Dataset maps hashed features to their boolean class.
type Dataset map[uint32]bool

func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// Split splits the dataset into a false set and a true set.
func (d Dataset) Split() (o SplittedDataset) {
	o[0] = make(map[uint32]struct{})
	o[1] = make(map[uint32]struct{})
	for k, v := range d {
		if v {
			o[1][k] = struct{}{}
		} else {
			o[0][k] = struct{}{}
		}
	}
	return
}

// Splitter is anything which can be lowered to a splitted dataset.
type Splitter interface {
	Split() SplittedDataset
}

// SplittedDataset is a pair of class feature sets, false at 0 and true at 1.
type SplittedDataset [2]map[uint32]struct{}

// BalanceDataset fills the smaller set with random features until it matches the bigger set
func BalanceDataset(d SplittedDataset) SplittedDataset {
	if len(d[0]) == len(d[1]) {
		return d
	}
	for len(d[0]) < len(d[1]) {
		var w = rand.Uint32()
		if _, ok := d[1][w]; !ok {
			d[0][w] = struct{}{}
		}
	}
	for len(d[1]) < len(d[0]) {
		var w = rand.Uint32()
		if _, ok := d[0][w]; !ok {
			d[1][w] = struct{}{}
		}
	}
	return d
}
