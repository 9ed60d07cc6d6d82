package learning

import (
	"log"
	"os"
)

// HyperParameters steer the per-unit solver.
type HyperParameters struct {
	Threads int // number of goroutines searching salts

	Shuffle bool // whether to shuffle the set before each learning attempt
	Seed    bool // seed prng using true rng

	DeadlineMs    int // deadline in milliseconds for one salt search
	DeadlineRetry int // give up after this many failed deadlines

	Factor uint32 // initial modulo divisor, affects the solution size

	Numerator   uint32 // modulo shrink ratio numerator
	Denominator uint32 // modulo shrink ratio denominator
	Subtractor  uint32 // constant modulo decrement per step

	InitialLimit int // how long a program may grow before the attempt is abandoned

	EndWhenSolved bool // stop retrying once a solution exists

	Name string // unit name prefix on log lines

	l *log.Logger
}

// SetLogger directs solver solution logging into the named file.
func (h *HyperParameters) SetLogger(filename string) {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return
	}
	h.l = log.New(outfile, "", 0)
}

func (h *HyperParameters) defaults() {
	if h.Threads < 1 {
		h.Threads = 1
	}
	if h.Factor == 0 {
		h.Factor = 1
	}
	if h.Numerator == 0 || h.Denominator == 0 {
		h.Numerator = 3
		h.Denominator = 4
	}
	if h.Subtractor == 0 {
		h.Subtractor = 1
	}
	if h.DeadlineMs <= 0 {
		h.DeadlineMs = 1000
	}
	if h.DeadlineRetry <= 0 {
		h.DeadlineRetry = 3
	}
	if h.InitialLimit <= 0 {
		h.InitialLimit = 1000
	}
}
