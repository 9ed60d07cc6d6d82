package sequence

import "runtime"

import "github.com/klauspost/cpuid/v2"

// Result is one prefetched batch or the error which replaced it.
type Result struct {
	Batch Batch
	Err   error
}

// DefaultWorkers picks the loader worker count from the CPU topology.
func DefaultWorkers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Prefetch loads every batch of one epoch ahead of the consumer using a pool
// of workers and a bounded queue, delivering results strictly in batch index
// order. The returned channel is closed after the last batch. A failed batch
// is delivered as a Result with Err set; the remaining batches still arrive.
// The consumer must drain the channel, the epoch is finite.
func Prefetch(seq Sequence, workers, maxQueue int) <-chan Result {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if maxQueue <= 0 {
		maxQueue = 2 * workers
	}

	type job struct {
		index int
		slot  chan Result
	}

	jobs := make(chan job)
	// slots preserves submission order; its capacity bounds how far the
	// loaders may run ahead of the consumer
	slots := make(chan chan Result, maxQueue)
	out := make(chan Result)

	for w := 0; w < workers; w++ {
		go func() {
			for j := range jobs {
				b, err := seq.Batch(j.index)
				j.slot <- Result{Batch: b, Err: err}
			}
		}()
	}

	go func() {
		for i := 0; i < seq.Len(); i++ {
			slot := make(chan Result, 1)
			slots <- slot
			jobs <- job{index: i, slot: slot}
		}
		close(jobs)
		close(slots)
	}()

	go func() {
		for slot := range slots {
			out <- <-slot
		}
		close(out)
	}()

	return out
}
