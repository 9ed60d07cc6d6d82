package trainer

import "fmt"
import "sync/atomic"

import "github.com/google/uuid"
import "github.com/pkg/errors"

import "github.com/neurlang/batchseq/datasets"
import "github.com/neurlang/batchseq/learning"
import "github.com/neurlang/batchseq/net/feedforward"
import "github.com/neurlang/batchseq/parallel"
import "github.com/neurlang/batchseq/sequence"

// Source is a batch sequence with a known per-epoch sample count.
type Source interface {
	sequence.Sequence

	// Samples returns the number of samples per epoch.
	Samples() int
}

// Options steer one fitting run.
type Options struct {
	Epochs       int    // training epochs
	Workers      int    // loader and tally worker goroutines, 0 picks the CPU default
	MaxQueue     int    // prefetched batch bound, 0 picks twice the workers
	DstModel     string // checkpoint file, empty checkpoints to accuracy-named files
	Significance byte   // evaluation sampling significance in percent, 0 picks 95

	Solver learning.HyperParameters // per-unit solver settings
}

// Fit trains the network on the train sequence for the configured number of
// epochs, keeping the best weights judged on the test sequence. Every epoch
// streams each training sample exactly once through a prefetched batch queue,
// tallies the votes for one unit and resolves that unit.
func Fit(net *feedforward.FeedforwardNetwork, train, test Source, o Options) error {
	if net.Len() == 0 {
		return errors.New("fit: empty network")
	}
	if o.Epochs <= 0 {
		o.Epochs = 1
	}
	if o.Workers <= 0 {
		o.Workers = sequence.DefaultWorkers()
	}
	if o.Significance == 0 {
		o.Significance = 95
	}
	run := uuid.New()

	best, err := Evaluate(net, test, o.Workers, o.Significance)
	if err != nil {
		return err
	}
	println("run", run.String(), "initial success", best, "%")

	order := net.Shuffle(false)
	for e := 0; e < o.Epochs; e++ {
		worst := order[e%net.Len()]

		var tally datasets.Tally
		tally.Init()
		digest := parallel.NewDigest(train.Samples())
		var pos int
		var epochErr error
		for res := range sequence.Prefetch(train, o.Workers, o.MaxQueue) {
			if epochErr != nil {
				// the queue must be drained even after a failed batch
				continue
			}
			if res.Err != nil {
				epochErr = errors.Wrapf(res.Err, "fit: epoch %d", e)
				continue
			}
			b := res.Batch
			parallel.ForEach(len(b.Samples), o.Workers, func(j int) {
				input := &b.Images[j]
				output := feedforward.SingleValue(b.Labels[j])
				net.Tally(input, output, worst, &tally, func(i, k feedforward.FeedforwardNetworkInput) bool {
					return errorAbs(i.Feature(0), uint32(output)) < errorAbs(k.Feature(0), uint32(output))
				})
			})
			for j, sample := range b.Samples {
				digest.MustPut(pos+j, uint32(sample))
			}
			pos += len(b.Samples)
		}
		if epochErr != nil {
			return epochErr
		}
		if !digest.Complete() {
			return errors.Errorf("fit: epoch %d covered %d of %d samples", e, pos, train.Samples())
		}
		fmt.Printf("%x\n", digest.Sum())

		h := o.Solver
		if h.Threads <= 0 {
			h.Threads = o.Workers
		}
		if h.InitialLimit <= 0 {
			h.InitialLimit = 1000 + 4*tally.Len()
		}
		h.SetLogger("solutions." + run.String() + ".txt")
		undo, err := trainWorst(net, worst, &tally, &h)
		tally.Free()
		if err != nil {
			return errors.Wrapf(err, "fit: epoch %d unit %d", e, worst)
		}

		success, err := Evaluate(net, test, o.Workers, o.Significance)
		if err != nil {
			return err
		}
		println("run", run.String(), "epoch", e, "unit", worst, "success", success, "%")
		if success > best {
			best = success
			checkpoint(net, success, o.DstModel)
		} else if undo != nil {
			undo()
		}

		if ee, ok := train.(sequence.EpochEnder); ok {
			ee.EpochEnd(e)
		}
		if best >= 100 {
			break
		}
	}
	return nil
}

// Evaluate measures network accuracy on a statistically sufficient sample of
// the test sequence, returning whole percent correct.
func Evaluate(net *feedforward.FeedforwardNetwork, test Source, workers int, significance byte) (int, error) {
	total := test.Samples()
	if total == 0 {
		return 0, errors.New("evaluate: empty sequence")
	}
	need := sampleSize(total, significance)
	var correct, seen uint64
	var firstErr error
	for res := range sequence.Prefetch(test, workers, 0) {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		if int(seen) >= need {
			// enough samples, drain the rest of the epoch
			continue
		}
		b := res.Batch
		var c uint64
		parallel.ForEach(len(b.Labels), workers, func(j int) {
			out := net.Infer(&b.Images[j]).Feature(0) & 1
			if out == uint32(b.Labels[j])&1 {
				atomic.AddUint64(&c, 1)
			}
		})
		correct += c
		seen += uint64(len(b.Labels))
	}
	if firstErr != nil {
		return 0, errors.Wrap(firstErr, "evaluate")
	}
	return int(100 * correct / seen), nil
}

func checkpoint(net *feedforward.FeedforwardNetwork, success int, dstmodel string) {
	if dstmodel == "" {
		dstmodel = "output." + fmt.Sprint(success) + ".json.lzw"
	}
	if err := net.WriteCompressedWeightsToFile(dstmodel); err != nil {
		println(err.Error())
	}
}

func errorAbs(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
