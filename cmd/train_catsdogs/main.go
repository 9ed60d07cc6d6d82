package main

import "flag"
import "os"
import "strconv"

import "github.com/joho/godotenv"

import "github.com/neurlang/batchseq/datasets/images"
import "github.com/neurlang/batchseq/datasets/manifest"
import "github.com/neurlang/batchseq/layer/conv2d"
import "github.com/neurlang/batchseq/layer/majpool2d"
import "github.com/neurlang/batchseq/net/feedforward"
import "github.com/neurlang/batchseq/trainer"

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// newNet builds the three block convolutional binary classifier over rasters.
func newNet() (net feedforward.FeedforwardNetwork) {
	const l0Dim = images.Size - 1

	net.NewLayer(l0Dim * l0Dim)
	net.NewCombiner(conv2d.MustNew(l0Dim, l0Dim, 16, 16, 1))
	net.NewLayer(16 * 16)
	net.NewCombiner(majpool2d.MustNew(4, 4, 4, 4, 1))
	net.NewLayer(16)
	net.NewCombiner(majpool2d.MustNew(2, 2, 2, 2, 1))
	net.NewLayer(4)
	net.NewCombiner(majpool2d.MustNew(1, 1, 2, 2, 1))
	net.NewLayer(1)
	return
}

func main() {
	// best effort .env defaults
	_ = godotenv.Load()

	csv := flag.String("csv", env("BATCHSEQ_CSV", ""), "two-column csv manifest (image file, 0/1 label)")
	imgdir := flag.String("imgdir", env("BATCHSEQ_IMGDIR", ""), "directory the manifest filenames are relative to")
	batchsize := flag.Int("batchsize", envInt("BATCHSEQ_BATCHSIZE", 32), "samples per batch")
	epochs := flag.Int("epochs", envInt("BATCHSEQ_EPOCHS", 100), "training epochs")
	workers := flag.Int("workers", envInt("BATCHSEQ_WORKERS", 0), "loader worker goroutines, 0 for CPU default")
	maxqueue := flag.Int("maxqueue", envInt("BATCHSEQ_MAXQUEUE", 0), "prefetched batch bound, 0 for twice the workers")
	seed := flag.Int64("seed", 42, "shuffle seed")
	dstmodel := flag.String("dstmodel", env("BATCHSEQ_DSTMODEL", ""), "model destination .json.lzw file")
	resume := flag.Bool("resume", false, "resume training from dstmodel")
	flag.Parse()

	if *csv == "" {
		println("a csv manifest is required, use -csv")
		os.Exit(1)
	}

	m, err := manifest.Load(*csv, *imgdir)
	if err != nil {
		panic(err.Error())
	}
	trainset, testset := m.Split(0.1, *seed)
	trainset = trainset.Balance(*seed)
	println("manifest:", m.Len(), "samples,", trainset.Len(), "balanced train,", testset.Len(), "test")

	trainseq, err := manifest.NewSequence(trainset, *batchsize, *seed, *workers)
	if err != nil {
		panic(err.Error())
	}
	testseq, err := manifest.NewSequence(testset, *batchsize, *seed, *workers)
	if err != nil {
		panic(err.Error())
	}

	net := newNet()
	trainer.Resume(&net, *resume, *dstmodel)

	var o trainer.Options
	o.Epochs = *epochs
	o.Workers = *workers
	o.MaxQueue = *maxqueue
	o.DstModel = *dstmodel
	o.Significance = 95

	// shuffle before solving attempts
	o.Solver.Shuffle = true
	o.Solver.Seed = true

	// restart when stuck
	o.Solver.DeadlineMs = 1000
	o.Solver.DeadlineRetry = 3

	// affects how fast is the modulo reduced
	o.Solver.Subtractor = 1

	o.Solver.EndWhenSolved = true

	if err := trainer.Fit(&net, trainseq, testseq, o); err != nil {
		panic(err.Error())
	}
}
