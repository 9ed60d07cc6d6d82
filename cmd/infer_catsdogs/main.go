package main

import "flag"
import "fmt"
import "os"
import "sync/atomic"

import "github.com/joho/godotenv"

import "github.com/neurlang/batchseq/datasets/images"
import "github.com/neurlang/batchseq/datasets/manifest"
import "github.com/neurlang/batchseq/layer/conv2d"
import "github.com/neurlang/batchseq/layer/majpool2d"
import "github.com/neurlang/batchseq/net/feedforward"
import "github.com/neurlang/batchseq/parallel"
import "github.com/neurlang/batchseq/sequence"

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newNet must mirror the training command's architecture for the weights to fit.
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
	srcmodel := flag.String("srcmodel", env("BATCHSEQ_DSTMODEL", ""), "trained model .json.lzw file")
	batchsize := flag.Int("batchsize", 32, "samples per batch")
	workers := flag.Int("workers", 0, "loader worker goroutines, 0 for CPU default")
	seed := flag.Int64("seed", 42, "split seed, must match training")
	verbose := flag.Bool("verbose", false, "print each file's prediction")
	flag.Parse()

	if *csv == "" || *srcmodel == "" {
		println("a csv manifest and a model are required, use -csv and -srcmodel")
		os.Exit(1)
	}

	m, err := manifest.Load(*csv, *imgdir)
	if err != nil {
		panic(err.Error())
	}
	_, testset := m.Split(0.1, *seed)
	if testset.Len() == 0 {
		// manifests under 10 rows split off an empty held-out set
		println("held-out split is empty, evaluating the full manifest")
		testset = m
	}
	if testset.Len() == 0 {
		println("manifest has no samples to evaluate")
		os.Exit(1)
	}

	seq, err := manifest.NewSequence(testset, *batchsize, *seed, *workers)
	if err != nil {
		panic(err.Error())
	}

	net := newNet()
	if err := net.ReadCompressedWeightsFromFile(*srcmodel); err != nil {
		panic(err.Error())
	}

	var correct, total atomic.Uint64
	for res := range sequence.Prefetch(seq, *workers, 0) {
		if res.Err != nil {
			panic(res.Err.Error())
		}
		b := res.Batch
		parallel.ForEach(len(b.Labels), *workers, func(j int) {
			out := net.Infer(&b.Images[j]).Feature(0) & 1
			if *verbose {
				fmt.Printf("%s: %d\n", testset.Paths[b.Samples[j]], out)
			}
			if out == uint32(b.Labels[j])&1 {
				correct.Add(1)
			}
			total.Add(1)
		})
	}
	fmt.Printf("accuracy: %d %% over %d samples\n", 100*correct.Load()/total.Load(), total.Load())
}
