package manifest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "labels.csv")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "filename,label\ncat.1.png,0\ndog.1.png,1\ncat.2.png,0\n")
	m, err := Load(csv, dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 3 {
		t.Fatalf("parsed %d rows, want 3", m.Len())
	}
	if m.Labels[1] != 1 || m.Labels[0] != 0 {
		t.Error("labels out of order")
	}
	if m.Paths[0] != filepath.Join(dir, "cat.1.png") {
		t.Errorf("path not joined with image dir: %q", m.Paths[0])
	}
}

func TestLoadRejectsBadRows(t *testing.T) {
	dir := t.TempDir()
	for _, body := range []string{
		"filename,label\ncat.png,2\n",
		"filename,label\ncat.png,yes\n",
		"filename,label\n,1\n",
	} {
		if _, err := Load(writeCSV(t, dir, body), dir); err == nil {
			t.Errorf("accepted invalid manifest %q", body)
		}
	}
	if _, err := Load(filepath.Join(dir, "missing.csv"), dir); err == nil {
		t.Error("missing manifest file must error")
	}
}

func TestSplit(t *testing.T) {
	m := &Manifest{}
	for i := 0; i < 100; i++ {
		m.Paths = append(m.Paths, fmt.Sprintf("img%d.png", i))
		m.Labels = append(m.Labels, uint8(i%2))
	}
	train, test := m.Split(0.2, 7)
	if train.Len() != 80 || test.Len() != 20 {
		t.Fatalf("split sizes %d/%d, want 80/20", train.Len(), test.Len())
	}
	seen := make(map[string]bool)
	for _, p := range append(append([]string{}, train.Paths...), test.Paths...) {
		if seen[p] {
			t.Fatalf("path %q in both splits", p)
		}
		seen[p] = true
	}
	// determinism
	train2, _ := m.Split(0.2, 7)
	for i := range train.Paths {
		if train.Paths[i] != train2.Paths[i] {
			t.Fatal("equal seeds must split identically")
		}
	}
}

func TestSplitTinyManifest(t *testing.T) {
	m := &Manifest{
		Paths:  []string{"a", "b", "c", "d", "e"},
		Labels: []uint8{0, 1, 0, 1, 0},
	}
	// under 10 rows a 0.1 fraction carves off nothing; callers must
	// handle the empty held-out set
	train, test := m.Split(0.1, 3)
	if test.Len() != 0 {
		t.Fatalf("tiny manifest split off %d held-out rows, want 0", test.Len())
	}
	if train.Len() != 5 {
		t.Fatalf("train kept %d rows, want all 5", train.Len())
	}
}

func TestBalance(t *testing.T) {
	m := &Manifest{
		Paths:  []string{"a", "b", "c", "d", "e"},
		Labels: []uint8{0, 0, 0, 0, 1},
	}
	b := m.Balance(1)
	var counts [2]int
	for _, l := range b.Labels {
		counts[l]++
	}
	if counts[0] != counts[1] {
		t.Errorf("unbalanced after Balance: %v", counts)
	}
}

func writeImages(t *testing.T, dir string, n int) string {
	t.Helper()
	var body = "filename,label\n"
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("img%d.png", i)
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		img := image.NewGray(image.Rect(0, 0, 8, 8))
		img.SetGray(i%8, i/8%8, color.Gray{Y: 255})
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
		body += fmt.Sprintf("%s,%d\n", name, i%2)
	}
	return writeCSV(t, dir, body)
}

func TestSequenceCoversEpochOnce(t *testing.T) {
	dir := t.TempDir()
	csv := writeImages(t, dir, 25)
	m, err := Load(csv, dir)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := NewSequence(m, 10, 42, 4)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Len() != 3 {
		t.Fatalf("25 samples at batch 10 should give 3 batches, got %d", seq.Len())
	}

	visited := make(map[int]int)
	var total int
	for i := 0; i < seq.Len(); i++ {
		b, err := seq.Batch(i)
		if err != nil {
			t.Fatal(err)
		}
		if len(b.Images) != len(b.Labels) {
			t.Fatal("image and label batch lengths differ")
		}
		total += len(b.Labels)
		lo := 10 * i
		for j := range b.Labels {
			visited[seq.SampleAt(lo+j)]++
		}
	}
	if total != 25 {
		t.Fatalf("epoch delivered %d samples, want 25", total)
	}
	for s, c := range visited {
		if c != 1 {
			t.Errorf("sample %d visited %d times", s, c)
		}
	}
}

func TestSequenceReshufflesBetweenEpochs(t *testing.T) {
	dir := t.TempDir()
	csv := writeImages(t, dir, 32)
	m, err := Load(csv, dir)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := NewSequence(m, 8, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	first := make([]int, 32)
	for i := range first {
		first[i] = seq.SampleAt(i)
	}
	seq.EpochEnd(0)
	var same int
	for i := range first {
		if seq.SampleAt(i) == first[i] {
			same++
		}
	}
	if same == 32 {
		t.Error("epoch end did not reshuffle")
	}
}

func TestSequenceErrors(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "filename,label\nmissing.png,0\n")
	m, err := Load(csv, dir)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := NewSequence(m, 4, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := seq.Batch(0); err == nil {
		t.Error("batch over a missing image must error")
	}
	if _, err := seq.Batch(99); err == nil {
		t.Error("out of range batch index must error")
	}
	if _, err := NewSequence(m, 0, 0, 1); err == nil {
		t.Error("zero batch size must error")
	}
}
