// Package manifest reads the CSV mapping image filenames to binary labels
// and exposes the table as a shuffled batch sequence.
package manifest

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

// Manifest holds the parallel path and label slices parsed from the CSV.
type Manifest struct {
	Paths  []string
	Labels []uint8
}

// Load parses a two-column CSV (image filename, binary label) and joins the
// filenames with imgdir. The first row is a header. Empty filenames and
// labels other than 0 or 1 are errors.
func Load(path, imgdir string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open manifest")
	}
	defer f.Close()

	df, err := imports.LoadFromCSV(context.Background(), f, imports.CSVLoadOptions{
		TrimLeadingSpace: true,
		InferDataTypes:   false,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "parse manifest %q", path)
	}
	if len(df.Series) < 2 {
		return nil, errors.Errorf("manifest %q: need 2 columns, have %d", path, len(df.Series))
	}

	names, labels := df.Series[0], df.Series[1]
	n := df.NRows()
	m := &Manifest{
		Paths:  make([]string, 0, n),
		Labels: make([]uint8, 0, n),
	}
	for i := 0; i < n; i++ {
		name := strings.TrimSpace(fmt.Sprint(names.Value(i)))
		if name == "" || name == "<nil>" {
			return nil, errors.Errorf("manifest %q row %d: empty filename", path, i+1)
		}
		raw := strings.TrimSpace(fmt.Sprint(labels.Value(i)))
		label, err := strconv.ParseUint(raw, 10, 8)
		if err != nil || label > 1 {
			return nil, errors.Errorf("manifest %q row %d: label %q is not 0 or 1", path, i+1, raw)
		}
		m.Paths = append(m.Paths, filepath.Join(imgdir, name))
		m.Labels = append(m.Labels, uint8(label))
	}
	return m, nil
}

// Len returns the number of samples.
func (m *Manifest) Len() int {
	return len(m.Paths)
}

// Split deterministically shuffles the manifest and carves off frac of it
// into the second return, for held-out evaluation.
func (m *Manifest) Split(frac float64, seed int64) (train, test *Manifest) {
	idx := make([]int, m.Len())
	for i := range idx {
		idx[i] = i
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	cut := int(float64(m.Len()) * frac)
	if cut < 0 {
		cut = 0
	}
	if cut > m.Len() {
		cut = m.Len()
	}
	test = m.pick(idx[:cut])
	train = m.pick(idx[cut:])
	return
}

// Balance oversamples the minority class by duplicating its rows until both
// classes have equal counts.
func (m *Manifest) Balance(seed int64) *Manifest {
	var byClass [2][]int
	for i, l := range m.Labels {
		byClass[l] = append(byClass[l], i)
	}
	if len(byClass[0]) == 0 || len(byClass[1]) == 0 {
		return m.pick(concat(byClass[0], byClass[1]))
	}
	r := rand.New(rand.NewSource(seed))
	small, big := 0, 1
	if len(byClass[0]) > len(byClass[1]) {
		small, big = 1, 0
	}
	idx := concat(byClass[0], byClass[1])
	for n := len(byClass[big]) - len(byClass[small]); n > 0; n-- {
		idx = append(idx, byClass[small][r.Intn(len(byClass[small]))])
	}
	return m.pick(idx)
}

func concat(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func (m *Manifest) pick(idx []int) *Manifest {
	out := &Manifest{
		Paths:  make([]string, len(idx)),
		Labels: make([]uint8, len(idx)),
	}
	for i, j := range idx {
		out.Paths[i] = m.Paths[j]
		out.Labels[i] = m.Labels[j]
	}
	return out
}
