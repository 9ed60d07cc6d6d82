package feedforward

import "compress/lzw"
import "encoding/json"
import "io"
import "os"

import "github.com/pkg/errors"

import "github.com/neurlang/batchseq/hashtron"

// WriteCompressedWeightsToFile writes model weights to an lzw compressed json file
func (f FeedforwardNetwork) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create weights file")
	}
	err = f.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCompressedWeights writes model weights to a writer
func (f FeedforwardNetwork) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	flat := make([]hashtron.Hashtron, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		flat = append(flat, *f.GetHashtron(i))
	}
	if err := json.NewEncoder(lw).Encode(flat); err != nil {
		return errors.Wrap(err, "encode weights")
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from an lzw compressed json file
func (f *FeedforwardNetwork) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "open weights file")
	}
	defer file.Close()
	return f.ReadCompressedWeights(file)
}

// ReadCompressedWeights reads model weights from a reader. The network must
// already have the architecture the weights were written from.
func (f *FeedforwardNetwork) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	var flat []hashtron.Hashtron
	if err := json.NewDecoder(lr).Decode(&flat); err != nil {
		return errors.Wrap(err, "decode weights")
	}
	if len(flat) != f.Len() {
		return errors.Errorf("weights hold %d hashtrons, network has %d", len(flat), f.Len())
	}
	for i := range flat {
		*f.GetHashtron(i) = flat[i]
	}
	return nil
}
