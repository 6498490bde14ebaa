// Package postag implements the part-of-speech tagging Definition for the
// averaged-perceptron engine: the POS feature-template encoding, the label
// vocabulary, and gold `word/tag` corpus loading.
package postag

import (
	"runtime"

	"golang.org/x/text/unicode/norm"

	"github.com/dong4325/ltp/perceptron"
)

// NoFragment is the POS definition's auxiliary payload: POS tagging carries
// nothing extra between extraction and prediction.
type NoFragment = struct{}

// Definition is the POS tagging task. Create one with New; the zero value is
// not usable. A Definition is immutable after its chained setters have been
// applied and is then safe for concurrent use.
type Definition struct {
	labels *perceptron.LabelSet

	concurrency int
	lenient     bool
	normalize   bool
	form        norm.Form
}

// Compile time assert that Definition satisfies the engine seam.
var _ perceptron.Definition[NoFragment] = (*Definition)(nil)

// New creates a POS Definition over the given closed tag vocabulary. The
// order of labels fixes their indices. Duplicate labels are an error.
func New(labels []string) (*Definition, error) {
	set, err := perceptron.NewLabelSet(labels)
	if err != nil {
		return nil, err
	}
	return &Definition{
		labels:      set,
		concurrency: runtime.GOMAXPROCS(0),
	}, nil
}

// WithConcurrency bounds the corpus-loading worker pool to n goroutines.
// Values below 1 reset to the default (GOMAXPROCS).
func (d *Definition) WithConcurrency(n int) *Definition {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	d.concurrency = n
	return d
}

// Lenient controls malformed-corpus handling: when true, LoadGold skips lines
// that fail to parse (logging each) instead of failing the whole load. The
// default is strict, matching the closed-vocabulary assumption.
func (d *Definition) Lenient(on bool) *Definition {
	d.lenient = on
	return d
}

// WithNormalizer makes LoadGold apply the given Unicode normalization form to
// every word before feature extraction. Off by default: normalization changes
// feature bytes and therefore which models the output is compatible with.
func (d *Definition) WithNormalizer(f norm.Form) *Definition {
	d.normalize = true
	d.form = f
	return d
}

// Labels returns a copy of the tag vocabulary in index order.
func (d *Definition) Labels() []string { return d.labels.Labels() }

// NumLabels returns the tag vocabulary size.
func (d *Definition) NumLabels() int { return d.labels.Len() }

// LabelIndex resolves a tag to its index; unknown tags fail with an error
// wrapping perceptron.ErrUnknownLabel.
func (d *Definition) LabelIndex(label string) (int, error) { return d.labels.IndexOf(label) }

// LabelAt returns the tag at index, panicking if index is out of range.
func (d *Definition) LabelAt(index int) string { return d.labels.At(index) }

// ParseFeatures implements perceptron.Definition by delegating to Features.
func (d *Definition) ParseFeatures(words []string) (NoFragment, [][]string) {
	return NoFragment{}, Features(words)
}

// ParseFeaturesInto implements perceptron.Definition by delegating to
// FeaturesInto.
func (d *Definition) ParseFeaturesInto(words []string, arena *perceptron.Arena) (NoFragment, [][]string, error) {
	features, err := FeaturesInto(words, arena)
	return NoFragment{}, features, err
}

// Predict renders predicted label indices as tag strings.
func (d *Definition) Predict(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = d.labels.At(idx)
	}
	return out
}

// Evaluate compares predicted and gold label indices position-wise.
func (d *Definition) Evaluate(predicts, golds []int) (perceptron.Eval, error) {
	return perceptron.EvaluateTags(predicts, golds)
}
