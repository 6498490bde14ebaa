// Package perceptron defines the seam between task definitions (POS tagging,
// and eventually other sequence-labeling tasks in the same family) and the
// averaged-perceptron engine that trains and decodes with them.
//
// A Definition owns the label vocabulary and the feature encoding for one
// task; the engine only ever sees label indices and feature-key strings, and
// uses the keys to look up per-label weights in its own table. Definitions do
// no scoring and store no weights.
package perceptron

import "io"

// Sample is one labeled sentence prepared for training: per-token feature-key
// sets paired with the gold label index of each token. Both slices have the
// sentence's length.
type Sample struct {
	Features [][]string
	Labels   []int
}

// Definition is the capability a task exposes to the perceptron engine:
// vocabulary access, feature extraction (allocating and arena-backed),
// gold-corpus loading, prediction formatting, and evaluation.
//
// The type parameter F is the definition's auxiliary payload, extra per-call
// data some tasks need to carry from extraction to prediction (for example a
// segmentation task's raw-character view). Tasks without one use a struct{}
// alias such as postag.NoFragment.
type Definition[F any] interface {
	// Labels returns a copy of the label vocabulary in index order.
	Labels() []string
	// NumLabels returns the vocabulary size.
	NumLabels() int
	// LabelIndex resolves a label string to its dense index. Labels outside
	// the vocabulary fail with an error wrapping ErrUnknownLabel.
	LabelIndex(label string) (int, error)
	// LabelAt returns the label for a valid index; it panics on an
	// out-of-range index, which is a programming error, not bad input.
	LabelAt(index int) string

	// ParseFeatures returns per-token feature-key sets for words, plus the
	// definition's auxiliary payload. Every returned string is freshly
	// allocated and owned by the caller.
	ParseFeatures(words []string) (F, [][]string)
	// ParseFeaturesInto is ParseFeatures with the feature bytes appended to
	// arena instead of allocated; returned strings alias arena memory and
	// stay valid until the arena is Reset. Output is content-identical to
	// ParseFeatures for the same words.
	ParseFeaturesInto(words []string, arena *Arena) (F, [][]string, error)

	// LoadGold reads a word/tag annotated corpus and returns one Sample per
	// non-blank line, in input line order.
	LoadGold(r io.Reader) ([]Sample, error)

	// Predict renders predicted label indices as label strings.
	Predict(indices []int) []string
	// Evaluate compares predictions against gold labels position-wise.
	Evaluate(predicts, golds []int) (Eval, error)
}
