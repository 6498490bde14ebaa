package perceptron

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownLabel reports a label lookup outside the closed vocabulary.
// Corpora are expected to be pre-validated against the vocabulary, so callers
// usually treat this as fatal for the operation that hit it.
var ErrUnknownLabel = errors.New("unknown label")

// LabelSet is a closed bijection between label strings and dense indices
// 0..Len(). It is built once from a fixed vocabulary and never mutated, so it
// is safe to share across goroutines.
type LabelSet struct {
	toLabel []string
	toIndex map[string]int
}

// NewLabelSet builds the bijection from labels, preserving their order as
// index order. Duplicate labels are rejected.
func NewLabelSet(labels []string) (*LabelSet, error) {
	s := &LabelSet{
		toLabel: make([]string, len(labels)),
		toIndex: make(map[string]int, len(labels)),
	}
	copy(s.toLabel, labels)
	for i, label := range labels {
		if prev, ok := s.toIndex[label]; ok {
			return nil, errors.Errorf("duplicate label %q at indices %d and %d", label, prev, i)
		}
		s.toIndex[label] = i
	}
	return s, nil
}

// Labels returns a copy of the vocabulary in index order.
func (s *LabelSet) Labels() []string {
	out := make([]string, len(s.toLabel))
	copy(out, s.toLabel)
	return out
}

// Len returns the vocabulary size.
func (s *LabelSet) Len() int { return len(s.toLabel) }

// IndexOf returns the index of label, or an error wrapping ErrUnknownLabel if
// label is not part of the vocabulary.
func (s *LabelSet) IndexOf(label string) (int, error) {
	i, ok := s.toIndex[label]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownLabel, "label %q", label)
	}
	return i, nil
}

// At returns the label at index. The index must be in [0, Len()); anything
// else is a contract violation and panics.
func (s *LabelSet) At(index int) string {
	if index < 0 || index >= len(s.toLabel) {
		panic(fmt.Sprintf("perceptron: label index %d out of range [0,%d)", index, len(s.toLabel)))
	}
	return s.toLabel[index]
}
