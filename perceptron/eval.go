package perceptron

import "github.com/pkg/errors"

// Eval holds the three counts sequence-labeling metrics are computed from.
// For tagging tasks Predicted and Gold both equal the token count; span tasks
// in the same family fill them independently.
type Eval struct {
	Correct   int
	Predicted int
	Gold      int
}

// Add accumulates another Eval, for aggregating over many sentences.
func (e Eval) Add(o Eval) Eval {
	return Eval{
		Correct:   e.Correct + o.Correct,
		Predicted: e.Predicted + o.Predicted,
		Gold:      e.Gold + o.Gold,
	}
}

// Precision returns Correct/Predicted, or 0 when nothing was predicted.
func (e Eval) Precision() float64 {
	if e.Predicted == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Predicted)
}

// Recall returns Correct/Gold, or 0 when there is no gold data.
func (e Eval) Recall() float64 {
	if e.Gold == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Gold)
}

// F1 returns the harmonic mean of precision and recall.
func (e Eval) F1() float64 {
	p, r := e.Precision(), e.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// EvaluateTags compares predicted and gold label indices position-wise,
// the shared evaluation for tagging-style definitions. The two slices must
// have the same length (the sentence length); a mismatch is reported as an
// error rather than silently truncated.
func EvaluateTags(predicts, golds []int) (Eval, error) {
	if len(predicts) != len(golds) {
		return Eval{}, errors.Errorf("evaluate: %d predictions vs %d gold labels", len(predicts), len(golds))
	}
	correct := 0
	for i, p := range predicts {
		if p == golds[i] {
			correct++
		}
	}
	return Eval{Correct: correct, Predicted: len(predicts), Gold: len(golds)}, nil
}
