package postag

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/dong4325/ltp/perceptron"
)

// Gold corpus format: UTF-8 text, one sentence per line, whitespace-separated
// `word/tag` tokens. The tag follows the rightmost '/', so words may contain
// '/' themselves. Blank lines are skipped.

// LoadGold parses a gold corpus into one Sample per non-blank line. Lines are
// parsed over a bounded worker pool (see WithConcurrency) but each worker
// writes into a slot pre-assigned by line position, so the returned samples
// always follow input line order.
//
// In strict mode (the default) a malformed token or unknown tag fails the
// load with a line-numbered error; in lenient mode the offending line is
// skipped and logged.
func (d *Definition) LoadGold(r io.Reader) ([]perceptron.Sample, error) {
	type line struct {
		num  int
		text string
	}
	var lines []line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for num := 1; scanner.Scan(); num++ {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, line{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading corpus")
	}

	samples := make([]perceptron.Sample, len(lines))
	skipped := make([]bool, len(lines))
	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for i, ln := range lines {
		i, ln := i, ln // pre-Go 1.22 per-iteration loop variable copies
		g.Go(func() error {
			sample, err := d.parseLine(ln.text)
			if err != nil {
				if d.lenient {
					klog.Warningf("skipping corpus line %d: %v", ln.num, err)
					skipped[i] = true
					return nil
				}
				return errors.WithMessagef(err, "line %d", ln.num)
			}
			samples[i] = sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nskipped := 0
	if d.lenient {
		kept := samples[:0]
		for i, sample := range samples {
			if skipped[i] {
				nskipped++
				continue
			}
			kept = append(kept, sample)
		}
		samples = kept
	}
	klog.V(1).Infof("loaded %d gold samples (%d lines skipped)", len(samples), nskipped)
	return samples, nil
}

// LoadGoldFile memory-maps the corpus at path and parses it with LoadGold.
func (d *Definition) LoadGoldFile(path string) ([]perceptron.Sample, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening corpus %q", path)
	}
	defer r.Close()
	samples, err := d.LoadGold(io.NewSectionReader(r, 0, int64(r.Len())))
	return samples, errors.WithMessagef(err, "corpus %q", path)
}

// parseLine splits one sentence into words and gold label indices and runs
// allocating feature extraction over the words.
func (d *Definition) parseLine(text string) (perceptron.Sample, error) {
	tokens := strings.Fields(text)
	words := make([]string, 0, len(tokens))
	labels := make([]int, 0, len(tokens))
	for _, token := range tokens {
		cut := strings.LastIndexByte(token, '/')
		if cut < 0 {
			return perceptron.Sample{}, errors.Errorf("token %q has no /tag", token)
		}
		word, tag := token[:cut], token[cut+1:]
		if word == "" {
			return perceptron.Sample{}, errors.Errorf("token %q has an empty word", token)
		}
		if d.normalize {
			word = d.form.String(word)
		}
		index, err := d.labels.IndexOf(tag)
		if err != nil {
			return perceptron.Sample{}, err
		}
		words = append(words, word)
		labels = append(labels, index)
	}
	return perceptron.Sample{Features: Features(words), Labels: labels}, nil
}
