package postag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/dong4325/ltp/perceptron"
)

// TestLoadGoldRoundTrip verifies parsing one annotated line yields the same
// feature sets as extracting the words directly, plus the resolved labels.
func TestLoadGoldRoundTrip(t *testing.T) {
	d, err := New([]string{"r", "v", "y"})
	require.NoError(t, err)

	samples, err := d.LoadGold(strings.NewReader("他/r 来/v 了/y\n"))
	require.NoError(t, err)
	require.Len(t, samples, 1)

	assert.Equal(t, []int{0, 1, 2}, samples[0].Labels)
	assert.Equal(t, Features([]string{"他", "来", "了"}), samples[0].Features)
}

// TestLoadGoldRightmostSlash verifies the tag is split off at the rightmost
// '/', so words may contain '/'.
func TestLoadGoldRightmostSlash(t *testing.T) {
	d, err := New([]string{"m", "wp"})
	require.NoError(t, err)

	samples, err := d.LoadGold(strings.NewReader("3/4/m ！/wp\n"))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, []int{0, 1}, samples[0].Labels)
	assert.Equal(t, Features([]string{"3/4", "！"}), samples[0].Features)
}

// TestLoadGoldSkipsBlankLines verifies empty and whitespace-only lines do not
// produce samples.
func TestLoadGoldSkipsBlankLines(t *testing.T) {
	d, err := New([]string{"v"})
	require.NoError(t, err)

	corpus := "\n来/v\n   \n\t\n去/v\n\n"
	samples, err := d.LoadGold(strings.NewReader(corpus))
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

// TestLoadGoldMalformedToken verifies strict mode fails with the original
// line number of the bad token.
func TestLoadGoldMalformedToken(t *testing.T) {
	d, err := New([]string{"v"})
	require.NoError(t, err)

	corpus := "来/v\n\nbroken\n去/v\n"
	_, err = d.LoadGold(strings.NewReader(corpus))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), `"broken"`)
}

// TestLoadGoldUnknownLabel verifies strict mode surfaces the distinct
// unknown-label error for out-of-vocabulary tags.
func TestLoadGoldUnknownLabel(t *testing.T) {
	d, err := New([]string{"v"})
	require.NoError(t, err)

	_, err = d.LoadGold(strings.NewReader("来/v\n了/y\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, perceptron.ErrUnknownLabel))
	assert.Contains(t, err.Error(), "line 2")
}

// TestLoadGoldLenient verifies lenient mode drops bad lines but keeps the
// rest, still in input order.
func TestLoadGoldLenient(t *testing.T) {
	d, err := New([]string{"v", "y"})
	require.NoError(t, err)
	d.Lenient(true)

	corpus := "来/v\nbroken\n了/y\n去/unknown\n走/v\n"
	samples, err := d.LoadGold(strings.NewReader(corpus))
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, []int{0}, samples[0].Labels)
	assert.Equal(t, []int{1}, samples[1].Labels)
	assert.Equal(t, []int{0}, samples[2].Labels)
}

// TestLoadGoldOrderPreserved verifies parallel parsing reassembles samples in
// input line order for several pool sizes. Each line carries its own tag so a
// sample's label identifies its source line.
func TestLoadGoldOrderPreserved(t *testing.T) {
	const n = 64
	labels := make([]string, n)
	var corpus strings.Builder
	for i := 0; i < n; i++ {
		labels[i] = fmt.Sprintf("t%02d", i)
		fmt.Fprintf(&corpus, "w%02d/%s\n", i, labels[i])
	}

	for _, workers := range []int{1, 2, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			d, err := New(labels)
			require.NoError(t, err)
			d.WithConcurrency(workers)

			samples, err := d.LoadGold(strings.NewReader(corpus.String()))
			require.NoError(t, err)
			require.Len(t, samples, n)
			for i, sample := range samples {
				require.Equal(t, []int{i}, sample.Labels, "sample %d out of order", i)
			}
		})
	}
}

// TestLoadGoldFile verifies the mmap-backed path parses a corpus written to
// disk identically to the reader path.
func TestLoadGoldFile(t *testing.T) {
	d, err := New([]string{"r", "v", "y"})
	require.NoError(t, err)

	corpus := "他/r 来/v 了/y\n他/r 走/v\n"
	path := filepath.Join(t.TempDir(), "gold.txt")
	require.NoError(t, os.WriteFile(path, []byte(corpus), 0o644))

	fromFile, err := d.LoadGoldFile(path)
	require.NoError(t, err)
	fromReader, err := d.LoadGold(strings.NewReader(corpus))
	require.NoError(t, err)
	assert.Equal(t, fromReader, fromFile)
}

// TestLoadGoldFileMissing verifies a missing corpus file is a wrapped error
// naming the path.
func TestLoadGoldFileMissing(t *testing.T) {
	d, err := New([]string{"v"})
	require.NoError(t, err)

	_, err = d.LoadGoldFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}

// TestLoadGoldNormalizer verifies WithNormalizer folds decomposed input to
// the requested form before extraction, and that the default leaves words
// untouched.
func TestLoadGoldNormalizer(t *testing.T) {
	// "é" as 'e' + combining acute: two runes before NFC, one after.
	decomposed := "é/x\n"

	plain, err := New([]string{"x"})
	require.NoError(t, err)
	samples, err := plain.LoadGold(strings.NewReader(decomposed))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Contains(t, samples[0].Features[0], "f2")

	nfc, err := New([]string{"x"})
	require.NoError(t, err)
	nfc.WithNormalizer(norm.NFC)
	samples, err = nfc.LoadGold(strings.NewReader(decomposed))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Contains(t, samples[0].Features[0], "f1")
	assert.Contains(t, samples[0].Features[0], "2é")
}

// TestLoadGoldEmptyWord verifies a token whose word part is empty is rejected
// rather than crashing feature extraction.
func TestLoadGoldEmptyWord(t *testing.T) {
	d, err := New([]string{"v"})
	require.NoError(t, err)

	_, err = d.LoadGold(strings.NewReader("/v\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty word")
}
