package postag

import (
	"github.com/dong4325/ltp/perceptron"
	"github.com/pkg/errors"
)

// The feature templates, over a two-word window on each side:
//
//	word-unigram          w[-2], w[-1], w[0], w[+1], w[+2]
//	word-bigram           w[-2]w[-1], w[-1]w[0], w[0]w[+1], w[+1]w[+2], w[-2]w[0], w[0]w[+2]
//	word-trigram          w[-1]w[0]w[+1]
//	last-first-character  ch[0,0]ch[0,n], ch[-1,n]ch[0,0], ch[0,-1]ch[1,0]
//	length                rune count of w[0]
//	prefix                first three runes of w[0]
//	suffix                last three runes of w[0]
//
// Each feature is encoded as a one-byte marker followed by its payload. The
// markers, the emission order and the context conditions are a model
// compatibility surface: weight tables trained against this encoding match it
// byte for byte, so none of it may be "equivalently" rearranged.

// maxTokenFeatures is the feature count for a token with full context on both
// sides and at least three runes; isolated single-rune tokens emit as few as 5.
const maxTokenFeatures = 22

var (
	prefixMarkers = [3]byte{'c', 'd', 'e'}
	suffixMarkers = [3]byte{'f', 'g', 'h'}
)

// span marks one feature's [start,end) byte range in an arena.
type span struct {
	start, end int
}

// emitter appends encoded features to an arena and records their spans.
type emitter struct {
	a     *perceptron.Arena
	spans []span
}

func (e *emitter) words(marker byte, ws ...string) {
	start := e.a.Pos()
	e.a.AppendByte(marker)
	for _, w := range ws {
		e.a.AppendString(w)
	}
	e.spans = append(e.spans, span{start, e.a.Pos()})
}

func (e *emitter) runes(marker byte, rs ...rune) {
	start := e.a.Pos()
	e.a.AppendByte(marker)
	for _, r := range rs {
		e.a.AppendRune(r)
	}
	e.spans = append(e.spans, span{start, e.a.Pos()})
}

func (e *emitter) length(marker byte, n int) {
	start := e.a.Pos()
	e.a.AppendByte(marker)
	e.a.AppendInt(n)
	e.spans = append(e.spans, span{start, e.a.Pos()})
}

// appendFeatures walks the template table for every token of the sentence,
// appending each feature's bytes to the arena and returning the per-token
// spans. Tokens must be non-empty.
func appendFeatures(words []string, a *perceptron.Arena) [][]span {
	n := len(words)
	chars := make([][]rune, n)
	for i, w := range words {
		chars[i] = []rune(w)
	}

	out := make([][]span, n)
	for i, cur := range words {
		last := n - i - 1
		cs := chars[i]
		e := emitter{a: a, spans: make([]span, 0, maxTokenFeatures)}

		// w[0]
		e.words('2', cur)
		// ch[0,0]ch[0,n]
		e.runes('c', cs[0], cs[len(cs)-1])
		// length
		e.length('f', len(cs))
		// prefix
		for k := 0; k < len(cs) && k < 3; k++ {
			e.runes(prefixMarkers[k], cs[k])
		}
		// suffix, from the end inward
		for k := 0; k < len(cs) && k < 3; k++ {
			e.runes(suffixMarkers[k], cs[len(cs)-1-k])
		}

		if i > 0 {
			prev, pcs := words[i-1], chars[i-1]
			e.words('1', prev)      // w[-1]
			e.words('6', prev, cur) // w[-1]w[0]
			// ch[-1,n]ch[0,0]
			e.runes('d', pcs[len(pcs)-1], cs[0])

			if i > 1 {
				prev2 := words[i-2]
				e.words('0', prev2)       // w[-2]
				e.words('5', prev2, prev) // w[-2]w[-1]
				e.words('9', prev2, cur)  // w[-2]w[0]
			}
		}

		if last > 0 {
			next, ncs := words[i+1], chars[i+1]
			e.words('3', next)      // w[+1]
			e.words('7', cur, next) // w[0]w[+1]
			// ch[0,-1]ch[1,0]
			e.runes('e', cs[len(cs)-1], ncs[0])

			if last > 1 {
				next2 := words[i+2]
				e.words('4', next2)       // w[+2]
				e.words('8', next, next2) // w[+1]w[+2]
				e.words('a', cur, next2)  // w[0]w[+2]
			}
		}

		if i > 0 && last > 0 {
			// w[-1]w[0]w[+1]
			e.words('b', words[i-1], cur, words[i+1])
		}

		out[i] = e.spans
	}
	return out
}

// Features returns the per-token feature keys for a sentence. Every returned
// string is freshly allocated; the result is content-identical to
// FeaturesInto for the same words.
func Features(words []string) [][]string {
	var a perceptron.Arena
	spans := appendFeatures(words, &a)
	out := make([][]string, len(spans))
	for i, ss := range spans {
		keys := make([]string, len(ss))
		for j, s := range ss {
			keys[j] = a.Text(s.start, s.end)
		}
		out[i] = keys
	}
	return out
}

// FeaturesInto appends every feature's bytes to arena and returns per-token
// keys that alias arena memory. The caller owns the arena: the returned
// strings are valid until the arena is Reset, and the arena must not be
// shared across goroutines while they are in use. Reusing one growing arena
// across many sentences is what this mode is for.
func FeaturesInto(words []string, arena *perceptron.Arena) ([][]string, error) {
	if arena == nil {
		return nil, errors.New("postag: nil arena")
	}
	spans := appendFeatures(words, arena)
	out := make([][]string, len(spans))
	for i, ss := range spans {
		keys := make([]string, len(ss))
		for j, s := range ss {
			keys[j] = arena.View(s.start, s.end)
		}
		out[i] = keys
	}
	return out, nil
}
