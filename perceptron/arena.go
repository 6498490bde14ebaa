package perceptron

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// Arena is an append-only text buffer that feature extraction reuses across
// sentences to amortize allocation. Extraction appends every feature's bytes
// contiguously and records [start,end) marks; once a sentence's appends are
// done, the marks are materialized either as owned strings (Text) or as
// zero-copy views into the arena (View).
//
// Only whole strings, runes and decimal numbers can be appended, so every
// range delimited by Pos marks is valid UTF-8 by construction. The buffer is
// unexported and never shrinks in place, which keeps views stable: growing
// the arena after a view was taken leaves the view pointing at the old
// backing array, still intact. Reset invalidates all outstanding views.
//
// An Arena is a single-owner resource; it must not be used from multiple
// goroutines at once.
type Arena struct {
	buf []byte
}

// Reset discards the arena's content but keeps its capacity. Views taken
// before Reset must no longer be used: subsequent appends overwrite their
// bytes in place.
func (a *Arena) Reset() { a.buf = a.buf[:0] }

// Len returns the number of bytes appended so far.
func (a *Arena) Len() int { return len(a.buf) }

// Pos returns the current append position, used as a range mark.
func (a *Arena) Pos() int { return len(a.buf) }

// AppendByte appends a single ASCII byte (feature markers only).
func (a *Arena) AppendByte(c byte) { a.buf = append(a.buf, c) }

// AppendString appends s.
func (a *Arena) AppendString(s string) { a.buf = append(a.buf, s...) }

// AppendRune appends the UTF-8 encoding of r.
func (a *Arena) AppendRune(r rune) { a.buf = utf8.AppendRune(a.buf, r) }

// AppendInt appends the decimal representation of n.
func (a *Arena) AppendInt(n int) { a.buf = strconv.AppendInt(a.buf, int64(n), 10) }

// Text returns an owned copy of the bytes in [start,end).
func (a *Arena) Text(start, end int) string {
	return string(a.buf[start:end])
}

// View returns the bytes in [start,end) as a string without copying. The
// result aliases the arena and is valid until Reset. Both offsets must be
// Pos marks taken between appends, so the range is always whole, valid text.
func (a *Arena) View(start, end int) string {
	if start == end {
		return ""
	}
	return unsafe.String(&a.buf[start], end-start)
}
