// spans.go — byte spans for diagnostics
//
// Every token carries a Span, and every error produced by the compiler pairs
// a message with a Span (or a merge of several). Spans are half-open byte
// intervals [Start, End) into the original UTF-8 source. Line/column
// coordinates are derived on demand from the source text when an error is
// rendered; they are never stored.

package grass

// Span is a half-open byte interval [Start, End) in the original source text.
type Span struct {
	Start int // inclusive
	End   int // exclusive
}

// Merge returns the smallest span covering both s and o. Merging with the
// zero span returns the other operand unchanged.
func (s Span) Merge(o Span) Span {
	if s == (Span{}) {
		return o
	}
	if o == (Span{}) {
		return s
	}
	if o.Start < s.Start {
		s.Start = o.Start
	}
	if o.End > s.End {
		s.End = o.End
	}
	return s
}

// Subspan returns the sub-interval [start, end) relative to s.Start. Used
// when a speculatively read identifier is re-emitted as individual character
// tokens.
func (s Span) Subspan(start, end int) Span {
	return Span{Start: s.Start + start, End: s.Start + end}
}

// lineCol maps a byte offset to 1-based line and column coordinates in src.
// Offsets past the end of the source are clamped.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// mergeTokenSpans returns the span covering a run of tokens, or the zero
// span for an empty run.
func mergeTokenSpans(toks []Token) Span {
	var sp Span
	for _, t := range toks {
		sp = sp.Merge(t.Pos)
	}
	return sp
}
