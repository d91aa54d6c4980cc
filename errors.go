// errors.go — user-facing error values and caret-snippet rendering
//
// Every failure in the compiler — syntax, arity, binding, type, unit, domain
// or scope — is an *Error carrying a human-readable message and the byte span
// it concerns. Errors propagate synchronously as return values; nothing in
// the library panics on bad input.
//
// WrapErrorWithSource turns an *Error into a readable snippet with a caret
// pointing at the offending column:
//
//	Error: Undefined variable: $color.
//
//	   2 | a {
//	   3 |   color: $color;
//	       |          ^
//	   4 | }
//
// The snippet includes up to one line of context before and after the error,
// numbers the lines, and places the caret under the 1-based column. Output is
// plain text, suitable for logs and terminals.

package grass

import (
	"fmt"
	"strings"
)

// Error is the universal error payload: a message plus the source span it
// refers to. Span may cover a whole expression when the error concerns a
// range (e.g. an entire call).
type Error struct {
	Msg  string
	Span Span
}

func (e *Error) Error() string { return e.Msg }

// errSpan builds an *Error from a message and span.
func errSpan(msg string, sp Span) *Error {
	return &Error{Msg: msg, Span: sp}
}

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// the provided source. Errors that are not *Error are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (file path)
// included in the header line.
func WrapErrorWithName(err error, srcName, src string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	line, col := lineCol(src, e.Span.Start)
	return fmt.Errorf("%s", prettySnippet(src, srcName, line, col, e.Msg))
}

// prettySnippet builds the snippet with a header and a caret. It shows at
// most one previous and one next line when available. Coordinates are
// 1-based and clamped to the source bounds.
func prettySnippet(src, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "Error in %s at %d:%d: %s\n\n", name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "Error at %d:%d: %s\n\n", line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
