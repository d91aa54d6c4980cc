// token.go — positioned character tokens and the lookahead stream
//
// The compiler works over a buffer of single-character tokens, each tagged
// with its byte span in the original source. Tokens provides peeking with
// unlimited lookahead, and the readUntilClosing* helpers copy balanced
// sub-structures ((…), […], "…") verbatim so that delimiters inside them are
// never mistaken for top-level separators.

package grass

import "unicode"

// Token is a single source character with its span.
type Token struct {
	Kind rune
	Pos  Span
}

func newToken(kind rune, pos Span) Token { return Token{Kind: kind, Pos: pos} }

// Tokens is a peekable stream over a token buffer. Peeking never consumes;
// PeekAt supports arbitrary lookahead.
type Tokens struct {
	toks []Token
	i    int
}

func NewTokens(toks []Token) *Tokens { return &Tokens{toks: toks} }

// Peek returns the next token without consuming it.
func (t *Tokens) Peek() (Token, bool) { return t.PeekAt(0) }

// PeekAt returns the token n positions ahead without consuming anything.
func (t *Tokens) PeekAt(n int) (Token, bool) {
	if t.i+n >= len(t.toks) {
		return Token{}, false
	}
	return t.toks[t.i+n], true
}

// Next consumes and returns the next token.
func (t *Tokens) Next() (Token, bool) {
	if t.i >= len(t.toks) {
		return Token{}, false
	}
	tok := t.toks[t.i]
	t.i++
	return tok, true
}

// eofSpan is the zero-width span just past the last token, used for
// unexpected-end-of-input diagnostics.
func (t *Tokens) eofSpan() Span {
	if len(t.toks) == 0 {
		return Span{}
	}
	end := t.toks[len(t.toks)-1].Pos.End
	return Span{Start: end, End: end}
}

// spanOrEOF is the span of the next token, or the EOF span when exhausted.
func (t *Tokens) spanOrEOF() Span {
	if tok, ok := t.Peek(); ok {
		return tok.Pos
	}
	return t.eofSpan()
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isIdentChar(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// devourWhitespace consumes consecutive whitespace tokens and reports whether
// any were consumed.
// peekAfterWhitespace returns the first non-whitespace token ahead of the
// cursor without consuming anything.
func peekAfterWhitespace(toks *Tokens) (Token, bool) {
	for i := 0; ; i++ {
		tok, ok := toks.PeekAt(i)
		if !ok {
			return Token{}, false
		}
		if !isWhitespace(tok.Kind) {
			return tok, true
		}
	}
}

func devourWhitespace(toks *Tokens) bool {
	found := false
	for {
		tok, ok := toks.Peek()
		if !ok || !isWhitespace(tok.Kind) {
			return found
		}
		toks.Next()
		found = true
	}
}

// devourWhitespaceOrComment consumes whitespace and comments (both /* */ and
// line comments). The boolean reports whether anything was consumed; an
// unterminated block comment is a syntax error.
func devourWhitespaceOrComment(toks *Tokens) (bool, error) {
	found := false
	for {
		tok, ok := toks.Peek()
		if !ok {
			return found, nil
		}
		switch {
		case isWhitespace(tok.Kind):
			toks.Next()
			found = true
		case tok.Kind == '/':
			next, ok := toks.PeekAt(1)
			if !ok {
				return found, nil
			}
			switch next.Kind {
			case '*':
				toks.Next()
				toks.Next()
				if err := skipBlockComment(toks, tok.Pos); err != nil {
					return found, err
				}
				found = true
			case '/':
				for {
					t2, ok := toks.Next()
					if !ok || t2.Kind == '\n' {
						break
					}
				}
				found = true
			default:
				return found, nil
			}
		default:
			return found, nil
		}
	}
}

func skipBlockComment(toks *Tokens, open Span) error {
	for {
		tok, ok := toks.Next()
		if !ok {
			return errSpan(`expected "*/".`, open)
		}
		if tok.Kind == '*' {
			if next, ok := toks.Peek(); ok && next.Kind == '/' {
				toks.Next()
				return nil
			}
		}
	}
}

// eatIdent consumes a run of identifier characters and returns the text with
// its covering span. An empty run yields an empty string and a zero-width
// span at the current position.
func eatIdent(toks *Tokens) (string, Span) {
	var buf []rune
	sp := toks.spanOrEOF()
	sp.End = sp.Start
	for {
		tok, ok := toks.Peek()
		if !ok || !isIdentChar(tok.Kind) {
			return string(buf), sp
		}
		toks.Next()
		buf = append(buf, tok.Kind)
		sp = sp.Merge(tok.Pos)
	}
}

// readUntilClosingParen copies tokens through the parenthesis matching an
// already-consumed '(' — the closing ')' is included. Nested parentheses and
// quoted strings are tracked.
func readUntilClosingParen(toks *Tokens) []Token {
	return readUntilClosing(toks, '(', ')')
}

// readUntilClosingSquareBrace copies tokens through the bracket matching an
// already-consumed '[' — the closing ']' is included.
func readUntilClosingSquareBrace(toks *Tokens) []Token {
	return readUntilClosing(toks, '[', ']')
}

// readUntilClosingCurly copies tokens through the brace matching an
// already-consumed '{' — the closing '}' is NOT included in the result but
// is consumed.
func readUntilClosingCurly(toks *Tokens) []Token {
	out := readUntilClosing(toks, '{', '}')
	if n := len(out); n > 0 && out[n-1].Kind == '}' {
		out = out[:n-1]
	}
	return out
}

func readUntilClosing(toks *Tokens, open, close rune) []Token {
	var out []Token
	depth := 1
	for {
		tok, ok := toks.Next()
		if !ok {
			return out
		}
		switch tok.Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				out = append(out, tok)
				return out
			}
		case '"', '\'':
			out = append(out, tok)
			out = append(out, readUntilClosingQuote(toks, tok.Kind)...)
			continue
		}
		out = append(out, tok)
	}
}

// readUntilClosingQuote copies tokens through the quote matching an
// already-consumed opening quote — the closing quote is included. Backslash
// escapes are copied verbatim.
func readUntilClosingQuote(toks *Tokens, quote rune) []Token {
	var out []Token
	for {
		tok, ok := toks.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
		switch tok.Kind {
		case '\\':
			if esc, ok := toks.Next(); ok {
				out = append(out, esc)
			}
		case quote:
			return out
		}
	}
}

// readUntilSemicolonOrClosingCurly copies tokens up to (not including) the
// next top-level ';' or '}'. Parenthesized groups and quoted strings are
// copied opaquely. A trailing ';' is consumed; a '}' is left in the stream.
func readUntilSemicolonOrClosingCurly(toks *Tokens) []Token {
	var out []Token
	for {
		tok, ok := toks.Peek()
		if !ok {
			return out
		}
		switch tok.Kind {
		case ';':
			toks.Next()
			return out
		case '}':
			return out
		case '(':
			toks.Next()
			out = append(out, tok)
			out = append(out, readUntilClosingParen(toks)...)
		case '"', '\'':
			toks.Next()
			out = append(out, tok)
			out = append(out, readUntilClosingQuote(toks, tok.Kind)...)
		default:
			toks.Next()
			out = append(out, tok)
		}
	}
}
