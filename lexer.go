// lexer.go — source text to positioned character tokens
//
// The tokenizer is deliberately thin: one token per rune, each carrying its
// byte span. All structure (numbers, identifiers, strings, argument lists)
// is recognized downstream by consumers that peek into the stream, which
// keeps span bookkeeping exact for multi-byte characters.

package grass

import "unicode/utf8"

// Lex converts src into a token buffer wrapped in a lookahead stream.
func Lex(src string) *Tokens {
	toks := make([]Token, 0, len(src))
	for i := 0; i < len(src); {
		r, n := utf8.DecodeRuneInString(src[i:])
		toks = append(toks, newToken(r, Span{Start: i, End: i + n}))
		i += n
	}
	return NewTokens(toks)
}

// tokensText reconstructs the source text of a token run.
func tokensText(toks []Token) string {
	var buf []rune
	for _, t := range toks {
		buf = append(buf, t.Kind)
	}
	return string(buf)
}
