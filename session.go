// session.go — persistent evaluation for interactive use
//
// A Session keeps one root scope alive across Eval calls so the REPL can
// declare variables, mixins and functions on one line and use them on the
// next. Input is either a declaration run (variable or at-rule) or a bare
// expression; expressions render to their CSS text.

package grass

const Version = "0.3.0"

// Session is a persistent evaluation context.
type Session struct {
	scope *Scope
}

func NewSession() *Session {
	return &Session{scope: NewScope(nil)}
}

// Eval runs one line of input. Declarations return the empty string; the
// last expression on the line returns its rendered value.
func (s *Session) Eval(src string) (string, error) {
	toks := Lex(src)
	out := ""
	for {
		if _, err := devourWhitespaceOrComment(toks); err != nil {
			return "", err
		}
		tok, ok := toks.Peek()
		if !ok {
			return out, nil
		}
		switch {
		case tok.Kind == '$' && looksLikeVarDecl(toks):
			if err := parseVarDecl(toks, s.scope, Selector{}); err != nil {
				return "", err
			}
		case tok.Kind == '@':
			if err := parseAtRule(toks, s.scope, Selector{}, &[]*Rule{}, nil); err != nil {
				return "", err
			}
		default:
			run := readUntilSemicolonOrClosingCurly(toks)
			v, sp, err := valueFromTokens(run, s.scope, Selector{})
			if err != nil {
				return "", err
			}
			out, err = v.ToCSSString(sp)
			if err != nil {
				return "", err
			}
		}
	}
}

// looksLikeVarDecl distinguishes `$a: 1` from an expression like `$a + 1`.
func looksLikeVarDecl(toks *Tokens) bool {
	n := 1
	for {
		tok, ok := toks.PeekAt(n)
		if !ok {
			return false
		}
		if isIdentChar(tok.Kind) {
			n++
			continue
		}
		break
	}
	for {
		tok, ok := toks.PeekAt(n)
		if !ok {
			return false
		}
		if isWhitespace(tok.Kind) {
			n++
			continue
		}
		return tok.Kind == ':'
	}
}
