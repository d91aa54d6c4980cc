// args.go — the argument binder
//
// Two mini-parsers live here. eatFuncArgs reads a declaration-site parameter
// list (just past the opening paren, through the block-opening brace) into a
// FuncArgs signature: names, optional default token runs, and an optional
// final variadic marker. eatCallArgs reads a call site (just past the
// opening paren, through the matching close) into CallArgs: a mapping from
// slot — named or positional — to the unevaluated token run that produced
// it.
//
// Call-site disambiguation is speculative: after a '$' the binder reads an
// identifier and peeks for ':'. Found, the argument is named; not found, the
// consumed text is re-emitted verbatim (including a separating space when
// whitespace was swallowed while peeking) as the start of a positional
// value. Nested (…), […] and quoted runs are copied opaquely so their commas
// never split an argument.
//
// Resolution is removal-based: pulling a slot out evaluates its token run
// against the supplied scope and deletes the slot, so a second pull finds
// nothing instead of re-evaluating.

package grass

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FuncArg is one declared parameter. Default is nil when the parameter has
// none; a non-nil empty run means an explicitly empty default.
type FuncArg struct {
	Name       string
	Default    []Token
	IsVariadic bool
}

// FuncArgs is an ordered function/mixin signature. At most the final
// parameter is variadic; declarations violating that fail to parse.
type FuncArgs []FuncArg

// callArg is a slot key: named when name is non-empty, else positional.
type callArg struct {
	name string
	pos  int
}

func newCallArg(name string, pos int) callArg {
	if name != "" {
		return callArg{name: strings.ReplaceAll(name, "_", "-")}
	}
	return callArg{pos: pos}
}

func (c callArg) isNamed() bool { return c.name != "" }

func (c callArg) decrement() callArg {
	if !c.isNamed() {
		c.pos--
	}
	return c
}

// CallArgs holds a call site's slots and the span covering the whole call.
// Slots are consumed by removal as the callee resolves them.
type CallArgs struct {
	args map[callArg][]Token
	span Span
}

// spannedValue pairs an evaluated Value with the span of the tokens that
// produced it.
type spannedValue struct {
	node Value
	span Span
}

// Span returns the span covering the whole call.
func (c *CallArgs) Span() Span { return c.span }

// Len returns the number of slots still bound.
func (c *CallArgs) Len() int { return len(c.args) }

// IsEmpty reports whether no slots remain.
func (c *CallArgs) IsEmpty() bool { return len(c.args) == 0 }

// GetNamed removes and evaluates the named slot. The boolean is false when
// the slot is absent; evaluation failures surface as the error.
func (c *CallArgs) GetNamed(name string, scope *Scope, sel Selector) (Value, bool, error) {
	return c.take(newCallArg(name, 0), scope, sel)
}

// GetPositional removes and evaluates the slot at the 0-based position.
func (c *CallArgs) GetPositional(pos int, scope *Scope, sel Selector) (Value, bool, error) {
	return c.take(callArg{pos: pos}, scope, sel)
}

func (c *CallArgs) take(key callArg, scope *Scope, sel Selector) (Value, bool, error) {
	run, ok := c.args[key]
	if !ok {
		return Value{}, false, nil
	}
	delete(c.args, key)
	v, _, err := valueFromTokens(run, scope, sel)
	if err != nil {
		return Value{}, true, err
	}
	return v, true, nil
}

// GetVariadic drains every remaining slot for variadic or plain-CSS
// forwarding. All remaining slots must be positional — a named slot is an
// error identifying the unknown name — and evaluation is strictly ascending
// by position.
func (c *CallArgs) GetVariadic(scope *Scope, sel Selector) ([]Value, error) {
	sp, err := c.getVariadic(scope, sel)
	if err != nil {
		return nil, err
	}
	vals := make([]Value, len(sp))
	for i, v := range sp {
		vals[i] = v.node
	}
	return vals, nil
}

func (c *CallArgs) getVariadic(scope *Scope, sel Selector) ([]spannedValue, error) {
	type slot struct {
		pos int
		run []Token
	}
	slots := make([]slot, 0, len(c.args))
	for k, run := range c.args {
		if k.isNamed() {
			return nil, errSpan(fmt.Sprintf("No argument named $%s.", k.name), c.span)
		}
		slots = append(slots, slot{pos: k.pos, run: run})
	}
	c.args = make(map[callArg][]Token)
	sort.Slice(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })

	vals := make([]spannedValue, 0, len(slots))
	for _, s := range slots {
		v, sp, err := valueFromTokens(s.run, scope, sel)
		if err != nil {
			return nil, err
		}
		if sp == (Span{}) {
			sp = c.span
		}
		vals = append(vals, spannedValue{node: v, span: sp})
	}
	return vals, nil
}

// Decrement rewrites every positional slot's index down by one, for callers
// that have already consumed a leading positional argument.
func (c *CallArgs) Decrement() {
	next := make(map[callArg][]Token, len(c.args))
	for k, v := range c.args {
		next[k.decrement()] = v
	}
	c.args = next
}

// MaxArgs fails with an arity error when more than max slots remain bound.
func (c *CallArgs) MaxArgs(max int) error {
	n := c.Len()
	if n <= max {
		return nil
	}
	plural := "s"
	if max == 1 {
		plural = ""
	}
	verb := "were"
	if n == 1 {
		verb = "was"
	}
	return errSpan(fmt.Sprintf("Only %d argument%s allowed, but %d %s passed.", max, plural, n, verb), c.span)
}

// ToCSSString serializes the call back to source-like text for plain CSS
// function forwarding. Any named slot makes the call unserializable.
func (c *CallArgs) ToCSSString(scope *Scope, sel Selector) (string, Span, error) {
	span := c.span
	if c.IsEmpty() {
		return "()", span, nil
	}
	vals, err := c.getVariadic(scope, sel)
	if err != nil {
		if e, ok := err.(*Error); ok && strings.HasPrefix(e.Msg, "No argument named") {
			return "", span, errSpan("Plain CSS functions don't support keyword arguments.", span)
		}
		return "", span, err
	}
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		span = span.Merge(v.span)
		s, err := v.node.ToCSSString(v.span)
		if err != nil {
			return "", span, err
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, ", ") + ")", span, nil
}

// eatFuncArgs parses a declaration-site parameter list. The stream must be
// positioned just past the opening '('; on success it is left just past the
// block-opening '{'.
func eatFuncArgs(toks *Tokens) (FuncArgs, error) {
	var args FuncArgs

	devourWhitespace(toks)
params:
	for {
		tok, ok := toks.Next()
		if !ok {
			return nil, errSpan(`expected ")".`, toks.eofSpan())
		}

		var name string
		switch tok.Kind {
		case '$':
			name, _ = eatIdent(toks)
		case ')':
			break params
		default:
			return nil, errSpan(`expected "$".`, tok.Pos)
		}
		name = strings.ReplaceAll(name, "_", "-")

		devourWhitespace(toks)
		tok, ok = toks.Next()
		if !ok {
			return nil, errSpan(`expected ")".`, toks.eofSpan())
		}
		switch tok.Kind {
		case ':':
			devourWhitespace(toks)
			def := []Token{}
		defaultRun:
			for {
				next, ok := toks.Peek()
				if !ok {
					break defaultRun
				}
				switch next.Kind {
				case ',':
					toks.Next()
					args = append(args, FuncArg{Name: name, Default: def})
					devourWhitespace(toks)
					continue params
				case ')':
					// left unconsumed; the next iteration ends the list
					args = append(args, FuncArg{Name: name, Default: def})
					break defaultRun
				default:
					toks.Next()
					def = append(def, next)
				}
			}
		case '.':
			// the variadic marker: exactly "..." then ")"
			for i := 0; i < 2; i++ {
				next, ok := toks.Next()
				if !ok || next.Kind != '.' {
					return nil, errSpan(`expected ".".`, spanOf(next, ok, toks))
				}
			}
			devourWhitespace(toks)
			next, ok := toks.Next()
			if !ok || next.Kind != ')' {
				return nil, errSpan(`expected ")".`, spanOf(next, ok, toks))
			}
			args = append(args, FuncArg{Name: name, IsVariadic: true})
			break params
		case ')':
			args = append(args, FuncArg{Name: name})
			break params
		case ',':
			args = append(args, FuncArg{Name: name})
		default:
			return nil, errSpan(`expected ")".`, tok.Pos)
		}
		devourWhitespace(toks)
	}

	devourWhitespace(toks)
	tok, ok := toks.Next()
	if !ok || tok.Kind != '{' {
		return nil, errSpan(`expected "{".`, spanOf(tok, ok, toks))
	}
	return args, nil
}

func spanOf(tok Token, ok bool, toks *Tokens) Span {
	if ok {
		return tok.Pos
	}
	return toks.eofSpan()
}

// eatCallArgs parses a call-site argument list. The stream must be
// positioned just past the opening '('; the matching ')' is consumed before
// returning. Positional indices are assigned from the count of slots
// already inserted, so they reflect call-site order interleaved with named
// arguments.
func eatCallArgs(toks *Tokens) (*CallArgs, error) {
	args := make(map[callArg][]Token)
	if _, err := devourWhitespaceOrComment(toks); err != nil {
		return nil, err
	}

	name := ""
	var val []Token
	span := toks.spanOrEOF()
	first := true
	for {
		tok, ok := toks.Peek()
		if !ok {
			return nil, errSpan(`expected ")".`, toks.eofSpan())
		}
		switch tok.Kind {
		case '$':
			dollar, _ := toks.Next()
			ident, identSpan := eatIdent(toks)
			ws, err := devourWhitespaceOrComment(toks)
			if err != nil {
				return nil, err
			}
			if next, ok := toks.Peek(); ok && next.Kind == ':' {
				toks.Next()
				name = ident
			} else {
				// Not a named argument after all: re-emit exactly what was
				// read, keeping a separating space iff one was consumed.
				val = append(val, dollar)
				off := 0
				for _, r := range ident {
					n := utf8.RuneLen(r)
					val = append(val, newToken(r, identSpan.Subspan(off, off+n)))
					off += n
				}
				if ws {
					val = append(val, newToken(' ', dollar.Pos))
				}
				name = ""
			}
		case ')':
			if first {
				toks.Next()
				return &CallArgs{args: args, span: span}, nil
			}
			// A pending (possibly empty) argument from a trailing comma is
			// still recorded; the value loop below sees the ')' and inserts.
			name = ""
		default:
			name = ""
		}
		first = false
		if _, err := devourWhitespaceOrComment(toks); err != nil {
			return nil, err
		}

		for {
			tok, ok := toks.Next()
			if !ok {
				return nil, errSpan(`expected ")".`, toks.eofSpan())
			}
			if tok.Kind == ')' {
				args[newCallArg(name, len(args))] = val
				span = span.Merge(tok.Pos)
				return &CallArgs{args: args, span: span}, nil
			}
			if tok.Kind == ',' {
				break
			}
			switch tok.Kind {
			case '[':
				val = append(val, tok)
				val = append(val, readUntilClosingSquareBrace(toks)...)
			case '(':
				val = append(val, tok)
				val = append(val, readUntilClosingParen(toks)...)
			case '"', '\'':
				val = append(val, tok)
				val = append(val, readUntilClosingQuote(toks, tok.Kind)...)
			default:
				val = append(val, tok)
			}
		}

		args[newCallArg(name, len(args))] = val
		val = nil
		devourWhitespace(toks)
	}
}

// bindArgs binds a call to a declared signature in the target scope: named
// slot first, then the matching position, then the default (evaluated in the
// callee's scope, so earlier parameters are visible), and captures the
// remainder as a comma list for a variadic final parameter.
func bindArgs(sig FuncArgs, args *CallArgs, scope *Scope, sel Selector, target *Scope) error {
	variadic := len(sig) > 0 && sig[len(sig)-1].IsVariadic
	if !variadic {
		if err := args.MaxArgs(len(sig)); err != nil {
			return err
		}
	}

	for i, param := range sig {
		if param.IsVariadic {
			rest, err := args.GetVariadic(scope, sel)
			if err != nil {
				return err
			}
			target.SetVar(param.Name, ListVal(rest, SepComma))
			return nil
		}

		v, ok, err := args.GetNamed(param.Name, scope, sel)
		if err != nil {
			return err
		}
		if !ok {
			v, ok, err = args.GetPositional(i, scope, sel)
			if err != nil {
				return err
			}
		}
		if !ok {
			if param.Default == nil {
				return errSpan(fmt.Sprintf("Missing argument $%s.", param.Name), args.span)
			}
			v, _, err = valueFromTokens(param.Default, target, sel)
			if err != nil {
				return err
			}
		}
		target.SetVar(param.Name, v)
	}

	// Anything still bound is a named argument the signature doesn't know.
	for k := range args.args {
		if k.isNamed() {
			return errSpan(fmt.Sprintf("No argument named $%s.", k.name), args.span)
		}
	}
	return nil
}
