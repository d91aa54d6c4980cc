// eval.go — evaluating token runs into Values
//
// valueFromTokens is the single entry point the binder and the stylesheet
// parser share: it takes an unevaluated token run (an argument value, a
// variable declaration's right-hand side, a default expression) and produces
// a Value against the live scope chain. The grammar is a small
// recursive-descent evaluator — comma lists of space lists of operator
// expressions — that computes results directly rather than building an AST.
//
// The one piece of lexical subtlety is the minus sign: `a - b` subtracts,
// `a -b` is a two-element list. A '-' that is preceded by whitespace but not
// followed by it starts a new list element.

package grass

import (
	"fmt"

	"github.com/mazznoer/csscolorparser"
)

// valueFromTokens evaluates a token run against scope. The returned span
// covers the run; an empty (or all-whitespace) run is Null.
func valueFromTokens(run []Token, scope *Scope, sel Selector) (Value, Span, error) {
	span := mergeTokenSpans(run)
	run, err := stripComments(run)
	if err != nil {
		return Value{}, span, err
	}
	ev := &evaluator{toks: NewTokens(run), scope: scope, sel: sel}
	devourWhitespace(ev.toks)
	if _, ok := ev.toks.Peek(); !ok {
		return Null, span, nil
	}
	v, err := ev.commaList()
	if err != nil {
		return Value{}, span, err
	}
	devourWhitespace(ev.toks)
	if tok, ok := ev.toks.Peek(); ok {
		return Value{}, span, errSpan(fmt.Sprintf("Unexpected token %q.", string(tok.Kind)), tok.Pos)
	}
	return v, span, nil
}

// stripComments rewrites a run with comments replaced by a single space so
// `red/* */blue` still reads as two words. Quoted strings pass through
// untouched.
func stripComments(run []Token) ([]Token, error) {
	toks := NewTokens(run)
	var out []Token
	for {
		tok, ok := toks.Peek()
		if !ok {
			return out, nil
		}
		switch tok.Kind {
		case '/':
			if next, ok := toks.PeekAt(1); ok && (next.Kind == '*' || next.Kind == '/') {
				if _, err := devourWhitespaceOrComment(toks); err != nil {
					return nil, err
				}
				out = append(out, newToken(' ', tok.Pos))
				continue
			}
			toks.Next()
			out = append(out, tok)
		case '(':
			// copied opaquely: `url(http://…)` is not a comment, and real
			// comments inside parens are stripped when the group re-enters
			// valueFromTokens
			toks.Next()
			out = append(out, tok)
			out = append(out, readUntilClosingParen(toks)...)
		case '[':
			toks.Next()
			out = append(out, tok)
			out = append(out, readUntilClosingSquareBrace(toks)...)
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

type evaluator struct {
	toks  *Tokens
	scope *Scope
	sel   Selector
}

func (p *evaluator) commaList() (Value, error) {
	var vals []Value
	for {
		devourWhitespace(p.toks)
		if _, ok := p.toks.Peek(); !ok {
			break
		}
		v, err := p.spaceList()
		if err != nil {
			return Value{}, err
		}
		vals = append(vals, v)
		devourWhitespace(p.toks)
		tok, ok := p.toks.Peek()
		if !ok || tok.Kind != ',' {
			break
		}
		p.toks.Next()
	}
	switch len(vals) {
	case 0:
		return Null, nil
	case 1:
		return vals[0], nil
	default:
		return ListVal(vals, SepComma), nil
	}
}

func (p *evaluator) spaceList() (Value, error) {
	var parts []Value
	for {
		devourWhitespace(p.toks)
		tok, ok := p.toks.Peek()
		if !ok || tok.Kind == ',' {
			break
		}
		v, err := p.equality()
		if err != nil {
			return Value{}, err
		}
		parts = append(parts, v)
	}
	switch len(parts) {
	case 0:
		return Null, nil
	case 1:
		return parts[0], nil
	default:
		return ListVal(parts, SepSpace), nil
	}
}

func (p *evaluator) equality() (Value, error) {
	l, err := p.comparison()
	if err != nil {
		return Value{}, err
	}
	for {
		devourWhitespace(p.toks)
		tok, ok := p.toks.Peek()
		if !ok {
			return l, nil
		}
		next, _ := p.toks.PeekAt(1)
		switch {
		case tok.Kind == '=' && next.Kind == '=':
			p.toks.Next()
			p.toks.Next()
			r, err := p.comparison()
			if err != nil {
				return Value{}, err
			}
			l = BoolVal(l.Equal(r))
		case tok.Kind == '!' && next.Kind == '=':
			p.toks.Next()
			p.toks.Next()
			r, err := p.comparison()
			if err != nil {
				return Value{}, err
			}
			l = BoolVal(!l.Equal(r))
		default:
			return l, nil
		}
	}
}

func (p *evaluator) comparison() (Value, error) {
	l, err := p.additive()
	if err != nil {
		return Value{}, err
	}
	for {
		devourWhitespace(p.toks)
		tok, ok := p.toks.Peek()
		if !ok || (tok.Kind != '<' && tok.Kind != '>') {
			return l, nil
		}
		p.toks.Next()
		op := string(tok.Kind)
		if next, ok := p.toks.Peek(); ok && next.Kind == '=' {
			p.toks.Next()
			op += "="
		}
		r, err := p.additive()
		if err != nil {
			return Value{}, err
		}
		l, err = cmpValues(op, l, r, tok.Pos)
		if err != nil {
			return Value{}, err
		}
	}
}

func (p *evaluator) additive() (Value, error) {
	l, err := p.multiplicative()
	if err != nil {
		return Value{}, err
	}
	for {
		wsBefore := devourWhitespace(p.toks)
		tok, ok := p.toks.Peek()
		if !ok || (tok.Kind != '+' && tok.Kind != '-') {
			return l, nil
		}
		next, hasNext := p.toks.PeekAt(1)
		followedByWs := hasNext && isWhitespace(next.Kind)
		if wsBefore && !followedByWs {
			// `a -b`: a new list element, not a binary operator
			return l, nil
		}
		p.toks.Next()
		r, err := p.multiplicative()
		if err != nil {
			return Value{}, err
		}
		l, err = addValues(tok.Kind, l, r, tok.Pos)
		if err != nil {
			return Value{}, err
		}
	}
}

func (p *evaluator) multiplicative() (Value, error) {
	l, err := p.unary()
	if err != nil {
		return Value{}, err
	}
	for {
		// peek without consuming: additive needs the whitespace before a
		// '-' intact to tell `a -b` (list element) from `a - b` (subtract)
		tok, ok := peekAfterWhitespace(p.toks)
		if !ok || (tok.Kind != '*' && tok.Kind != '/' && tok.Kind != '%') {
			return l, nil
		}
		devourWhitespace(p.toks)
		p.toks.Next()
		r, err := p.unary()
		if err != nil {
			return Value{}, err
		}
		l, err = mulValues(tok.Kind, l, r, tok.Pos)
		if err != nil {
			return Value{}, err
		}
	}
}

func (p *evaluator) unary() (Value, error) {
	devourWhitespace(p.toks)
	tok, ok := p.toks.Peek()
	if ok && tok.Kind == '-' {
		p.toks.Next()
		v, err := p.unary()
		if err != nil {
			return Value{}, err
		}
		if v.Tag == VDimension {
			d := v.dim()
			return DimensionVal(d.Num.Neg(), d.Unit), nil
		}
		return IdentVal("-"+v.inspect(), QuoteNone), nil
	}
	if ok && tok.Kind == '+' {
		p.toks.Next()
		return p.unary()
	}
	return p.primary()
}

func (p *evaluator) primary() (Value, error) {
	devourWhitespace(p.toks)
	tok, ok := p.toks.Peek()
	if !ok {
		return Value{}, errSpan("Expected expression.", p.toks.eofSpan())
	}

	switch {
	case tok.Kind >= '0' && tok.Kind <= '9', tok.Kind == '.':
		return p.number()
	case tok.Kind == '$':
		p.toks.Next()
		name, sp := eatIdent(p.toks)
		return p.scope.GetVar(normalizeName(name), tok.Pos.Merge(sp))
	case tok.Kind == '"' || tok.Kind == '\'':
		return p.quotedString()
	case tok.Kind == '#':
		return p.hexColor()
	case tok.Kind == '(':
		p.toks.Next()
		inner := readUntilClosingParen(p.toks)
		if n := len(inner); n > 0 && inner[n-1].Kind == ')' {
			inner = inner[:n-1]
		}
		v, _, err := valueFromTokens(inner, p.scope, p.sel)
		return v, err
	case tok.Kind == '[':
		p.toks.Next()
		inner := readUntilClosingSquareBrace(p.toks)
		return IdentVal("["+tokensText(inner), QuoteNone), nil
	case tok.Kind == '!':
		p.toks.Next()
		devourWhitespace(p.toks)
		word, sp := eatIdent(p.toks)
		if lowerASCII(word) != "important" {
			return Value{}, errSpan(`Expected "important".`, tok.Pos.Merge(sp))
		}
		return IdentVal("!important", QuoteNone), nil
	case tok.Kind == '&':
		p.toks.Next()
		return IdentVal(p.sel.String(), QuoteNone), nil
	case isIdentChar(tok.Kind):
		return p.identOrCall()
	default:
		return Value{}, errSpan(fmt.Sprintf("Unexpected token %q.", string(tok.Kind)), tok.Pos)
	}
}

func (p *evaluator) number() (Value, error) {
	var buf []rune
	sp := p.toks.spanOrEOF()
	sp.End = sp.Start
	for {
		tok, ok := p.toks.Peek()
		if !ok || !((tok.Kind >= '0' && tok.Kind <= '9') || tok.Kind == '.') {
			break
		}
		p.toks.Next()
		buf = append(buf, tok.Kind)
		sp = sp.Merge(tok.Pos)
	}
	n, ok := numberFromString(string(buf))
	if !ok {
		return Value{}, errSpan(fmt.Sprintf("Invalid number %q.", string(buf)), sp)
	}

	// optional unit
	if tok, ok := p.toks.Peek(); ok {
		switch {
		case tok.Kind == '%':
			p.toks.Next()
			return DimensionVal(n, Unit{Kind: UnitPercent}), nil
		case isUnitStart(tok.Kind):
			var unit []rune
			for {
				t2, ok := p.toks.Peek()
				if !ok || !isUnitStart(t2.Kind) {
					break
				}
				p.toks.Next()
				unit = append(unit, t2.Kind)
			}
			return DimensionVal(n, UnitFromString(string(unit))), nil
		}
	}
	return DimensionVal(n, NoUnit), nil
}

// isUnitStart limits unit spellings to letters, keeping `2px-3px` from
// swallowing the hyphen into a bogus unit.
func isUnitStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (p *evaluator) quotedString() (Value, error) {
	open, _ := p.toks.Next()
	run := readUntilClosingQuote(p.toks, open.Kind)
	if len(run) == 0 || run[len(run)-1].Kind != open.Kind {
		return Value{}, errSpan(fmt.Sprintf("expected %q.", string(open.Kind)), open.Pos)
	}
	var buf []rune
	for i := 0; i < len(run)-1; i++ {
		if run[i].Kind == '\\' && i+1 < len(run)-1 &&
			(run[i+1].Kind == open.Kind || run[i+1].Kind == '\\') {
			i++
		}
		buf = append(buf, run[i].Kind)
	}
	return IdentVal(string(buf), QuoteQuoted), nil
}

func (p *evaluator) hexColor() (Value, error) {
	hash, _ := p.toks.Next()
	var buf []rune
	sp := hash.Pos
	for {
		tok, ok := p.toks.Peek()
		if !ok || !isHexDigit(tok.Kind) {
			break
		}
		p.toks.Next()
		buf = append(buf, tok.Kind)
		sp = sp.Merge(tok.Pos)
	}
	text := "#" + string(buf)
	c, err := csscolorparser.Parse(text)
	if err != nil {
		return IdentVal(text, QuoteNone), nil
	}
	col := NewColor(channel(c.R), channel(c.G), channel(c.B), c.A)
	col.repr = text
	return ColorVal(col), nil
}

func (p *evaluator) identOrCall() (Value, error) {
	name, sp := eatIdent(p.toks)

	if tok, ok := p.toks.Peek(); ok && tok.Kind == '(' {
		p.toks.Next()
		// url() and calc() payloads are not expressions; forward verbatim.
		if lower := lowerASCII(name); lower == "url" || lower == "calc" {
			inner := readUntilClosingParen(p.toks)
			return IdentVal(name+"("+tokensText(inner), QuoteNone), nil
		}
		args, err := eatCallArgs(p.toks)
		if err != nil {
			return Value{}, err
		}
		return evalFunctionCall(name, args, p.scope, p.sel, sp)
	}

	switch name {
	case "true":
		return BoolVal(true), nil
	case "false":
		return BoolVal(false), nil
	case "null":
		return Null, nil
	}
	if c, ok := colorFromName(name); ok {
		return ColorVal(c), nil
	}
	return IdentVal(name, QuoteNone), nil
}

// evalFunctionCall dispatches a call: user-defined functions first, then
// builtins, and finally plain CSS forwarding (`url(...)`, unknown vendor
// functions), which re-serializes the arguments and requires them to be
// keyword-less.
func evalFunctionCall(name string, args *CallArgs, scope *Scope, sel Selector, nameSpan Span) (Value, error) {
	if fn, ok := scope.GetFunction(name); ok {
		return execFunction(fn, args, scope, sel)
	}
	if b, ok := builtins[name]; ok {
		return b(args, scope, sel)
	}
	s, _, err := args.ToCSSString(scope, sel)
	if err != nil {
		return Value{}, err
	}
	return IdentVal(name+s, QuoteNone), nil
}

func cmpValues(op string, l, r Value, opSpan Span) (Value, error) {
	if l.Tag != VDimension || r.Tag != VDimension {
		return Value{}, undefinedOp(op, l, r, opSpan)
	}
	a, b := l.dim(), r.dim()
	if !a.Unit.Comparable(b.Unit) {
		return Value{}, errSpan(fmt.Sprintf("Incompatible units: %s and %s.", a.Unit, b.Unit), opSpan)
	}
	c := a.Num.Cmp(convert(b.Num, b.Unit, a.Unit))
	switch op {
	case "<":
		return BoolVal(c < 0), nil
	case "<=":
		return BoolVal(c <= 0), nil
	case ">":
		return BoolVal(c > 0), nil
	case ">=":
		return BoolVal(c >= 0), nil
	default:
		return Value{}, undefinedOp(op, l, r, opSpan)
	}
}

func addValues(op rune, l, r Value, opSpan Span) (Value, error) {
	if l.Tag == VDimension && r.Tag == VDimension {
		a, b := l.dim(), r.dim()
		unit, bn, err := coerceUnits(a, b, opSpan)
		if err != nil {
			return Value{}, err
		}
		if op == '+' {
			return DimensionVal(a.Num.Add(bn), unit), nil
		}
		return DimensionVal(a.Num.Sub(bn), unit), nil
	}

	// string-ish concatenation
	if l.Tag == VIdent || r.Tag == VIdent {
		q := QuoteNone
		if l.Tag == VIdent {
			q = l.ident().Q
		} else if r.Tag == VIdent {
			q = r.ident().Q
		}
		ls, rs := l.unquote().inspect(), r.unquote().inspect()
		if op == '+' {
			return IdentVal(ls+rs, q), nil
		}
		return IdentVal(ls+"-"+rs, q), nil
	}
	return Value{}, undefinedOp(string(op), l, r, opSpan)
}

func mulValues(op rune, l, r Value, opSpan Span) (Value, error) {
	if l.Tag == VDimension && r.Tag == VDimension {
		a, b := l.dim(), r.dim()
		switch op {
		case '*':
			switch {
			case b.Unit.Kind == UnitNone:
				return DimensionVal(a.Num.Mul(b.Num), a.Unit), nil
			case a.Unit.Kind == UnitNone:
				return DimensionVal(a.Num.Mul(b.Num), b.Unit), nil
			default:
				return Value{}, undefinedOp(string(op), l, r, opSpan)
			}
		case '/':
			if b.Num.IsZero() {
				return Value{}, errSpan("Division by zero.", opSpan)
			}
			switch {
			case b.Unit.Kind == UnitNone:
				return DimensionVal(a.Num.Div(b.Num), a.Unit), nil
			case a.Unit.Comparable(b.Unit):
				// same family divides out to a unitless ratio
				return DimensionVal(a.Num.Div(convert(b.Num, b.Unit, a.Unit)), NoUnit), nil
			default:
				return Value{}, errSpan(fmt.Sprintf("Incompatible units: %s and %s.", a.Unit, b.Unit), opSpan)
			}
		case '%':
			if b.Num.IsZero() {
				return Value{}, errSpan("Division by zero.", opSpan)
			}
			if b.Unit.Kind != UnitNone && !a.Unit.Comparable(b.Unit) {
				return Value{}, errSpan(fmt.Sprintf("Incompatible units: %s and %s.", a.Unit, b.Unit), opSpan)
			}
			bn := b.Num
			if b.Unit.Kind != UnitNone {
				bn = convert(b.Num, b.Unit, a.Unit)
			}
			return DimensionVal(a.Num.Mod(bn), a.Unit), nil
		}
	}
	if op == '/' && (l.Tag == VIdent || r.Tag == VIdent) {
		return IdentVal(l.unquote().inspect()+"/"+r.unquote().inspect(), QuoteNone), nil
	}
	return Value{}, undefinedOp(string(op), l, r, opSpan)
}

// coerceUnits resolves the unit of an additive result: unitless adopts the
// other operand's unit, same-family converts to the left unit, anything
// else is a unit error. Returns the result unit and the right magnitude
// expressed in it.
func coerceUnits(a, b dimension, opSpan Span) (Unit, Number, error) {
	switch {
	case a.Unit.Kind == UnitNone:
		return b.Unit, b.Num, nil
	case b.Unit.Kind == UnitNone:
		return a.Unit, b.Num, nil
	case a.Unit.Comparable(b.Unit):
		return a.Unit, convert(b.Num, b.Unit, a.Unit), nil
	default:
		return Unit{}, Number{}, errSpan(fmt.Sprintf("Incompatible units: %s and %s.", a.Unit, b.Unit), opSpan)
	}
}

func undefinedOp(op string, l, r Value, span Span) error {
	// inner quotes stay literal: `1 > "b"` reports `"1 > "b""`
	return errSpan(fmt.Sprintf(`Undefined operation "%s %s %s".`, l.inspect(), op, r.inspect()), span)
}

func normalizeName(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '_' {
			out[i] = '-'
		}
	}
	return string(out)
}
