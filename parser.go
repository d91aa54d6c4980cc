// parser.go — the stylesheet compiler
//
// Compile drives everything: it lexes the source, walks it as a sequence of
// statements (variable declarations, at-rules, rulesets, property
// declarations), and accumulates a flat list of output rules in document
// order. Nested rulesets are flattened against their parent selector; each
// nested block and each mixin invocation evaluates in a fresh child scope
// that is discarded when the block ends, so only the root scope outlives the
// compilation.
//
// Mixins and functions store their body as a raw token run and re-parse it
// at invocation time against a child scope holding the bound arguments.

package grass

import (
	"fmt"
	"strings"
)

// Mixin is a declared @mixin: its signature and unevaluated body.
type Mixin struct {
	Args FuncArgs
	Body []Token
}

// Function is a declared @function: its signature and unevaluated body.
type Function struct {
	Args FuncArgs
	Body []Token
}

// Style is one emitted property declaration.
type Style struct {
	Property string
	Value    string
}

// Rule is one emitted ruleset.
type Rule struct {
	Selector Selector
	Styles   []Style
}

// Compile translates SCSS-subset source into plain CSS. The first error
// encountered aborts the compilation and is returned with its span.
func Compile(src string) (string, error) {
	toks := Lex(src)
	global := NewScope(nil)
	var rules []*Rule
	if err := parseBody(toks, global, Selector{}, &rules, nil, true); err != nil {
		return "", err
	}
	return render(rules), nil
}

// parseBody parses statements until the closing '}' (or end of input when
// eofOK, as at the top level and inside re-parsed mixin bodies). current is
// the rule receiving property declarations, nil at the top level.
func parseBody(toks *Tokens, scope *Scope, sel Selector, rules *[]*Rule, current *Rule, eofOK bool) error {
	for {
		if _, err := devourWhitespaceOrComment(toks); err != nil {
			return err
		}
		tok, ok := toks.Peek()
		if !ok {
			if eofOK {
				return nil
			}
			return errSpan(`expected "}".`, toks.eofSpan())
		}
		switch tok.Kind {
		case '}':
			toks.Next()
			if eofOK {
				return errSpan(`unexpected "}".`, tok.Pos)
			}
			return nil
		case '$':
			if err := parseVarDecl(toks, scope, sel); err != nil {
				return err
			}
		case '@':
			if err := parseAtRule(toks, scope, sel, rules, current); err != nil {
				return err
			}
		default:
			if err := parseRuleOrDecl(toks, scope, sel, rules, current); err != nil {
				return err
			}
		}
	}
}

// parseVarDecl parses `$name: value [!default] [!global];` with the leading
// '$' still in the stream.
func parseVarDecl(toks *Tokens, scope *Scope, sel Selector) error {
	dollar, _ := toks.Next()
	name, nsp := eatIdent(toks)
	if name == "" {
		return errSpan("Expected identifier.", dollar.Pos)
	}
	name = normalizeName(name)
	devourWhitespace(toks)
	tok, ok := toks.Next()
	if !ok || tok.Kind != ':' {
		return errSpan(`expected ":".`, spanOf(tok, ok, toks))
	}
	run := readUntilSemicolonOrClosingCurly(toks)
	run, global, dflt := splitVarFlags(run)

	v, _, err := valueFromTokens(run, scope, sel)
	if err != nil {
		return err
	}
	if dflt {
		if old, err := scope.GetVar(name, nsp); err == nil && !old.IsNull() {
			return nil
		}
	}
	if global {
		scope.SetGlobalVar(name, v)
	} else {
		scope.SetVar(name, v)
	}
	return nil
}

// splitVarFlags strips trailing `!global` / `!default` flags from a
// declaration's value run. `!important` is not a flag and stays put.
func splitVarFlags(run []Token) (out []Token, global, dflt bool) {
	out = run
	for {
		// find the last '!' and check the word after it
		i := len(out) - 1
		for i >= 0 && isWhitespace(out[i].Kind) {
			i--
		}
		end := i
		for i >= 0 && isIdentChar(out[i].Kind) {
			i--
		}
		if i < 0 || out[i].Kind != '!' {
			return out, global, dflt
		}
		switch lowerASCII(tokensText(out[i+1 : end+1])) {
		case "global":
			global = true
		case "default":
			dflt = true
		default:
			return out, global, dflt
		}
		out = out[:i]
	}
}

func parseAtRule(toks *Tokens, scope *Scope, sel Selector, rules *[]*Rule, current *Rule) error {
	at, _ := toks.Next()
	name, nsp := eatIdent(toks)
	span := at.Pos.Merge(nsp)
	switch name {
	case "mixin":
		head, body, err := parseCallableDecl(toks, span)
		if err != nil {
			return err
		}
		scope.SetMixin(head.name, &Mixin{Args: head.sig, Body: body})
		return nil
	case "function":
		head, body, err := parseCallableDecl(toks, span)
		if err != nil {
			return err
		}
		scope.SetFunction(head.name, &Function{Args: head.sig, Body: body})
		return nil
	case "include":
		return parseInclude(toks, scope, sel, rules, current, span)
	case "if":
		return parseIf(toks, scope, sel, rules, current, span)
	case "else":
		return errSpan(`@else without matching @if.`, span)
	case "return":
		return errSpan("This at-rule is not allowed here.", span)
	default:
		return errSpan(fmt.Sprintf("@%s is not supported.", name), span)
	}
}

// callableHead is the parsed header of a @mixin/@function declaration.
type callableHead struct {
	name string
	sig  FuncArgs
}

// parseCallableDecl reads `name(params) { body }` (params optional) and
// returns the signature plus the raw body run.
func parseCallableDecl(toks *Tokens, span Span) (callableHead, []Token, error) {
	devourWhitespace(toks)
	name, _ := eatIdent(toks)
	if name == "" {
		return callableHead{}, nil, errSpan("Expected identifier.", span)
	}
	devourWhitespace(toks)

	var sig FuncArgs
	tok, ok := toks.Next()
	if !ok {
		return callableHead{}, nil, errSpan(`expected "{".`, toks.eofSpan())
	}
	switch tok.Kind {
	case '(':
		var err error
		sig, err = eatFuncArgs(toks)
		if err != nil {
			return callableHead{}, nil, err
		}
	case '{':
		// no parameter list
	default:
		return callableHead{}, nil, errSpan(`expected "{".`, tok.Pos)
	}
	body := readUntilClosingCurly(toks)
	return callableHead{name: name, sig: sig}, body, nil
}

func parseInclude(toks *Tokens, scope *Scope, sel Selector, rules *[]*Rule, current *Rule, span Span) error {
	devourWhitespace(toks)
	name, nsp := eatIdent(toks)
	if name == "" {
		return errSpan("Expected identifier.", span)
	}
	devourWhitespace(toks)

	var args *CallArgs
	if tok, ok := toks.Peek(); ok && tok.Kind == '(' {
		toks.Next()
		var err error
		args, err = eatCallArgs(toks)
		if err != nil {
			return err
		}
	} else {
		args = &CallArgs{args: make(map[callArg][]Token), span: nsp}
	}
	devourWhitespace(toks)
	if tok, ok := toks.Peek(); ok && tok.Kind == ';' {
		toks.Next()
	}

	mixin, err := scope.GetMixin(name, span.Merge(nsp))
	if err != nil {
		return err
	}
	child := NewScope(scope)
	if err := bindArgs(mixin.Args, args, scope, sel, child); err != nil {
		return err
	}
	return parseBody(NewTokens(mixin.Body), child, sel, rules, current, true)
}

func parseIf(toks *Tokens, scope *Scope, sel Selector, rules *[]*Rule, current *Rule, span Span) error {
	matched := false
	cond := true
	for {
		if cond {
			run, ok := readUntilOpenCurly(toks)
			if !ok {
				return errSpan(`expected "{".`, toks.eofSpan())
			}
			v, _, err := valueFromTokens(run, scope, sel)
			if err != nil {
				return err
			}
			body := readUntilClosingCurly(toks)
			if !matched && v.IsTrue() {
				matched = true
				if err := parseBody(NewTokens(body), NewScope(scope), sel, rules, current, true); err != nil {
					return err
				}
			}
		} else {
			devourWhitespace(toks)
			tok, ok := toks.Next()
			if !ok || tok.Kind != '{' {
				return errSpan(`expected "{".`, spanOf(tok, ok, toks))
			}
			body := readUntilClosingCurly(toks)
			if !matched {
				matched = true
				if err := parseBody(NewTokens(body), NewScope(scope), sel, rules, current, true); err != nil {
					return err
				}
			}
		}

		if !eatElse(toks) {
			return nil
		}
		devourWhitespace(toks)
		word, _ := eatIdent(toks)
		switch word {
		case "if":
			cond = true
		case "":
			cond = false
		default:
			return errSpan(`expected "{".`, span)
		}
	}
}

// eatElse consumes a following `@else` if present, looking past whitespace
// without consuming anything on a miss.
func eatElse(toks *Tokens) bool {
	n := 0
	for {
		tok, ok := toks.PeekAt(n)
		if !ok {
			return false
		}
		if isWhitespace(tok.Kind) {
			n++
			continue
		}
		break
	}
	want := "@else"
	for i, r := range want {
		tok, ok := toks.PeekAt(n + i)
		if !ok || tok.Kind != r {
			return false
		}
	}
	if tok, ok := toks.PeekAt(n + len(want)); ok && isIdentChar(tok.Kind) {
		return false
	}
	for i := 0; i < n+len(want); i++ {
		toks.Next()
	}
	return true
}

// parseRuleOrDecl disambiguates a leading statement: text running into a
// top-level '{' is a nested ruleset; text ending at ';' or '}' is a
// property declaration.
func parseRuleOrDecl(toks *Tokens, scope *Scope, sel Selector, rules *[]*Rule, current *Rule) error {
	run, stop := readStatementHead(toks)
	span := mergeTokenSpans(run)

	if stop == '{' {
		newSel := sel.Zip(NewSelector(tokensText(run)))
		rule := &Rule{Selector: newSel}
		*rules = append(*rules, rule)
		return parseBody(toks, NewScope(scope), newSel, rules, rule, false)
	}

	// property declaration
	if current == nil {
		return errSpan("Declarations may only be used within style rules.", span)
	}
	colon := -1
	for i, t := range run {
		if t.Kind == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return errSpan(`expected ":".`, span)
	}
	prop := strings.Join(strings.Fields(tokensText(run[:colon])), " ")
	if prop == "" {
		return errSpan("Expected identifier.", span)
	}
	v, vspan, err := valueFromTokens(run[colon+1:], scope, sel)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return nil
	}
	s, err := v.ToCSSString(vspan)
	if err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	current.Styles = append(current.Styles, Style{Property: prop, Value: s})
	return nil
}

// readStatementHead copies tokens up to the first top-level '{', ';' or
// '}'. A ';' or '{' stop is consumed; '}' is left for the caller. stop is 0
// at end of input.
func readStatementHead(toks *Tokens) (run []Token, stop rune) {
	for {
		tok, ok := toks.Peek()
		if !ok {
			return run, 0
		}
		switch tok.Kind {
		case '{', ';':
			toks.Next()
			return run, tok.Kind
		case '}':
			return run, '}'
		case '(':
			toks.Next()
			run = append(run, tok)
			run = append(run, readUntilClosingParen(toks)...)
		case '[':
			toks.Next()
			run = append(run, tok)
			run = append(run, readUntilClosingSquareBrace(toks)...)
		case '"', '\'':
			toks.Next()
			run = append(run, tok)
			run = append(run, readUntilClosingQuote(toks, tok.Kind)...)
		default:
			toks.Next()
			run = append(run, tok)
		}
	}
}

// readUntilOpenCurly copies tokens up to a top-level '{', which is consumed
// but not included. ok is false when input ends first.
func readUntilOpenCurly(toks *Tokens) ([]Token, bool) {
	var run []Token
	for {
		tok, ok := toks.Peek()
		if !ok {
			return run, false
		}
		switch tok.Kind {
		case '{':
			toks.Next()
			return run, true
		case '(':
			toks.Next()
			run = append(run, tok)
			run = append(run, readUntilClosingParen(toks)...)
		case '"', '\'':
			toks.Next()
			run = append(run, tok)
			run = append(run, readUntilClosingQuote(toks, tok.Kind)...)
		default:
			toks.Next()
			run = append(run, tok)
		}
	}
}

// execFunction invokes a user-defined @function: arguments bind into a
// child scope and the body runs until its @return.
func execFunction(fn *Function, args *CallArgs, scope *Scope, sel Selector) (Value, error) {
	child := NewScope(scope)
	if err := bindArgs(fn.Args, args, scope, sel, child); err != nil {
		return Value{}, err
	}
	v, returned, err := execFunctionBody(NewTokens(fn.Body), child, sel)
	if err != nil {
		return Value{}, err
	}
	if !returned {
		return Value{}, errSpan("This function finished without an @return.", args.Span())
	}
	return v, nil
}

// execFunctionBody runs function-body statements: variable declarations,
// @if chains and @return. returned is false when the run ends without one.
func execFunctionBody(toks *Tokens, scope *Scope, sel Selector) (Value, bool, error) {
	for {
		if _, err := devourWhitespaceOrComment(toks); err != nil {
			return Value{}, false, err
		}
		tok, ok := toks.Peek()
		if !ok {
			return Value{}, false, nil
		}
		switch tok.Kind {
		case '$':
			if err := parseVarDecl(toks, scope, sel); err != nil {
				return Value{}, false, err
			}
		case '@':
			at, _ := toks.Next()
			word, wsp := eatIdent(toks)
			switch word {
			case "return":
				run := readUntilSemicolonOrClosingCurly(toks)
				v, _, err := valueFromTokens(run, scope, sel)
				if err != nil {
					return Value{}, false, err
				}
				return v, true, nil
			case "if":
				v, returned, err := execFunctionIf(toks, scope, sel)
				if err != nil {
					return Value{}, false, err
				}
				if returned {
					return v, true, nil
				}
			default:
				return Value{}, false, errSpan(fmt.Sprintf("@%s is not allowed in a function.", word), at.Pos.Merge(wsp))
			}
		default:
			return Value{}, false, errSpan(fmt.Sprintf("Unexpected token %q.", string(tok.Kind)), tok.Pos)
		}
	}
}

func execFunctionIf(toks *Tokens, scope *Scope, sel Selector) (Value, bool, error) {
	matched := false
	cond := true
	var out Value
	var returned bool
	for {
		if cond {
			run, ok := readUntilOpenCurly(toks)
			if !ok {
				return Value{}, false, errSpan(`expected "{".`, toks.eofSpan())
			}
			v, _, err := valueFromTokens(run, scope, sel)
			if err != nil {
				return Value{}, false, err
			}
			body := readUntilClosingCurly(toks)
			if !matched && v.IsTrue() {
				matched = true
				out, returned, err = execFunctionBody(NewTokens(body), NewScope(scope), sel)
				if err != nil {
					return Value{}, false, err
				}
			}
		} else {
			devourWhitespace(toks)
			tok, ok := toks.Next()
			if !ok || tok.Kind != '{' {
				return Value{}, false, errSpan(`expected "{".`, spanOf(tok, ok, toks))
			}
			body := readUntilClosingCurly(toks)
			if !matched {
				matched = true
				var err error
				out, returned, err = execFunctionBody(NewTokens(body), NewScope(scope), sel)
				if err != nil {
					return Value{}, false, err
				}
			}
		}

		if !eatElse(toks) {
			return out, returned, nil
		}
		devourWhitespace(toks)
		word, wsp := eatIdent(toks)
		switch word {
		case "if":
			cond = true
		case "":
			cond = false
		default:
			return Value{}, false, errSpan(`expected "{".`, wsp)
		}
	}
}
