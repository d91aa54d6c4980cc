// builtin_strings.go — the string builtin catalog
//
// Indices in the string functions are 1-based and count runes; negative
// indices count from the end, -1 being the last rune. Results preserve the
// quoting of the primary string argument.

package grass

import (
	"fmt"
	"math/rand"
	"strings"
)

func registerStringBuiltins(m map[string]Builtin) {
	m["to-upper-case"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		id, err := wantString(v, "string", args.Span())
		if err != nil {
			return Value{}, err
		}
		return IdentVal(asciiUpper(id.S), id.Q), nil
	}

	m["to-lower-case"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		id, err := wantString(v, "string", args.Span())
		if err != nil {
			return Value{}, err
		}
		return IdentVal(lowerASCII(id.S), id.Q), nil
	}

	m["str-length"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		id, err := wantString(v, "string", args.Span())
		if err != nil {
			return Value{}, err
		}
		return DimensionVal(NewNumberInt(int64(len([]rune(id.S)))), NoUnit), nil
	}

	m["quote"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		id, err := wantString(v, "string", args.Span())
		if err != nil {
			return Value{}, err
		}
		return IdentVal(id.S, QuoteQuoted), nil
	}

	m["unquote"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		return v.unquote(), nil
	}

	m["str-slice"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(3); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		id, err := wantString(v, "string", args.Span())
		if err != nil {
			return Value{}, err
		}
		runes := []rune(id.S)

		start, err := argIndex(args, 1, "start-at", 1, scope, sel)
		if err != nil {
			return Value{}, err
		}
		end, err := argIndex(args, 2, "end-at", -1, scope, sel)
		if err != nil {
			return Value{}, err
		}

		lo := resolveIndex(start, len(runes))
		hi := resolveIndex(end, len(runes))
		if lo < 1 {
			lo = 1
		}
		if hi > len(runes) {
			hi = len(runes)
		}
		if lo > hi {
			return IdentVal("", id.Q), nil
		}
		return IdentVal(string(runes[lo-1:hi]), id.Q), nil
	}

	m["str-index"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(2); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		id, err := wantString(v, "string", args.Span())
		if err != nil {
			return Value{}, err
		}
		sv, err := arg(args, 1, "substring", scope, sel)
		if err != nil {
			return Value{}, err
		}
		sub, err := wantString(sv, "substring", args.Span())
		if err != nil {
			return Value{}, err
		}
		i := strings.Index(id.S, sub.S)
		if i < 0 {
			return Null, nil
		}
		// byte offset back to a 1-based rune index
		return DimensionVal(NewNumberInt(int64(len([]rune(id.S[:i]))+1)), NoUnit), nil
	}

	m["str-insert"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(3); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "string", scope, sel)
		if err != nil {
			return Value{}, err
		}
		id, err := wantString(v, "string", args.Span())
		if err != nil {
			return Value{}, err
		}
		iv, err := arg(args, 1, "insert", scope, sel)
		if err != nil {
			return Value{}, err
		}
		ins, err := wantString(iv, "insert", args.Span())
		if err != nil {
			return Value{}, err
		}
		idx, err := argIndex(args, 2, "index", 1, scope, sel)
		if err != nil {
			return Value{}, err
		}

		runes := []rune(id.S)
		var at int
		if idx >= 0 {
			at = idx - 1
		} else {
			at = len(runes) + idx + 1
		}
		if at < 0 {
			at = 0
		}
		if at > len(runes) {
			at = len(runes)
		}
		out := string(runes[:at]) + ins.S + string(runes[at:])
		return IdentVal(out, id.Q), nil
	}

	m["unique-id"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(0); err != nil {
			return Value{}, err
		}
		const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
		b := make([]byte, 8)
		for i := range b {
			b[i] = chars[rand.Intn(len(chars))]
		}
		return IdentVal("u"+string(b), QuoteNone), nil
	}
}

// argIndex fetches an optional integer parameter (such as $start-at).
func argIndex(args *CallArgs, pos int, name string, def int, scope *Scope, sel Selector) (int, error) {
	v, err := argOr(args, pos, name, DimensionVal(NewNumberInt(int64(def)), NoUnit), scope, sel)
	if err != nil {
		return 0, err
	}
	d, err := wantNumber(v, name, args.Span())
	if err != nil {
		return 0, err
	}
	n, ok := d.Num.ToInt()
	if !ok {
		return 0, errSpan(fmt.Sprintf("$%s: %s is not an int.", name, v.inspect()), args.Span())
	}
	return n, nil
}

// resolveIndex maps a 1-based, possibly negative index onto a string of the
// given rune length. Zero behaves like 1.
func resolveIndex(idx, length int) int {
	switch {
	case idx < 0:
		return length + idx + 1
	case idx == 0:
		return 1
	default:
		return idx
	}
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
