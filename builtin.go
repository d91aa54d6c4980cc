// builtin.go — registry and call-site plumbing for built-in functions
//
// Builtins receive the raw CallArgs so each one binds exactly the parameters
// it declares, in the same positional-then-named order user functions use.
// The catalogs register themselves into a single package map; dispatch in
// evalFunctionCall consults it after user-defined functions and before
// plain-CSS forwarding.

package grass

import "fmt"

// Builtin is one built-in function.
type Builtin func(args *CallArgs, scope *Scope, sel Selector) (Value, error)

var builtins = make(map[string]Builtin)

func init() {
	registerStringBuiltins(builtins)
	registerMathBuiltins(builtins)
	registerColorBuiltins(builtins)
}

// arg resolves a declared parameter: positional match first, then named,
// otherwise the missing-argument error.
func arg(args *CallArgs, pos int, name string, scope *Scope, sel Selector) (Value, error) {
	v, ok, err := args.GetPositional(pos, scope, sel)
	if err != nil || ok {
		return v, err
	}
	v, ok, err = args.GetNamed(name, scope, sel)
	if err != nil || ok {
		return v, err
	}
	return Value{}, errSpan(fmt.Sprintf("Missing argument $%s.", name), args.Span())
}

// argOr is arg with a default for optional parameters.
func argOr(args *CallArgs, pos int, name string, def Value, scope *Scope, sel Selector) (Value, error) {
	v, ok, err := args.GetPositional(pos, scope, sel)
	if err != nil || ok {
		return v, err
	}
	v, ok, err = args.GetNamed(name, scope, sel)
	if err != nil || ok {
		return v, err
	}
	return def, nil
}

func wantNumber(v Value, name string, sp Span) (dimension, error) {
	if v.Tag != VDimension {
		return dimension{}, errSpan(fmt.Sprintf("$%s: %s is not a number.", name, v.inspect()), sp)
	}
	return v.dim(), nil
}

func wantString(v Value, name string, sp Span) (identData, error) {
	if v.Tag != VIdent {
		return identData{}, errSpan(fmt.Sprintf("$%s: %s is not a string.", name, v.inspect()), sp)
	}
	return v.ident(), nil
}

func wantColor(v Value, name string, sp Span) (*Color, error) {
	if v.Tag != VColor {
		return nil, errSpan(fmt.Sprintf("$%s: %s is not a color.", name, v.inspect()), sp)
	}
	return v.color(), nil
}
