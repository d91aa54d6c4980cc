// builtin_math.go — the numeric builtin catalog

package grass

import (
	"fmt"
	"math/big"
)

func registerMathBuiltins(m map[string]Builtin) {
	m["percentage"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "number", scope, sel)
		if err != nil {
			return Value{}, err
		}
		d, err := wantNumber(v, "number", args.Span())
		if err != nil {
			return Value{}, err
		}
		if d.Unit != NoUnit {
			return Value{}, errSpan(fmt.Sprintf("$number: Expected %s to have no units.", v.inspect()), args.Span())
		}
		return DimensionVal(d.Num.Mul(NewNumberInt(100)), Unit{Kind: UnitPercent}), nil
	}

	m["round"] = numberBuiltin("number", func(n Number) Number { return roundHalfAway(n) })
	m["ceil"] = numberBuiltin("number", ratCeilNumber)
	m["floor"] = numberBuiltin("number", ratFloorNumber)
	m["abs"] = numberBuiltin("number", func(n Number) Number { return n.Abs() })

	m["comparable"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(2); err != nil {
			return Value{}, err
		}
		v1, err := arg(args, 0, "number1", scope, sel)
		if err != nil {
			return Value{}, err
		}
		d1, err := wantNumber(v1, "number1", args.Span())
		if err != nil {
			return Value{}, err
		}
		v2, err := arg(args, 1, "number2", scope, sel)
		if err != nil {
			return Value{}, err
		}
		d2, err := wantNumber(v2, "number2", args.Span())
		if err != nil {
			return Value{}, err
		}
		return BoolVal(d1.Unit.Comparable(d2.Unit)), nil
	}

	m["unit"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "number", scope, sel)
		if err != nil {
			return Value{}, err
		}
		d, err := wantNumber(v, "number", args.Span())
		if err != nil {
			return Value{}, err
		}
		return IdentVal(d.Unit.String(), QuoteQuoted), nil
	}

	m["unitless"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "number", scope, sel)
		if err != nil {
			return Value{}, err
		}
		d, err := wantNumber(v, "number", args.Span())
		if err != nil {
			return Value{}, err
		}
		return BoolVal(d.Unit == NoUnit), nil
	}

	// if() picks a branch without evaluating the other: the argument slots
	// hold raw tokens until taken.
	m["if"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(3); err != nil {
			return Value{}, err
		}
		cond, err := arg(args, 0, "condition", scope, sel)
		if err != nil {
			return Value{}, err
		}
		if cond.IsTrue() {
			return arg(args, 1, "if-true", scope, sel)
		}
		return arg(args, 2, "if-false", scope, sel)
	}
}

// numberBuiltin wraps a magnitude transform into a one-argument builtin that
// keeps the unit.
func numberBuiltin(param string, f func(Number) Number) Builtin {
	return func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, param, scope, sel)
		if err != nil {
			return Value{}, err
		}
		d, err := wantNumber(v, param, args.Span())
		if err != nil {
			return Value{}, err
		}
		return DimensionVal(f(d.Num), d.Unit), nil
	}
}

// ratFloorNumber rounds toward negative infinity.
func ratFloorNumber(n Number) Number {
	r := n.rat()
	i := new(big.Int).Div(r.Num(), r.Denom())
	return Number{v: new(big.Rat).SetInt(i)}
}

// ratCeilNumber rounds toward positive infinity.
func ratCeilNumber(n Number) Number {
	return ratFloorNumber(n.Neg()).Neg()
}

// roundHalfAway rounds to the nearest integer, halves away from zero.
func roundHalfAway(n Number) Number {
	half := big.NewRat(1, 2)
	if n.IsNegative() {
		return ratCeilNumber(Number{v: new(big.Rat).Sub(n.rat(), half)})
	}
	return ratFloorNumber(Number{v: new(big.Rat).Add(n.rat(), half)})
}
