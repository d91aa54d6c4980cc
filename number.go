// number.go — arbitrary-precision numeric magnitudes
//
// Number wraps big.Rat so arithmetic, unit conversion and comparison are
// exact: converting 2in to centimeters and back loses nothing, and equality
// never depends on accumulated float rounding. Rendering follows the usual
// stylesheet convention — integers print without a fraction, decimals print
// with at most ten fractional digits and no trailing zeros.

package grass

import (
	"math"
	"math/big"
	"strings"
)

// Number is an exact decimal magnitude.
type Number struct {
	v *big.Rat
}

// NewNumberInt returns the Number for an integer.
func NewNumberInt(n int64) Number {
	return Number{v: new(big.Rat).SetInt64(n)}
}

// numberFromString parses a decimal literal such as "1", "2.5" or ".5".
// The boolean is false when the text is not a valid decimal.
func numberFromString(s string) (Number, bool) {
	if s == "" || s == "." || strings.Count(s, ".") > 1 {
		return Number{}, false
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Number{}, false
	}
	return Number{v: r}, true
}

func (n Number) rat() *big.Rat {
	if n.v == nil {
		return new(big.Rat)
	}
	return n.v
}

// Arithmetic. Every operation builds a fresh Number.

func (n Number) Add(o Number) Number { return Number{v: new(big.Rat).Add(n.rat(), o.rat())} }
func (n Number) Sub(o Number) Number { return Number{v: new(big.Rat).Sub(n.rat(), o.rat())} }
func (n Number) Mul(o Number) Number { return Number{v: new(big.Rat).Mul(n.rat(), o.rat())} }

// Div returns n/o. Division by zero is the caller's error to detect via
// o.IsZero; Div on a zero divisor returns the zero Number.
func (n Number) Div(o Number) Number {
	if o.IsZero() {
		return Number{}
	}
	return Number{v: new(big.Rat).Quo(n.rat(), o.rat())}
}

// Mod returns the remainder of truncated division, exact.
func (n Number) Mod(o Number) Number {
	if o.IsZero() {
		return Number{}
	}
	q := new(big.Rat).Quo(n.rat(), o.rat())
	t := new(big.Int).Quo(q.Num(), q.Denom())
	return n.Sub(o.Mul(Number{v: new(big.Rat).SetInt(t)}))
}

func (n Number) Neg() Number { return Number{v: new(big.Rat).Neg(n.rat())} }
func (n Number) Abs() Number { return Number{v: new(big.Rat).Abs(n.rat())} }

// Cmp returns -1, 0 or +1 comparing exact magnitudes.
func (n Number) Cmp(o Number) int { return n.rat().Cmp(o.rat()) }

// Equal reports exact equality of magnitudes.
func (n Number) Equal(o Number) bool { return n.Cmp(o) == 0 }

// IsInt reports whether the magnitude is integral.
func (n Number) IsInt() bool { return n.rat().IsInt() }

// IsDecimal reports whether the magnitude has a fractional part.
func (n Number) IsDecimal() bool { return !n.IsInt() }

func (n Number) IsZero() bool     { return n.rat().Sign() == 0 }
func (n Number) IsPositive() bool { return n.rat().Sign() > 0 }
func (n Number) IsNegative() bool { return n.rat().Sign() < 0 }

// ToInteger returns the magnitude truncated toward zero as a big integer.
func (n Number) ToInteger() *big.Int {
	r := n.rat()
	return new(big.Int).Quo(r.Num(), r.Denom())
}

// ToInt converts an integral, in-range magnitude to an int. The boolean is
// false — never a panic — when the value has a fractional part or does not
// fit.
func (n Number) ToInt() (int, bool) {
	if !n.IsInt() {
		return 0, false
	}
	i := n.ToInteger()
	if !i.IsInt64() {
		return 0, false
	}
	v := i.Int64()
	if v > math.MaxInt || v < math.MinInt {
		return 0, false
	}
	return int(v), true
}

// numberPrecision bounds the fractional digits printed for non-integral
// magnitudes.
const numberPrecision = 10

// String renders the magnitude: integers without a fraction, decimals with
// at most numberPrecision fractional digits and trailing zeros trimmed.
func (n Number) String() string {
	r := n.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	s := r.FloatString(numberPrecision)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
