// value.go — the closed set of expression results
//
// Value is a tagged union: the tag selects which shape Data holds. Every
// consumption site switches exhaustively on the tag, so "is not a string" /
// "is not a number" checks are total, and a new variant is a compile-time
// exercise of every switch. Values are immutable once produced; evaluation
// always builds a fresh Value.

package grass

import (
	"fmt"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VNull      ValueTag = iota // null (no payload)
	VBool                      // bool
	VDimension                 // dimension (Number + Unit)
	VIdent                     // identData (text + quoting)
	VColor                     // *Color
	VList                      // listData (values + separator)
)

// QuoteKind distinguishes quoted strings from raw identifiers.
type QuoteKind int

const (
	QuoteNone QuoteKind = iota
	QuoteQuoted
)

// ListSeparator is how a list's elements were joined.
type ListSeparator int

const (
	SepSpace ListSeparator = iota
	SepComma
)

func (s ListSeparator) String() string {
	if s == SepComma {
		return ", "
	}
	return " "
}

type dimension struct {
	Num  Number
	Unit Unit
}

type identData struct {
	S string
	Q QuoteKind
}

type listData struct {
	Vals []Value
	Sep  ListSeparator
}

// Value is the universal expression result. Tag determines which Go type
// Data holds: nil, bool, dimension, identData, *Color or listData.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Tag: VNull}

func BoolVal(b bool) Value { return Value{Tag: VBool, Data: b} }

func DimensionVal(n Number, u Unit) Value {
	return Value{Tag: VDimension, Data: dimension{Num: n, Unit: u}}
}

func IdentVal(s string, q QuoteKind) Value {
	return Value{Tag: VIdent, Data: identData{S: s, Q: q}}
}

func ColorVal(c *Color) Value { return Value{Tag: VColor, Data: c} }

func ListVal(vals []Value, sep ListSeparator) Value {
	return Value{Tag: VList, Data: listData{Vals: vals, Sep: sep}}
}

func (v Value) dim() dimension   { return v.Data.(dimension) }
func (v Value) ident() identData { return v.Data.(identData) }
func (v Value) color() *Color    { return v.Data.(*Color) }
func (v Value) list() listData   { return v.Data.(listData) }

// IsTrue implements stylesheet truthiness: everything except null and false.
func (v Value) IsTrue() bool {
	switch v.Tag {
	case VNull:
		return false
	case VBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// IsNull reports the null variant.
func (v Value) IsNull() bool { return v.Tag == VNull }

// ToCSSString renders the value as it appears in emitted CSS. The span is
// reported with any rendering failure (e.g. a list holding an unprintable
// member).
func (v Value) ToCSSString(span Span) (string, error) {
	switch v.Tag {
	case VNull:
		return "", nil
	case VBool:
		if v.Data.(bool) {
			return "true", nil
		}
		return "false", nil
	case VDimension:
		d := v.dim()
		return d.Num.String() + d.Unit.String(), nil
	case VIdent:
		id := v.ident()
		if id.Q == QuoteQuoted {
			return `"` + id.S + `"`, nil
		}
		return id.S, nil
	case VColor:
		return v.color().String(), nil
	case VList:
		l := v.list()
		parts := make([]string, 0, len(l.Vals))
		for _, el := range l.Vals {
			if el.IsNull() {
				continue
			}
			s, err := el.ToCSSString(span)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, l.Sep.String()), nil
	default:
		return "", errSpan(fmt.Sprintf("Unprintable value (tag %d).", v.Tag), span)
	}
}

// inspect renders the value for an error message; unlike ToCSSString it
// never fails (nested failures degrade to the empty string).
func (v Value) inspect() string {
	s, err := v.ToCSSString(Span{})
	if err != nil {
		return ""
	}
	return s
}

// Equal implements the == operator. Dimensions compare unit-aware within a
// family; quoting does not participate in string equality; everything else
// compares structurally.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VNull:
		return true
	case VBool:
		return v.Data.(bool) == o.Data.(bool)
	case VDimension:
		a, b := v.dim(), o.dim()
		if !a.Unit.Comparable(b.Unit) {
			return false
		}
		return a.Num.Equal(convert(b.Num, b.Unit, a.Unit))
	case VIdent:
		return v.ident().S == o.ident().S
	case VColor:
		a, b := v.color(), o.color()
		return a.R == b.R && a.G == b.G && a.B == b.B && a.A == b.A
	case VList:
		a, b := v.list(), o.list()
		if len(a.Vals) != len(b.Vals) || a.Sep != b.Sep {
			return false
		}
		for i := range a.Vals {
			if !a.Vals[i].Equal(b.Vals[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// unquote strips quoting from strings and recursively from list members;
// other values pass through unchanged.
func (v Value) unquote() Value {
	switch v.Tag {
	case VIdent:
		return IdentVal(v.ident().S, QuoteNone)
	case VList:
		l := v.list()
		out := make([]Value, len(l.Vals))
		for i, el := range l.Vals {
			out[i] = el.unquote()
		}
		return ListVal(out, l.Sep)
	default:
		return v
	}
}
