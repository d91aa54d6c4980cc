package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Value_Truthiness(t *testing.T) {
	assert.False(t, Null.IsTrue())
	assert.False(t, BoolVal(false).IsTrue())
	assert.True(t, BoolVal(true).IsTrue())
	assert.True(t, DimensionVal(NewNumberInt(0), NoUnit).IsTrue())
	assert.True(t, IdentVal("", QuoteQuoted).IsTrue())
	assert.True(t, ListVal(nil, SepSpace).IsTrue())
}

func Test_Value_Equality(t *testing.T) {
	cm := DimensionVal(NewNumberInt(1), UnitFromString("cm"))
	mm := DimensionVal(NewNumberInt(10), UnitFromString("mm"))
	px := DimensionVal(NewNumberInt(1), UnitFromString("px"))
	assert.True(t, cm.Equal(mm))
	assert.False(t, cm.Equal(px))

	assert.True(t, IdentVal("a", QuoteQuoted).Equal(IdentVal("a", QuoteNone)))
	assert.False(t, IdentVal("a", QuoteNone).Equal(IdentVal("b", QuoteNone)))

	assert.False(t, BoolVal(true).Equal(DimensionVal(NewNumberInt(1), NoUnit)))

	l1 := ListVal([]Value{cm, px}, SepComma)
	l2 := ListVal([]Value{mm, px}, SepComma)
	l3 := ListVal([]Value{cm, px}, SepSpace)
	assert.True(t, l1.Equal(l2))
	assert.False(t, l1.Equal(l3))
}

func Test_Value_ToCSSString(t *testing.T) {
	s, err := Null.ToCSSString(Span{})
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, _ = IdentVal("abc", QuoteQuoted).ToCSSString(Span{})
	assert.Equal(t, `"abc"`, s)

	s, _ = DimensionVal(num(t, "1.5"), UnitFromString("em")).ToCSSString(Span{})
	assert.Equal(t, "1.5em", s)

	list := ListVal([]Value{
		IdentVal("red", QuoteNone),
		Null,
		IdentVal("blue", QuoteNone),
	}, SepComma)
	s, _ = list.ToCSSString(Span{})
	assert.Equal(t, "red, blue", s)
}

func Test_Value_Unquote(t *testing.T) {
	v := IdentVal("abc", QuoteQuoted).unquote()
	assert.Equal(t, QuoteNone, v.ident().Q)

	list := ListVal([]Value{IdentVal("a", QuoteQuoted)}, SepSpace).unquote()
	assert.Equal(t, QuoteNone, list.list().Vals[0].ident().Q)

	n := DimensionVal(NewNumberInt(1), NoUnit)
	assert.Equal(t, n, n.unquote())
}

func Test_Selector_Normalization(t *testing.T) {
	assert.Equal(t, "a > b", NewSelector("a   >\n  b").String())
	assert.Equal(t, "a, b", NewSelector("a ,b").String())
	assert.True(t, NewSelector("  ").IsEmpty())
}

func Test_Selector_Zip(t *testing.T) {
	a := NewSelector("a")
	assert.Equal(t, "a b", a.Zip(NewSelector("b")).String())
	assert.Equal(t, "a:hover", a.Zip(NewSelector("&:hover")).String())

	parents := NewSelector("a, b")
	assert.Equal(t, "a c, b c", parents.Zip(NewSelector("c")).String())
	assert.Equal(t, "a c, b c, a d, b d", parents.Zip(NewSelector("c, d")).String())
}
