package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(t *testing.T, s string) Number {
	t.Helper()
	n, ok := numberFromString(s)
	require.True(t, ok, "parse %q", s)
	return n
}

func Test_Number_Parsing(t *testing.T) {
	assert.Equal(t, "1", num(t, "1").String())
	assert.Equal(t, "2.5", num(t, "2.5").String())
	assert.Equal(t, "0.5", num(t, ".5").String())
	assert.Equal(t, "5", num(t, "5.").String())

	_, ok := numberFromString("")
	assert.False(t, ok)
	_, ok = numberFromString(".")
	assert.False(t, ok)
	_, ok = numberFromString("1.2.3")
	assert.False(t, ok)
}

func Test_Number_Arithmetic(t *testing.T) {
	assert.Equal(t, "3", num(t, "1").Add(num(t, "2")).String())
	assert.Equal(t, "-1", num(t, "1").Sub(num(t, "2")).String())
	assert.Equal(t, "7.5", num(t, "2.5").Mul(num(t, "3")).String())
	assert.Equal(t, "2.5", num(t, "5").Div(num(t, "2")).String())
	assert.Equal(t, "1", num(t, "7").Mod(num(t, "3")).String())
	assert.Equal(t, "-1", num(t, "7").Neg().Mod(num(t, "3")).String())
	assert.Equal(t, "4", num(t, "4").Neg().Abs().String())
}

func Test_Number_ExactThirds(t *testing.T) {
	third := num(t, "1").Div(num(t, "3"))
	// exact internally, rounded only at render time
	assert.Equal(t, "1", third.Mul(num(t, "3")).String())
	assert.Equal(t, "0.3333333333", third.String())
}

func Test_Number_Predicates(t *testing.T) {
	assert.True(t, num(t, "4").IsInt())
	assert.True(t, num(t, "4.5").IsDecimal())
	assert.True(t, num(t, "0").IsZero())
	assert.True(t, num(t, "1").IsPositive())
	assert.True(t, num(t, "1").Neg().IsNegative())
}

func Test_Number_ToInt(t *testing.T) {
	v, ok := num(t, "42").ToInt()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = num(t, "1.5").ToInt()
	assert.False(t, ok)

	huge := num(t, "99999999999999999999999999")
	_, ok = huge.ToInt()
	assert.False(t, ok)
}

func Test_Number_Rendering(t *testing.T) {
	assert.Equal(t, "1.5", num(t, "1.50").String())
	assert.Equal(t, "100", num(t, "100.000").String())
	// below render precision collapses to zero, never "-0"
	tiny := num(t, "0.00000000000001").Neg()
	assert.Equal(t, "0", tiny.String())
}

func Test_Number_Comparison(t *testing.T) {
	assert.Equal(t, -1, num(t, "1").Cmp(num(t, "2")))
	assert.Equal(t, 0, num(t, "1.0").Cmp(num(t, "1")))
	assert.Equal(t, 1, num(t, "2").Cmp(num(t, "1")))
	assert.True(t, num(t, "0.1").Add(num(t, "0.2")).Equal(num(t, "0.3")))
}
