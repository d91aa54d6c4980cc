package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Ordering_UnitlessComparisons(t *testing.T) {
	assert.Equal(t, "true", expr(t, "1 < 2"))
	assert.Equal(t, "false", expr(t, "2 < 1"))
	assert.Equal(t, "true", expr(t, "100 <= 100"))
	assert.Equal(t, "false", expr(t, "100 < 100"))
	assert.Equal(t, "true", expr(t, "2 >= 2"))
}

func Test_Ordering_CrossUnitComparisons(t *testing.T) {
	assert.Equal(t, "true", expr(t, "2in > 1cm"))
	assert.Equal(t, "true", expr(t, "1in == 96px"))
	assert.Equal(t, "true", expr(t, "1turn > 350deg"))
	assert.Equal(t, "true", expr(t, "1s > 999ms"))
	assert.Equal(t, "false", expr(t, "1cm > 10mm"))
}

func Test_Ordering_UndefinedOperations(t *testing.T) {
	assert.Equal(t, `Undefined operation "a > b".`, exprErr(t, "a > b"))
	assert.Equal(t, `Undefined operation "1 > b".`, exprErr(t, "1 > b"))
	assert.Equal(t, `Undefined operation "a < 1".`, exprErr(t, "a < 1"))
	assert.Equal(t, `Undefined operation "1 > "b"".`, exprErr(t, `1 > "b"`))
}

func Test_Ordering_UnitlessOnlyMeetsUnitless(t *testing.T) {
	assert.Contains(t, exprErr(t, "1 > 1px"), "Incompatible units")
	assert.Contains(t, exprErr(t, "1px < 1"), "Incompatible units")
	assert.Contains(t, exprErr(t, "1px < 1s"), "Incompatible units")
}

func Test_Eval_Equality(t *testing.T) {
	assert.Equal(t, "true", expr(t, "1cm == 10mm"))
	assert.Equal(t, "false", expr(t, "1 == 1px"))
	assert.Equal(t, "true", expr(t, `"abc" == abc`))
	assert.Equal(t, "true", expr(t, "1 != 2"))
	assert.Equal(t, "true", expr(t, "red == red"))
}

func Test_Eval_Arithmetic(t *testing.T) {
	assert.Equal(t, "3px", expr(t, "1px + 2px"))
	assert.Equal(t, "3.54cm", expr(t, "1cm + 1in"))
	assert.Equal(t, "-1", expr(t, "1 - 2"))
	assert.Equal(t, "6px", expr(t, "2 * 3px"))
	assert.Equal(t, "5px", expr(t, "10px / 2"))
	assert.Equal(t, "2", expr(t, "1in / 48px"))
	assert.Equal(t, "1px", expr(t, "7px % 3"))
}

func Test_Eval_DivisionByZero(t *testing.T) {
	assert.Equal(t, "Division by zero.", exprErr(t, "1 / 0"))
	assert.Equal(t, "Division by zero.", exprErr(t, "1 % 0"))
}

func Test_Eval_HexLikeIdentStaysIdent(t *testing.T) {
	// words spelled entirely in hex digits are identifiers; only a
	// leading '#' introduces a hex color
	assert.Equal(t, "abc", expr(t, "abc"))
	assert.Equal(t, "beef", expr(t, "beef"))
	assert.Equal(t, "4", expr(t, "str-length(abba)"))
	assert.Equal(t, "#abc", expr(t, "#abc"))
}

func Test_Eval_IncompatibleUnitAddition(t *testing.T) {
	assert.Equal(t, "Incompatible units: px and s.", exprErr(t, "1px + 1s"))
}

func Test_Eval_MinusStartsListElement(t *testing.T) {
	// `a -b` is a two-element list, `a - b` and `a-b` subtract
	assert.Equal(t, "1 -2", expr(t, "1 -2"))
	assert.Equal(t, "-1", expr(t, "1 - 2"))
	assert.Equal(t, "-1", expr(t, "1-2"))
	assert.Equal(t, "2 -3", expr(t, "1 * 2 -3"))
}

func Test_Eval_UnaryMinus(t *testing.T) {
	assert.Equal(t, "-5px", expr(t, "-5px"))
	assert.Equal(t, "5px", expr(t, "--5px"))
	assert.Equal(t, "-moz-anything", expr(t, "-moz-anything"))
}

func Test_Eval_Lists(t *testing.T) {
	assert.Equal(t, "1px 2px 3px", expr(t, "1px 2px 3px"))
	assert.Equal(t, "a, b, c", expr(t, "a, b, c"))
	assert.Equal(t, "1px 2px, 3px 4px", expr(t, "1px 2px, 3px 4px"))
}

func Test_Eval_StringConcatenation(t *testing.T) {
	assert.Equal(t, `"foobar"`, expr(t, `"foo" + bar`))
	assert.Equal(t, "foo-bar", expr(t, "foo - bar"))
	assert.Equal(t, "10px/twenty", expr(t, "10px / twenty"))
}

func Test_Eval_Keywords(t *testing.T) {
	assert.Equal(t, "true", expr(t, "true"))
	assert.Equal(t, "false", expr(t, "false"))
	assert.Equal(t, "", expr(t, "null"))
}

func Test_Eval_NumberLiterals(t *testing.T) {
	assert.Equal(t, "0.5", expr(t, ".5"))
	assert.Equal(t, "5", expr(t, "5."))
	assert.Equal(t, "50%", expr(t, "50%"))
}

func Test_Eval_UnknownFunctionForwarded(t *testing.T) {
	assert.Equal(t, "-webkit-gradient(1, 2)", expr(t, "-webkit-gradient(1, 2)"))
}

func Test_Eval_VariablesInSession(t *testing.T) {
	s := NewSession()
	_, err := s.Eval("$x: 10px")
	assert.NoError(t, err)
	out, err := s.Eval("$x * 2")
	assert.NoError(t, err)
	assert.Equal(t, "20px", out)
}
