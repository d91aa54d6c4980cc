package grass

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Strings_CaseConversion(t *testing.T) {
	assert.Equal(t, `"ABC"`, expr(t, `to-upper-case("abc")`))
	assert.Equal(t, `"abc"`, expr(t, `to-lower-case("ABC")`))
	assert.Equal(t, "abc", expr(t, "to-lower-case(ABC)"))
}

func Test_Strings_Length(t *testing.T) {
	assert.Equal(t, "5", expr(t, `str-length("hello")`))
	assert.Equal(t, "0", expr(t, `str-length("")`))
	assert.Equal(t, "3", expr(t, "str-length(abc)"))
}

func Test_Strings_QuoteUnquote(t *testing.T) {
	assert.Equal(t, `"foo"`, expr(t, "quote(foo)"))
	assert.Equal(t, "foo", expr(t, `unquote("foo")`))
	assert.Equal(t, "1px", expr(t, "unquote(1px)"))
}

func Test_Strings_Slice(t *testing.T) {
	assert.Equal(t, `"bc"`, expr(t, `str-slice("abcd", 2, 3)`))
	assert.Equal(t, `"bcd"`, expr(t, `str-slice("abcd", 2)`))
	assert.Equal(t, `"cd"`, expr(t, `str-slice("abcd", -2)`))
	assert.Equal(t, `"abcd"`, expr(t, `str-slice("abcd", 0)`))
	assert.Equal(t, `""`, expr(t, `str-slice("abcd", 3, 2)`))
	assert.Equal(t, `"bcd"`, expr(t, `str-slice($string: "abcd", $start-at: 2)`))
}

func Test_Strings_Index(t *testing.T) {
	assert.Equal(t, "2", expr(t, `str-index("abcd", "bc")`))
	assert.Equal(t, "1", expr(t, `str-index("abcd", "a")`))
	assert.Equal(t, "", expr(t, `str-index("abcd", "x")`))
}

func Test_Strings_Insert(t *testing.T) {
	assert.Equal(t, `"Xabcd"`, expr(t, `str-insert("abcd", "X", 1)`))
	assert.Equal(t, `"abXcd"`, expr(t, `str-insert("abcd", "X", 3)`))
	assert.Equal(t, `"abcdX"`, expr(t, `str-insert("abcd", "X", -1)`))
}

func Test_Strings_UniqueID(t *testing.T) {
	id := expr(t, "unique-id()")
	assert.True(t, strings.HasPrefix(id, "u"))
	assert.Len(t, id, 9)
	assert.NotEqual(t, id, expr(t, "unique-id()"))
}

func Test_Strings_TypeErrors(t *testing.T) {
	assert.Equal(t, "$string: 1 is not a string.", exprErr(t, "str-length(1)"))
	assert.Equal(t, "$string: red is not a string.", exprErr(t, "quote(red)"))
	assert.Equal(t, `$start-at: "x" is not a number.`, exprErr(t, `str-slice("abcd", "x")`))
}

func Test_Strings_Arity(t *testing.T) {
	assert.Equal(t, "Only 1 argument allowed, but 2 were passed.",
		exprErr(t, `str-length("a", "b")`))
	assert.Equal(t, "Only 0 arguments allowed, but 1 was passed.",
		exprErr(t, "unique-id(1)"))
}
