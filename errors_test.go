package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Errors_CarrySpans(t *testing.T) {
	src := "a {\n  color: $color;\n}\n"
	_, err := Compile(src)
	require.Error(t, err)

	e, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "Undefined variable: $color.", e.Msg)
	assert.Equal(t, 13, e.Span.Start)
}

func Test_Errors_SnippetRendering(t *testing.T) {
	src := "a {\n  color: $color;\n}\n"
	_, err := Compile(src)
	require.Error(t, err)

	want := "Error at 2:10: Undefined variable: $color.\n" +
		"\n" +
		"   1 | a {\n" +
		"   2 |   color: $color;\n" +
		"     |          ^\n" +
		"   3 | }\n"
	assert.Equal(t, want, WrapErrorWithSource(err, src).Error())
}

func Test_Errors_SnippetWithName(t *testing.T) {
	src := "a { width: 1px + 1s; }"
	_, err := Compile(src)
	require.Error(t, err)

	wrapped := WrapErrorWithName(err, "styles.scss", src).Error()
	assert.Contains(t, wrapped, "Error in styles.scss at ")
	assert.Contains(t, wrapped, "Incompatible units: px and s.")
	assert.Contains(t, wrapped, "^")
}

func Test_Errors_NonCompilerErrorsPassThrough(t *testing.T) {
	err := assert.AnError
	assert.Equal(t, err, WrapErrorWithSource(err, "whatever"))
}
