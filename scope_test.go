package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Scope_BasicVariable(t *testing.T) {
	css(t, "$c: red;\na {\n  color: $c;\n}\n", "a {\n  color: red;\n}\n")
}

func Test_Scope_InnerRulesetReadsOuter(t *testing.T) {
	css(t, "a {\n  $c: red;\n  b {\n    color: $c;\n  }\n}\n",
		"a b {\n  color: red;\n}\n")
}

func Test_Scope_PlainWriteIsolated(t *testing.T) {
	src := "$y: red;\na {\n  $y: blue;\n  color: $y;\n}\nb {\n  color: $y;\n}\n"
	css(t, src, "a {\n  color: blue;\n}\n\nb {\n  color: red;\n}\n")
}

func Test_Scope_GlobalWriteVisibleOutside(t *testing.T) {
	src := "$y: red;\na {\n  $y: blue !global;\n  color: $y;\n}\nb {\n  color: $y;\n}\n"
	css(t, src, "a {\n  color: blue;\n}\n\nb {\n  color: blue;\n}\n")
}

func Test_Scope_GlobalCreatesWhenUnbound(t *testing.T) {
	src := "a {\n  $y: blue !global;\n  color: $y;\n}\nb {\n  color: $y;\n}\n"
	css(t, src, "a {\n  color: blue;\n}\n\nb {\n  color: blue;\n}\n")
}

func Test_Scope_GlobalInMixin(t *testing.T) {
	src := "@mixin m {\n  $y: blue !global;\n}\n$y: red;\na {\n  @include m;\n  color: $y;\n}\n"
	css(t, src, "a {\n  color: blue;\n}\n")
}

func Test_Scope_DefaultDoesNotOverride(t *testing.T) {
	css(t, "$a: red;\n$a: blue !default;\nx {\n  color: $a;\n}\n",
		"x {\n  color: red;\n}\n")
}

func Test_Scope_DefaultBindsWhenUnset(t *testing.T) {
	css(t, "$a: blue !default;\nx {\n  color: $a;\n}\n",
		"x {\n  color: blue;\n}\n")
}

func Test_Scope_DefaultBindsOverNull(t *testing.T) {
	css(t, "$a: null;\n$a: blue !default;\nx {\n  color: $a;\n}\n",
		"x {\n  color: blue;\n}\n")
}

func Test_Scope_UndefinedVariableFails(t *testing.T) {
	fails(t, "a { color: $x; }", "Undefined variable: $x.")
}

func Test_Scope_FunctionVariablesDoNotLeak(t *testing.T) {
	fails(t, "@function f() { $tmp: 1; @return $tmp; } a { width: f(); height: $tmp; }",
		"Undefined variable: $tmp.")
}

func Test_Scope_MixinArgumentsShadow(t *testing.T) {
	src := "$c: red;\n@mixin m($c) {\n  color: $c;\n}\na {\n  @include m(blue);\n  border-color: $c;\n}\n"
	css(t, src, "a {\n  color: blue;\n  border-color: red;\n}\n")
}

func Test_Scope_DirectAPI(t *testing.T) {
	root := NewScope(nil)
	child := NewScope(root)

	root.SetVar("x", IdentVal("outer", QuoteNone))
	v, err := child.GetVar("x", Span{})
	require.NoError(t, err)
	assert.Equal(t, "outer", v.inspect())

	// plain write lands in the child, leaving the root untouched
	child.SetVar("x", IdentVal("inner", QuoteNone))
	v, _ = child.GetVar("x", Span{})
	assert.Equal(t, "inner", v.inspect())
	v, _ = root.GetVar("x", Span{})
	assert.Equal(t, "outer", v.inspect())

	// a global write from the child replaces the root binding
	child2 := NewScope(root)
	child2.SetGlobalVar("x", IdentVal("global", QuoteNone))
	v, _ = root.GetVar("x", Span{})
	assert.Equal(t, "global", v.inspect())

	_, err = child.GetVar("missing", Span{})
	require.Error(t, err)
	assert.Equal(t, "Undefined variable: $missing.", err.Error())

	_, err = child.GetMixin("m", Span{})
	require.Error(t, err)
	assert.Equal(t, "Undefined mixin 'm'.", err.Error())
}
