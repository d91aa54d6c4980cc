package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lexer_ByteSpans(t *testing.T) {
	toks := Lex("ab")
	a, _ := toks.Next()
	b, _ := toks.Next()
	assert.Equal(t, Span{Start: 0, End: 1}, a.Pos)
	assert.Equal(t, Span{Start: 1, End: 2}, b.Pos)
	_, ok := toks.Next()
	assert.False(t, ok)
}

func Test_Lexer_MultibyteSpans(t *testing.T) {
	toks := Lex("é2")
	e, _ := toks.Next()
	two, _ := toks.Next()
	assert.Equal(t, 'é', e.Kind)
	assert.Equal(t, Span{Start: 0, End: 2}, e.Pos)
	assert.Equal(t, Span{Start: 2, End: 3}, two.Pos)
}

func Test_Tokens_PeekDoesNotConsume(t *testing.T) {
	toks := Lex("xy")
	p0, _ := toks.Peek()
	p1, _ := toks.PeekAt(1)
	assert.Equal(t, 'x', p0.Kind)
	assert.Equal(t, 'y', p1.Kind)
	n, _ := toks.Next()
	assert.Equal(t, 'x', n.Kind)
}

func Test_Tokens_EatIdent(t *testing.T) {
	toks := Lex("foo-bar_9 rest")
	name, sp := eatIdent(toks)
	assert.Equal(t, "foo-bar_9", name)
	assert.Equal(t, Span{Start: 0, End: 9}, sp)

	// empty at a non-ident char
	toks = Lex("(x")
	name, _ = eatIdent(toks)
	assert.Equal(t, "", name)
}

func Test_Tokens_DevourComments(t *testing.T) {
	toks := Lex("  /* a */ // b\nx")
	found, err := devourWhitespaceOrComment(toks)
	require.NoError(t, err)
	assert.True(t, found)
	tok, _ := toks.Peek()
	assert.Equal(t, 'x', tok.Kind)
}

func Test_Tokens_UnterminatedBlockComment(t *testing.T) {
	toks := Lex("/* never")
	_, err := devourWhitespaceOrComment(toks)
	require.Error(t, err)
	assert.Equal(t, `expected "*/".`, err.Error())
}

func Test_Tokens_ReadUntilClosingParen(t *testing.T) {
	toks := Lex("a (b) c) rest")
	got := readUntilClosingParen(toks)
	assert.Equal(t, "a (b) c)", tokensText(got))
	next, _ := toks.Peek()
	assert.Equal(t, ' ', next.Kind)
}

func Test_Tokens_ReadUntilClosingParenIgnoresQuoted(t *testing.T) {
	toks := Lex(`"a)b")x`)
	got := readUntilClosingParen(toks)
	assert.Equal(t, `"a)b")`, tokensText(got))
}

func Test_Tokens_ReadUntilClosingCurly(t *testing.T) {
	toks := Lex("a { b } c } rest")
	got := readUntilClosingCurly(toks)
	assert.Equal(t, "a { b } c ", tokensText(got))
}

func Test_Tokens_ReadUntilSemicolon(t *testing.T) {
	toks := Lex("rgb(1;2), x; tail")
	got := readUntilSemicolonOrClosingCurly(toks)
	assert.Equal(t, "rgb(1;2), x", tokensText(got))
	next, _ := toks.Peek()
	assert.Equal(t, ' ', next.Kind)

	toks = Lex("x }")
	got = readUntilSemicolonOrClosingCurly(toks)
	assert.Equal(t, "x ", tokensText(got))
	next, _ = toks.Peek()
	assert.Equal(t, '}', next.Kind)
}

func Test_Span_Merge(t *testing.T) {
	a := Span{Start: 3, End: 5}
	b := Span{Start: 8, End: 9}
	assert.Equal(t, Span{Start: 3, End: 9}, a.Merge(b))
	assert.Equal(t, a, a.Merge(Span{}))
	assert.Equal(t, a, Span{}.Merge(a))
}

func Test_Span_LineCol(t *testing.T) {
	src := "ab\ncd\nef"
	l, c := lineCol(src, 0)
	assert.Equal(t, []int{1, 1}, []int{l, c})
	l, c = lineCol(src, 4)
	assert.Equal(t, []int{2, 2}, []int{l, c})
	l, c = lineCol(src, 100)
	assert.Equal(t, []int{3, 3}, []int{l, c})
}
