package dbc

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestTokenizer_NextAndPeek(t *testing.T) {
	tok := newTokenizer([]byte("BO_ 100 Msg: 8 Vector__XXX\nSG_ Sig1"))

	peeked, ok := tok.peek()
	assert.True(t, ok)
	assert.Equal(t, "BO_", peeked)

	got, ok := tok.next()
	assert.True(t, ok)
	assert.Equal(t, "BO_", got, "peek must not consume the token")

	got, ok = tok.next()
	assert.True(t, ok)
	assert.Equal(t, "100", got)
}

func TestTokenizer_QuotedStringIsSingleToken(t *testing.T) {
	tok := newTokenizer([]byte(`BA_DEF_ SG_ "GenSigStartValue" FLOAT 0 10;`))

	tok.next() // BA_DEF_
	tok.next() // SG_
	got, ok := tok.next()
	assert.True(t, ok)
	assert.Equal(t, "GenSigStartValue", got)
}

func TestTokenizer_SkipLineAdvancesToNextLine(t *testing.T) {
	tok := newTokenizer([]byte("first line here\nsecond"))
	tok.next() // "first"
	tok.skipLine()

	got, ok := tok.next()
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestTokenizer_CurrentLineAndLineNumber(t *testing.T) {
	tok := newTokenizer([]byte("BO_ 100 Msg: 8 X\nBAD_TOKEN here\n"))
	tok.skipLine()
	assert.Equal(t, 2, tok.lineNumber())
	assert.Equal(t, "BAD_TOKEN here", tok.currentLine())
}

func TestTokenizer_EmptyInputReturnsFalse(t *testing.T) {
	tok := newTokenizer([]byte(""))
	_, ok := tok.next()
	assert.False(t, ok)
}
