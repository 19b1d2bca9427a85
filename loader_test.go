package dbc

import (
	"github.com/stretchr/testify/assert"
	"github.com/wyfbw07/godbc/dbctest"
	"testing"
)

func TestLoader_CachesByContent(t *testing.T) {
	l, err := NewLoader(4)
	assert.NoError(t, err)

	data := []byte(dbctest.IntelUnsigned)
	db1, err := l.Load(data)
	assert.NoError(t, err)
	db2, err := l.Load(data)
	assert.NoError(t, err)
	assert.Same(t, db1, db2, "identical content must return the cached *Database")
}

func TestLoader_DifferentContentParsesSeparately(t *testing.T) {
	l, err := NewLoader(4)
	assert.NoError(t, err)

	db1, err := l.Load([]byte(dbctest.IntelUnsigned))
	assert.NoError(t, err)
	db2, err := l.Load([]byte(dbctest.MotorolaUnsigned))
	assert.NoError(t, err)
	assert.NotSame(t, db1, db2)
}

func TestLoader_PurgeForcesReparse(t *testing.T) {
	l, err := NewLoader(4)
	assert.NoError(t, err)

	data := []byte(dbctest.IntelUnsigned)
	db1, err := l.Load(data)
	assert.NoError(t, err)

	l.Purge()

	db2, err := l.Load(data)
	assert.NoError(t, err)
	assert.NotSame(t, db1, db2)
}

func TestLoader_PropagatesParseError(t *testing.T) {
	l, err := NewLoader(0)
	assert.NoError(t, err)

	_, err = l.Load([]byte("BO_ bad Msg: 8 X\n"))
	assert.Error(t, err)
}
