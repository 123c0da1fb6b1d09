package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	input := "name,count,note\nalpha,1,first\nbeta, ,second\ngamma,3\n"

	table, err := ReadTable(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.True(t, table.HasColumn("count"))
	assert.False(t, table.HasColumn("missing"))

	t.Run("plain cell", func(t *testing.T) {
		v, ok := table.Value(0, "count")
		assert.True(t, ok)
		assert.Equal(t, "1", v)
	})

	t.Run("single space reads as null", func(t *testing.T) {
		_, ok := table.Value(1, "count")
		assert.False(t, ok)
	})

	t.Run("short row reads as null in missing columns", func(t *testing.T) {
		_, ok := table.Value(2, "note")
		assert.False(t, ok)

		v, ok := table.Value(2, "count")
		assert.True(t, ok)
		assert.Equal(t, "3", v)
	})

	t.Run("absent column reads as null", func(t *testing.T) {
		_, ok := table.Value(0, "missing")
		assert.False(t, ok)
	})

	t.Run("out of range row reads as null", func(t *testing.T) {
		_, ok := table.Value(99, "count")
		assert.False(t, ok)
	})
}

func TestReadTableCustomNullTokens(t *testing.T) {
	input := "a,b\n-,x\n"
	table, err := ReadTable(strings.NewReader(input), "", "-")
	require.NoError(t, err)

	_, ok := table.Value(0, "a")
	assert.False(t, ok)

	v, ok := table.Value(0, "b")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestReadTableErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("malformed quoting", func(t *testing.T) {
		_, err := ReadTable(strings.NewReader("a,b\n\"unterminated,1\n"))
		assert.Error(t, err)
	})

	t.Run("header only is an empty table", func(t *testing.T) {
		table, err := ReadTable(strings.NewReader("a,b\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
	})
}
