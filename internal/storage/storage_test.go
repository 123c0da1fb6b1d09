package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("plain path resolves to local", func(t *testing.T) {
		fs, base, err := Resolve("./data/tracker")
		require.NoError(t, err)
		assert.IsType(t, Local{}, fs)
		assert.Equal(t, "./data/tracker", base)
	})

	t.Run("file scheme resolves to local", func(t *testing.T) {
		fs, base, err := Resolve("file:///var/data/tracker")
		require.NoError(t, err)
		assert.IsType(t, Local{}, fs)
		assert.Equal(t, "/var/data/tracker", base)
	})

	t.Run("windows drive letter is a path not a scheme", func(t *testing.T) {
		fs, _, err := Resolve(`C:\data\tracker`)
		require.NoError(t, err)
		assert.IsType(t, Local{}, fs)
	})

	t.Run("remote schemes are recognized but unconfigured", func(t *testing.T) {
		for _, uri := range []string{"s3://bucket/path", "az://container/path", "gs://bucket/path", "abfs://container/path"} {
			_, _, err := Resolve(uri)
			assert.Error(t, err, "uri %s", uri)
		}
	})
}

func TestIsRemoteURI(t *testing.T) {
	assert.True(t, IsRemoteURI("s3://bucket/key"))
	assert.True(t, IsRemoteURI("az://container/blob"))
	assert.False(t, IsRemoteURI("./local/path"))
	assert.False(t, IsRemoteURI("file:///local/path"))
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.csv"), []byte("y"), 0o644))

	fs := Local{}

	t.Run("exists", func(t *testing.T) {
		ok, err := fs.Exists(dir)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = fs.Exists(filepath.Join(dir, "missing"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("glob returns sorted matches", func(t *testing.T) {
		matches, err := fs.Glob(filepath.Join(dir, "sub", "*.csv"))
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "a.csv", filepath.Base(matches[0]))
		assert.Equal(t, "b.csv", filepath.Base(matches[1]))
	})

	t.Run("open reads content", func(t *testing.T) {
		f, err := fs.Open(filepath.Join(dir, "sub", "a.csv"))
		require.NoError(t, err)
		defer f.Close()

		buf := make([]byte, 1)
		_, err = f.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, byte('y'), buf[0])
	})
}
