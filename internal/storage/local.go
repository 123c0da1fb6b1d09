package storage

import (
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Local implements Storage over the local filesystem.
type Local struct{}

func (Local) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (Local) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func (Local) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
