// Package storage abstracts file access for the ETL so transformers stay
// agnostic about where source CSVs live. The local filesystem is
// implemented here; remote object storage (az://, s3://) is a deployment
// concern recognized by the resolver but provisioned out of band.
package storage

import (
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Storage is the narrow file-access surface the transformers need.
type Storage interface {
	// Exists reports whether the path exists.
	Exists(path string) (bool, error)

	// Glob returns the paths matching a shell pattern, sorted
	// lexicographically so "latest filename" selection is deterministic.
	Glob(pattern string) ([]string, error)

	// Open opens the file at path for reading.
	Open(path string) (io.ReadCloser, error)
}

// remoteSchemes are URI schemes the resolver recognizes as object storage.
var remoteSchemes = map[string]struct{}{
	"az":   {},
	"abfs": {},
	"s3":   {},
	"gs":   {},
}

// IsRemoteURI reports whether uri points at remote object storage.
func IsRemoteURI(uri string) bool {
	u, err := url.Parse(uri)
	if err != nil {
		return false
	}
	_, ok := remoteSchemes[u.Scheme]
	return ok
}

// Resolve maps a source URI to a Storage implementation and the base path
// within it. Plain paths (absolute or relative) and file:// URIs resolve to
// the local filesystem. Remote schemes resolve to an error until a
// blob-backed implementation is wired in by the deployment.
func Resolve(uri string) (Storage, string, error) {
	if uri == "" {
		return Local{}, ".", nil
	}
	if strings.HasPrefix(uri, "/") {
		return Local{}, uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" {
		return Local{}, uri, nil
	}
	if u.Scheme == "file" {
		return Local{}, u.Path, nil
	}
	if _, ok := remoteSchemes[u.Scheme]; ok {
		return nil, "", fmt.Errorf("remote storage %q is not configured: no %s backend available", uri, u.Scheme)
	}

	// Windows drive letters and other one-letter "schemes" are paths.
	if len(u.Scheme) == 1 {
		return Local{}, uri, nil
	}
	return nil, "", fmt.Errorf("unsupported storage URI scheme %q", u.Scheme)
}
