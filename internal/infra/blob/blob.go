// Package blob implements repository.BlobStore over S3-compatible object storage,
// a local directory, and memory.
package blob

import "errors"

// ErrInvalidKey is returned for keys that are empty or escape the store's root.
var ErrInvalidKey = errors.New("invalid blob key")
