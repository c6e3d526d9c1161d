// Package post implements the read side of the content API: filtered listings,
// full fetches with the body from the blob store, and the tag aggregate.
package post

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable is matched by every *StoreError via errors.Is.
	ErrStoreUnavailable = errors.New("metadata store unavailable")

	// ErrBlobUnavailable is matched by every *BlobError via errors.Is.
	ErrBlobUnavailable = errors.New("blob store unavailable")
)

// StoreError wraps a failure of the relational metadata store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// BlobError wraps a failure of the blob store. A missing blob is not an error.
type BlobError struct {
	Key string
	Err error
}

func (e *BlobError) Error() string {
	return fmt.Sprintf("blob %s: %v", e.Key, e.Err)
}

func (e *BlobError) Unwrap() error { return e.Err }

func (e *BlobError) Is(target error) bool { return target == ErrBlobUnavailable }
