// Package blobstore abstracts storage of persisted bin-column files.
//
// A training pipeline writes each feature matrix once and then reads it many
// times, possibly from many processes, so blobs are immutable: Put replaces a
// blob atomically, and open handles keep reading the bytes they were opened
// on. Implementations must be safe for concurrent use.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a blob does not exist.
var ErrNotFound = errors.New("blobstore: blob not found")

// BlobStore stores named immutable blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Create opens a new blob for streaming writes. The blob becomes
	// visible under name when the returned writer is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Put writes a complete blob atomically.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	io.Closer

	// ReadAt reads len(p) bytes starting at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)

	// Size returns the blob length in bytes.
	Size() int64
}

// WritableBlob is a streaming handle for writing a new blob.
type WritableBlob interface {
	io.Writer
	io.Closer
}

// Mappable is an optional Blob interface for zero-copy access.
type Mappable interface {
	// Bytes returns the blob contents without copying.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll reads the full contents of the blob at name.
// It uses the zero-copy path when the backend supports it (the returned
// bytes are copied regardless, so callers own the result).
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		raw, err := m.Bytes()
		if err == nil {
			out := make([]byte, len(raw))
			copy(out, raw)
			return out, nil
		}
	}

	out := make([]byte, b.Size())
	if _, err := b.ReadAt(ctx, out, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}
