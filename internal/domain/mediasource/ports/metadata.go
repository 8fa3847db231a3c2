// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"context"

	"github.com/google/uuid"
)

// MetadataStore is the key-path metadata backing for a source and its
// streams (§4.5, §4.6). Paths are slash-separated, e.g.
// "/metadata/media/@/path/to/file".
type MetadataStore interface {
	// Get returns the JSON value stored at path under owner, or
	// model.ErrNoFrames-class error if nothing is stored there.
	Get(ctx context.Context, owner uuid.UUID, path string) ([]byte, error)

	// Set stores value at path under owner, replacing whatever was
	// there.
	Set(ctx context.Context, owner uuid.UUID, path string, value []byte) error

	// Merge merges value's top-level keys into whatever JSON object is
	// already stored at path (creating it if absent), per the reader
	// "full probe" metadata merge semantics of §4.5. A nested object
	// under a merged key replaces the stored one; it is not merged.
	Merge(ctx context.Context, owner uuid.UUID, path string, value []byte) error

	// SetAt stores value at path, nested one level further under key —
	// used for per-frame metadata merge, where each probed frame's
	// result is attached under its own file-frame key (§4.5).
	SetAt(ctx context.Context, owner uuid.UUID, path, key string, value []byte) error

	// Clear removes every entry stored under owner. Acquire-detail does
	// not call it; metadata stored before a re-acquire is kept.
	Clear(ctx context.Context, owner uuid.UUID) error

	// GetAll returns every path currently stored under owner, keyed by
	// path. Paths are exact keys, not a tree — "/" is stored the same as
	// any other path and is never a wildcard for this call. Used by
	// Serialise (§4.8) and Duplicate's metadata copy (§4.7), which both
	// need the owner's whole stored set, not one path.
	GetAll(ctx context.Context, owner uuid.UUID) (map[string][]byte, error)
}
