// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"context"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

// FrameCache is the decoded-frame cache a source invalidates entries in
// through invalidate-cache (§4.4, "Cache key service"). One FrameCache instance exists per media type.
type FrameCache interface {
	// Erase removes every cached entry addressed by keys, best-effort:
	// a key with no cached entry is not an error. Returns the number of
	// keys actually evicted.
	Erase(ctx context.Context, keys []model.MediaKey) (int, error)

	// Contains reports whether key currently has a cached entry, used
	// by tests and diagnostics.
	Contains(ctx context.Context, key model.MediaKey) bool
}
