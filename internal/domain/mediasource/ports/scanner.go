// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

// Scanner watches a source's backing URI for reachability changes and
// reports status transitions (§4.6, supplemented feature — original's
// media status propagation from the filesystem scan thread).
type Scanner interface {
	// Watch begins tracking uri on behalf of sourceUUID. Status changes
	// are delivered to onStatus until ctx is cancelled or Unwatch is
	// called.
	Watch(ctx context.Context, sourceUUID uuid.UUID, uri string, onStatus func(model.MediaStatus)) error
	Unwatch(sourceUUID uuid.UUID)
}
