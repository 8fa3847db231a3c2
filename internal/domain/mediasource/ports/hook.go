// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"context"

	"github.com/google/uuid"
)

// MediaHookRegistry fires fire-and-forget notification hooks after a
// source's detail or metadata changes (§4.6, "Media hook"). Hook errors
// are logged, never propagated to the caller that triggered them.
type MediaHookRegistry interface {
	// PostMediaSourcesChanged notifies registered hooks that sourceUUID
	// acquired (or re-acquired) its detail.
	PostMediaSourcesChanged(ctx context.Context, sourceUUID uuid.UUID, uris []string)
}
