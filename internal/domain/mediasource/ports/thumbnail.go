// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"context"

	"github.com/google/uuid"
)

// ThumbnailManager generates and invalidates a source's preview
// thumbnail (§4.6, supplemented feature — original's thumbnail_manager
// collaborator). Generation is best-effort and never blocks detail
// acquisition.
type ThumbnailManager interface {
	Invalidate(ctx context.Context, sourceUUID uuid.UUID)
	Generate(ctx context.Context, sourceUUID uuid.UUID, uri string, logicalFrame int)
}
