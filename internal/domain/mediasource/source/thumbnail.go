// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

// GetThumbnail requests a thumbnail at the given normalized position
// (§6 "get-thumbnail"). The result is an async push to the thumbnail
// manager's own requester mechanism; this call only validates the
// position and forwards the request.
func (a *Actor) GetThumbnail(ctx context.Context, position float64, jobUUID uuid.UUID) error {
	if position < 0 || position > 1 {
		return model.InvalidFrameIndex("thumbnail position must be within [0, 1]")
	}
	snap, err := actor.Request(ctx, a.mb, func() (thumbnailSnapshot, error) {
		logicalFrame := int(position * float64(a.base.MediaReference.Duration.Frames-1))
		if logicalFrame < 0 {
			logicalFrame = 0
		}
		uri, _, err := a.base.MediaReference.URIAt(logicalFrame)
		if err != nil {
			return thumbnailSnapshot{}, err
		}
		return thumbnailSnapshot{uri: uri, logicalFrame: logicalFrame}, nil
	})
	if err != nil {
		return err
	}
	if a.rt.Thumbnails == nil {
		return nil
	}
	a.rt.Thumbnails.Generate(ctx, a.base.UUID, snap.uri, snap.logicalFrame)
	return nil
}

type thumbnailSnapshot struct {
	uri          string
	logicalFrame int
}

// CancelThumbnail forwards a cancellation verbatim to the thumbnail
// manager, keyed by job uuid (§5 "Cancellation").
func (a *Actor) CancelThumbnail(ctx context.Context, jobUUID uuid.UUID) {
	if a.rt.Thumbnails == nil {
		return
	}
	a.rt.Thumbnails.Invalidate(ctx, jobUUID)
}
