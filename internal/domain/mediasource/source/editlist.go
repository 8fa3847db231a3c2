// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

// EditListSection is the section a parent playlist uses to build a
// cross-source timeline (original's get_edit_list_atom).
type EditListSection struct {
	UUID     uuid.UUID
	Duration model.Duration
	Timecode model.Timecode
}

// EditListSection returns the edit-list section for this source, or, if
// streamUUID is non-nil, for the named stream within it.
func (a *Actor) EditListSection(ctx context.Context, streamUUID *uuid.UUID) (EditListSection, error) {
	if streamUUID != nil {
		id := *streamUUID
		return actor.Request(ctx, a.mb, func() (EditListSection, error) {
			s, ok := a.streams[id]
			if !ok {
				return EditListSection{}, model.NoStreams()
			}
			detail, err := s.Detail(ctx)
			if err != nil {
				return EditListSection{}, err
			}
			return EditListSection{UUID: id, Duration: detail.Duration, Timecode: a.base.MediaReference.Timecode}, nil
		})
	}
	return actor.Request(ctx, a.mb, func() (EditListSection, error) {
		return EditListSection{
			UUID:     a.base.UUID,
			Duration: a.base.MediaReference.Duration,
			Timecode: a.base.MediaReference.Timecode,
		}, nil
	})
}
