// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// MediaReference returns the source's current MediaReference (§6
// "media-reference-get").
func (a *Actor) MediaReference(ctx context.Context) (model.MediaReference, error) {
	return actor.Request(ctx, a.mb, func() (model.MediaReference, error) {
		return a.base.MediaReference, nil
	})
}

// SetMediaReference replaces the source's MediaReference, broadcasting
// change on success (§6 "media-reference-set").
func (a *Actor) SetMediaReference(ctx context.Context, ref model.MediaReference) (bool, error) {
	return actor.Request(ctx, a.mb, func() (bool, error) {
		a.base.MediaReference = ref
		a.publish(ctx, ports.EventDetailChanged, nil)
		return true, nil
	})
}

// Status returns the source's current MediaStatus (§6 "status-get").
func (a *Actor) Status(ctx context.Context) (model.MediaStatus, error) {
	return actor.Request(ctx, a.mb, func() (model.MediaStatus, error) {
		return a.base.Status, nil
	})
}

// SetStatus updates the source's MediaStatus, broadcasting change (§6
// "status-set").
func (a *Actor) SetStatus(ctx context.Context, status model.MediaStatus) (bool, error) {
	return actor.Request(ctx, a.mb, func() (bool, error) {
		a.base.Status = status
		a.publish(ctx, ports.EventStatusChanged, status)
		return true, nil
	})
}

// ErrorDetail returns the source's recorded error detail, if any.
func (a *Actor) ErrorDetail(ctx context.Context) (string, error) {
	return actor.Request(ctx, a.mb, func() (string, error) {
		return a.base.ErrorDetail, nil
	})
}
