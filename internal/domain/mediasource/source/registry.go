// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/stream"
)

// addStream registers a freshly-constructed stream actor, ordering it
// within its media type (§4.2 "Add stream"). Must be called from within
// the mailbox.
func (a *Actor) addStream(s *stream.Actor) {
	a.streams[s.UUID()] = s
	a.order[s.MediaType()] = append(a.order[s.MediaType()], s.UUID())
	a.base.AddStream(s.MediaType(), s.UUID())
}

// AddStream registers an externally constructed stream actor under this
// source, per §4.2 "Add stream (by address)": the stream's own UUID and
// media type are already known to the caller (it constructed s), so no
// round trip is needed before registering it.
func (a *Actor) AddStream(ctx context.Context, s *stream.Actor) (uuid.UUID, error) {
	return actor.Request(ctx, a.mb, func() (uuid.UUID, error) {
		a.addStream(s)
		a.publish(ctx, ports.EventStreamAdded, s.UUID())
		return s.UUID(), nil
	})
}

// GetCurrentStream returns the current stream actor for mt, failing with
// model.ErrNoStreams if none is selected (§4.2 "Get current stream").
func (a *Actor) GetCurrentStream(ctx context.Context, mt model.MediaType) (*stream.Actor, error) {
	return actor.Request(ctx, a.mb, func() (*stream.Actor, error) {
		id := a.base.Current(mt)
		s, ok := a.streams[id]
		if !ok {
			return nil, model.NoStreams()
		}
		return s, nil
	})
}

// SetCurrentStream updates the current-stream pointer for mt, broadcasting
// change only when the uuid was actually accepted (§4.2 "Set current
// stream").
func (a *Actor) SetCurrentStream(ctx context.Context, mt model.MediaType, id uuid.UUID) (bool, error) {
	return actor.Request(ctx, a.mb, func() (bool, error) {
		ok := a.base.SetCurrent(mt, id)
		if ok {
			a.publish(ctx, ports.EventCurrentChanged, map[string]interface{}{"media_type": mt, "uuid": id})
		}
		return ok, nil
	})
}

// GetStreams returns every known stream of mt, in registration order
// (§4.2 "Get streams").
func (a *Actor) GetStreams(ctx context.Context, mt model.MediaType) ([]*stream.Actor, error) {
	return actor.Request(ctx, a.mb, func() ([]*stream.Actor, error) {
		ids := a.order[mt]
		out := make([]*stream.Actor, 0, len(ids))
		for _, id := range ids {
			if s, ok := a.streams[id]; ok {
				out = append(out, s)
			}
		}
		return out, nil
	})
}

// GetStreamDetail forwards to the current stream of mt (§4.2 "Get
// stream detail"), failing with model.ErrNoStreams when absent.
func (a *Actor) GetStreamDetail(ctx context.Context, mt model.MediaType) (model.StreamDetail, error) {
	s, err := a.GetCurrentStream(ctx, mt)
	if err != nil {
		return model.StreamDetail{}, err
	}
	return s.Detail(ctx)
}
