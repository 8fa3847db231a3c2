// SPDX-License-Identifier: Apache-2.0

// Package source implements the Media Source actor: the addressable
// owner of one physical asset and its Media Stream children (§2).
package source

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/stream"
	"github.com/xstudio-go/mediasource/internal/log"
	"github.com/xstudio-go/mediasource/internal/runtime"
)

// ParentRef is the source's weak back-reference to its owning playlist
// (§9 "Parent back-reference"): identity only, never ownership.
type ParentRef struct {
	UUID    uuid.UUID
	Present bool
}

// Actor is a Media Source: a single mailbox-owned Base state record plus
// its Media Stream children, mediating every external interaction
// through the message surface of §6.
type Actor struct {
	mb *actor.Mailbox
	rt runtime.Context

	base    model.Base
	streams map[uuid.UUID]*stream.Actor
	// order preserves stream registration order per media type, needed
	// for duplicate equivalence "by position" (§8 property 6).
	order map[model.MediaType][]uuid.UUID

	parent ParentRef
}

// SourceUUID implements model.SourceRef: the weak back-reference baked
// into every AVFrameID (§9 "Frame descriptor back-reference").
func (a *Actor) SourceUUID() uuid.UUID { return a.base.UUID }

func newBareActor(rt runtime.Context, base model.Base) *Actor {
	return &Actor{
		mb:      actor.NewMailbox(32),
		rt:      rt,
		base:    base,
		streams: make(map[uuid.UUID]*stream.Actor),
		order:   make(map[model.MediaType][]uuid.UUID),
	}
}

// NewSequence constructs a Media Source over an image sequence (lifecycle
// input (b)): acquire-detail is scheduled asynchronously at construction.
func NewSequence(rt runtime.Context, name, uri string, frames model.FrameList, rate model.FrameRate, id uuid.UUID) *Actor {
	ref := model.NewSequenceReference(uri, frames, rate)
	a := newBareActor(rt, model.NewBase(name, ref, id))
	a.notifyScannerOnInit()
	a.scheduleAcquireDetail()
	return a
}

// NewContainer constructs a Media Source over a single-file container
// (lifecycle input (c)).
func NewContainer(rt runtime.Context, name, uri string, rate model.FrameRate, id uuid.UUID) *Actor {
	ref := model.NewContainerReference(uri, rate)
	a := newBareActor(rt, model.NewBase(name, ref, id))
	a.notifyScannerOnInit()
	a.scheduleAcquireDetail()
	return a
}

// NewPreconfigured constructs a Media Source whose MediaReference and
// reader tag are already known (lifecycle input (d)); no acquire-detail
// is scheduled, since the caller asserts the detail is already correct.
func NewPreconfigured(rt runtime.Context, name, readerTag string, ref model.MediaReference, id uuid.UUID) *Actor {
	base := model.NewBase(name, ref, id)
	base.ReaderTag = readerTag
	a := newBareActor(rt, base)
	a.notifyScannerOnInit()
	return a
}

func (a *Actor) notifyScannerOnInit() {
	if a.rt.Scanner == nil {
		return
	}
	uri := a.base.MediaReference.URI
	if uri == "" {
		return
	}
	id := a.base.UUID
	a.mb.Go(func() {
		ctx := log.ContextWithSourceUUID(context.Background(), id.String())
		_ = a.rt.Scanner.Watch(ctx, id, uri, func(status model.MediaStatus) {
			_, _ = actor.Request(context.Background(), a.mb, func() (struct{}, error) {
				a.base.Status = status
				return struct{}{}, nil
			})
			a.publish(context.Background(), ports.EventStatusChanged, status)
		})
	})
}

func (a *Actor) scheduleAcquireDetail() {
	id := a.base.UUID
	fallback := a.rt.FallbackRate()
	a.mb.Go(func() {
		ctx := log.ContextWithSourceUUID(context.Background(), id.String())
		if _, err := a.AcquireDetail(ctx, fallback); err != nil {
			a.rt.Log().Debug().Err(err).Str("source_uuid", id.String()).Msg("deferred acquire-detail failed")
		}
	})
}

// UUID returns the source's identity.
func (a *Actor) UUID() uuid.UUID { return a.base.UUID }

// Name returns the source's display name.
func (a *Actor) Name(ctx context.Context) (string, error) {
	return actor.Request(ctx, a.mb, func() (string, error) {
		return a.base.Name, nil
	})
}

// Shutdown stops the source's mailbox and every child stream's mailbox,
// per §2 "children are shut down transitively".
func (a *Actor) Shutdown(ctx context.Context) error {
	_, err := actor.Request(ctx, a.mb, func() (struct{}, error) {
		for _, s := range a.streams {
			_ = s.Shutdown(ctx)
		}
		if a.rt.Scanner != nil {
			a.rt.Scanner.Unwatch(a.base.UUID)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}
	return a.mb.Shutdown(ctx)
}

// publish broadcasts event to the source's own event group topic,
// logging (never failing the caller) on error.
func (a *Actor) publish(ctx context.Context, kind string, detail interface{}) {
	if a.rt.Bus == nil {
		return
	}
	evt := ports.SourceEvent{Kind: kind, SourceUUID: a.base.UUID.String(), Detail: detail}
	if err := a.rt.Bus.Publish(ctx, a.EventGroup(), evt); err != nil {
		a.rt.Log().Debug().Err(err).Str("topic", a.EventGroup()).Msg("event publish failed")
	}
}

// EventGroup returns the topic subscribers attach to for this source's
// own change events (§6 "get-event-group").
func (a *Actor) EventGroup() string {
	return fmt.Sprintf("mediasource/%s", a.base.UUID)
}

// MetadataEventGroup returns a per-source metadata topic name, the
// counterpart of the supplemented `get_group_atom` behaviour. No event
// is published on it: metadata-store changes are published on
// EventGroup.
func (a *Actor) MetadataEventGroup() string {
	return fmt.Sprintf("mediasource/%s/metadata", a.base.UUID)
}

var _ model.SourceRef = (*Actor)(nil)

func recordAcquireOutcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
