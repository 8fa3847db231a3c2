// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/metrics"
)

// GetFramePointer resolves a single logical frame to an AVFrameID
// (§4.3a). Colour-pipeline fetch failure never fails the request for
// image media: the descriptor falls through with an empty pipeline.
func (a *Actor) GetFramePointer(ctx context.Context, mt model.MediaType, logicalFrame int) (model.AVFrameID, error) {
	snap, err := a.frameSnapshot(ctx, mt)
	if err != nil {
		return model.AVFrameID{}, err
	}

	f, err := a.resolveOne(ctx, snap, logicalFrame)
	metrics.ObserveFramePointer(string(mt), f.Blank)
	return f, err
}

// GetFramePointers resolves every logical frame of the source, in order
// (§4.3b).
func (a *Actor) GetFramePointers(ctx context.Context, mt model.MediaType) ([]model.AVFrameID, error) {
	snap, err := a.frameSnapshot(ctx, mt)
	if err != nil {
		return nil, err
	}
	uris := snap.ref.URIs()
	out := make([]model.AVFrameID, 0, len(uris))
	for k := range uris {
		f, err := a.resolveOne(ctx, snap, k)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
		metrics.ObserveFramePointer(string(mt), f.Blank)
	}
	return out, nil
}

// GetFramePointerRanges resolves every logical frame covered by ranges,
// emitting a blank sentinel at any position that fails to resolve
// instead of failing the whole request (§4.3c).
func (a *Actor) GetFramePointerRanges(ctx context.Context, mt model.MediaType, ranges []model.LogicalFrameRange) ([]model.AVFrameID, error) {
	snap, err := a.frameSnapshot(ctx, mt)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, r := range ranges {
		if r.Last >= r.First {
			total += r.Last - r.First + 1
		}
	}
	out := make([]model.AVFrameID, 0, total)
	for _, r := range ranges {
		for k := r.First; k <= r.Last; k++ {
			f, err := a.resolveOne(ctx, snap, k)
			if err != nil {
				f = model.BlankFrame(mt)
			}
			out = append(out, f)
			metrics.ObserveFramePointer(string(mt), f.Blank)
		}
	}
	return out, nil
}

// frameResolutionSnapshot is the state fetched once per batch request:
// the current stream's detail, the colour pipeline JSON (image only),
// and the media reference, all captured under one mailbox round trip so
// concurrent mutation between per-frame resolutions cannot produce an
// inconsistent batch.
type frameResolutionSnapshot struct {
	mt             model.MediaType
	detail         model.StreamDetail
	ref            model.MediaReference
	colourPipeline []byte
	currentUUID    uuid.UUID
	parentUUID     uuid.UUID
	readerTag      string
}

// frameSnapshot assembles the per-request snapshot using "then" style
// continuation rather than "await": the mailbox command only captures
// the source's own mailbox-protected fields and hands the rest off to a
// tracked goroutine (mb.Go) that performs the stream's own Detail round
// trip and the metadata-store read, delivering the result through a
// Future. This keeps the source's mailbox loop free to dispatch other
// messages while the child round trip is in flight — frame-pointer
// resolution is reserved "then" semantics, never "await" (§5).
func (a *Actor) frameSnapshot(ctx context.Context, mt model.MediaType) (frameResolutionSnapshot, error) {
	future, deliver := actor.Deliver[frameResolutionSnapshot]()
	err := a.mb.Tell(ctx, func() {
		id := a.base.Current(mt)
		s, ok := a.streams[id]
		if !ok {
			deliver(frameResolutionSnapshot{}, model.NoStreams())
			return
		}

		ref := a.base.MediaReference
		parentUUID := a.base.ParentUUID
		readerTag := a.base.ReaderTag
		rt := a.rt
		sourceUUID := a.base.UUID

		a.mb.Go(func() {
			detail, detailErr := s.Detail(ctx)
			if detailErr != nil {
				deliver(frameResolutionSnapshot{}, model.WrapGeneric(detailErr))
				return
			}

			snap := frameResolutionSnapshot{
				mt:          mt,
				detail:      detail,
				ref:         ref,
				currentUUID: id,
				parentUUID:  parentUUID,
				readerTag:   readerTag,
			}
			if mt == model.MediaTypeImage {
				if rt.Metadata != nil {
					if val, err := rt.Metadata.Get(ctx, sourceUUID, colourPipelinePath); err == nil {
						snap.colourPipeline = val
					}
				}
				if len(snap.colourPipeline) == 0 {
					snap.currentUUID = uuid.Nil
				}
			}
			deliver(snap, nil)
		})
	})
	if err != nil {
		return frameResolutionSnapshot{}, err
	}
	return future.Wait(ctx)
}

// resolveOne assembles the AVFrameID for one logical frame from an
// already-fetched snapshot; it performs no further mailbox round trips,
// so it is safe to call in a tight loop while resolving a batch.
func (a *Actor) resolveOne(ctx context.Context, snap frameResolutionSnapshot, logicalFrame int) (model.AVFrameID, error) {
	uri, fileFrame, err := snap.ref.URIAt(logicalFrame)
	if err != nil {
		return model.AVFrameID{}, err
	}
	firstFrameStamp, err := snap.ref.FrameZero()
	if err != nil {
		return model.AVFrameID{}, err
	}
	return model.AVFrameID{
		URI:               uri,
		FileFrame:         fileFrame,
		FirstFrameStamp:   firstFrameStamp,
		Rate:              snap.ref.Rate,
		StreamName:        snap.detail.Name,
		KeyFormat:         snap.detail.KeyFormat,
		ReaderTag:         snap.readerTag,
		SourceAddress:     a,
		ColourPipeline:    snap.colourPipeline,
		CurrentStreamUUID: snap.currentUUID,
		ParentUUID:        snap.parentUUID,
		MediaType:         snap.mt,
	}, nil
}
