// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
	"github.com/xstudio-go/mediasource/internal/metrics"
)

// Duplicate produces a new Media Source with a fresh uuid, the same
// reader tag and media reference, freshly spawned stream copies, a
// copied metadata tree, and the same current-stream selection per media
// type (§4.7). Stream duplication is serialised through a blocking
// await per stream, in registration order, preserving the order streams
// are re-attached to the duplicate — unlike the fan-out "then" used by
// frame-pointer and serialise flows, duplication must observe "await"
// ordering (§5 "Await vs then").
func (a *Actor) Duplicate(ctx context.Context) (*Actor, error) {
	snap, err := actor.Request(ctx, a.mb, func() (duplicateSnapshot, error) {
		orderCopy := make(map[model.MediaType][]uuid.UUID, len(a.order))
		for mt, ids := range a.order {
			orderCopy[mt] = append([]uuid.UUID(nil), ids...)
		}
		return duplicateSnapshot{
			name:       a.base.Name,
			readerTag:  a.base.ReaderTag,
			ref:        a.base.MediaReference,
			parentUUID: a.base.ParentUUID,
			order:      orderCopy,
			currents:   map[model.MediaType]uuid.UUID{model.MediaTypeImage: a.base.Current(model.MediaTypeImage), model.MediaTypeAudio: a.base.Current(model.MediaTypeAudio)},
			streamIDs:  allStreamIDs(a.order),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	dup := NewPreconfigured(a.rt, snap.name, snap.readerTag, snap.ref, uuid.Nil)
	dup.base.ParentUUID = snap.parentUUID

	// Duplicate each original stream, awaiting each in turn (blocking),
	// and remember how the original uuid maps to the duplicate's new
	// one so current-stream selection can be translated positionally.
	originalToDuplicate := make(map[uuid.UUID]uuid.UUID, len(snap.streamIDs))
	for _, ids := range snap.order {
		for _, id := range ids {
			s, ok := a.streams[id]
			if !ok {
				continue
			}
			dupStream, err := s.Duplicate(ctx)
			if err != nil {
				metrics.ObserveDuplicate("failure")
				return nil, model.WrapGeneric(err)
			}
			if _, err := dup.AddStream(ctx, dupStream); err != nil {
				metrics.ObserveDuplicate("failure")
				return nil, err
			}
			originalToDuplicate[id] = dupStream.UUID()
		}
	}

	for mt, currentID := range snap.currents {
		if currentID == uuid.Nil {
			continue
		}
		if dupID, ok := originalToDuplicate[currentID]; ok {
			_, _ = dup.SetCurrentStream(ctx, mt, dupID)
		}
	}

	if a.rt.Metadata != nil {
		if err := copyMetadataTree(ctx, a.rt.Metadata, a.base.UUID, dup.base.UUID); err != nil {
			metrics.ObserveDuplicate("failure")
			return nil, model.WrapMetadata(err)
		}
	}

	metrics.ObserveDuplicate("success")
	return dup, nil
}

type duplicateSnapshot struct {
	name       string
	readerTag  string
	ref        model.MediaReference
	parentUUID uuid.UUID
	order      map[model.MediaType][]uuid.UUID
	currents   map[model.MediaType]uuid.UUID
	streamIDs  []uuid.UUID
}

func allStreamIDs(order map[model.MediaType][]uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, ids := range order {
		out = append(out, ids...)
	}
	return out
}

func copyMetadataTree(ctx context.Context, store ports.MetadataStore, from, to uuid.UUID) error {
	tree, err := store.GetAll(ctx, from)
	if err != nil {
		return err
	}
	if len(tree) == 0 {
		return nil // nothing stored yet, not an error
	}
	for path, val := range tree {
		if err := store.Set(ctx, to, path, val); err != nil {
			return err
		}
	}
	return nil
}
