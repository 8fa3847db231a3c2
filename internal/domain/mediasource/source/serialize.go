// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/stream"
	"github.com/xstudio-go/mediasource/internal/runtime"
)

// serialisedSource is the on-the-wire shape of a full Media Source
// (§4.8): base state, the full metadata tree, and every stream's own
// serialisation, keyed by uuid.
type serialisedSource struct {
	Base   json.RawMessage            `json:"base"`
	Store  json.RawMessage            `json:"store,omitempty"`
	Actors map[string]json.RawMessage `json:"actors"`
}

// Serialise projects the source to its persisted JSON blob (§4.8).
// Streams are serialised concurrently (fan-out, await all).
func (a *Actor) Serialise(ctx context.Context) ([]byte, error) {
	snap, err := actor.Request(ctx, a.mb, func() (serialiseSnapshot, error) {
		streamsCopy := make(map[uuid.UUID]*stream.Actor, len(a.streams))
		for id, s := range a.streams {
			streamsCopy[id] = s
		}
		baseCopy := a.base
		return serialiseSnapshot{base: baseCopy, streams: streamsCopy, sourceUUID: a.base.UUID}, nil
	})
	if err != nil {
		return nil, err
	}

	baseJSON, err := snap.base.Serialise()
	if err != nil {
		return nil, model.WrapGeneric(err)
	}

	actorsJSON := make(map[string]json.RawMessage, len(snap.streams))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for id, s := range snap.streams {
		id, s := id, s
		g.Go(func() error {
			blob, err := s.Serialise(gctx)
			if err != nil {
				return model.WrapGeneric(err)
			}
			mu.Lock()
			actorsJSON[id.String()] = blob
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var storeJSON json.RawMessage
	if a.rt.Metadata != nil {
		if tree, err := a.rt.Metadata.GetAll(ctx, snap.sourceUUID); err == nil && len(tree) > 0 {
			raw := make(map[string]json.RawMessage, len(tree))
			for path, v := range tree {
				raw[path] = json.RawMessage(v)
			}
			if blob, err := json.Marshal(raw); err == nil {
				storeJSON = blob
			}
		}
	}

	return json.Marshal(serialisedSource{
		Base:   baseJSON,
		Store:  storeJSON,
		Actors: actorsJSON,
	})
}

type serialiseSnapshot struct {
	base       model.Base
	streams    map[uuid.UUID]*stream.Actor
	sourceUUID uuid.UUID
}

// FromJSON rehydrates a Media Source from the blob produced by
// Serialise, reconstructing an equivalent source whose stream uuids are
// the ones that were serialised (the original's rehydration preserves
// stream uuids; this port does the same, since nothing downstream
// depends on minting new ones).
func FromJSON(rt runtime.Context, data []byte) (*Actor, error) {
	var doc serialisedSource
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, model.WrapGeneric(err)
	}
	base, err := model.DeserialiseBase(doc.Base)
	if err != nil {
		return nil, model.WrapGeneric(err)
	}

	blobsByID := make(map[uuid.UUID]json.RawMessage, len(doc.Actors))
	for key, blob := range doc.Actors {
		id, err := uuid.Parse(key)
		if err != nil {
			continue
		}
		blobsByID[id] = blob
	}

	a := newBareActor(rt, base)
	// Iterate in base.streams' persisted order, not doc.Actors' map
	// order (randomised by Go), so a.order stays faithful to what was
	// serialised (§8 property 6, "duplicate equivalence by position").
	for _, mt := range model.MediaTypes {
		for _, id := range base.Streams(mt) {
			blob, ok := blobsByID[id]
			if !ok {
				continue
			}
			sDetail, err := deserialiseStreamDetail(blob)
			if err != nil {
				return nil, model.WrapGeneric(fmt.Errorf("stream %s: %w", id, err))
			}
			s := stream.New(sDetail, id)
			a.addStream(s)
		}
	}

	if rt.Metadata != nil && len(doc.Store) > 0 {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(doc.Store, &raw); err == nil {
			for path, v := range raw {
				_ = rt.Metadata.Set(context.Background(), a.base.UUID, path, v)
			}
		}
	}
	return a, nil
}

func deserialiseStreamDetail(blob json.RawMessage) (model.StreamDetail, error) {
	var raw struct {
		Name      string          `json:"name"`
		MediaType model.MediaType `json:"media_type"`
		KeyFormat string          `json:"key_format"`
		Frames    int             `json:"frames"`
		RateNum   int64           `json:"rate_num"`
		RateDen   int64           `json:"rate_den"`
	}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return model.StreamDetail{}, err
	}
	return model.StreamDetail{
		Name:      raw.Name,
		MediaType: raw.MediaType,
		KeyFormat: raw.KeyFormat,
		Duration:  model.Duration{Frames: raw.Frames, Rate: model.NewFrameRate(raw.RateNum, raw.RateDen)},
	}, nil
}
