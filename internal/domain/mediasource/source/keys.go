// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/metrics"
)

// CacheKeys returns the MediaKey for every logical frame of mt (§4.4
// "Keys(media_type)").
func (a *Actor) CacheKeys(ctx context.Context, mt model.MediaType) ([]model.MediaKey, error) {
	snap, err := a.frameSnapshot(ctx, mt)
	if err != nil {
		return nil, err
	}
	uris := snap.ref.URIs()
	out := make([]model.MediaKey, 0, len(uris))
	for k := range uris {
		key, err := a.resolveKey(snap, k)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, nil
}

// CacheKey returns the MediaKey for a single logical frame (§4.4
// "Keys(media_type, logical_frame)").
func (a *Actor) CacheKey(ctx context.Context, mt model.MediaType, logicalFrame int) (model.MediaKey, error) {
	snap, err := a.frameSnapshot(ctx, mt)
	if err != nil {
		return model.MediaKey{}, err
	}
	return a.resolveKey(snap, logicalFrame)
}

// CacheKeysFor is the positional cache-key batch lookup: output length
// always equals len(logicalFrames); a frame that fails to resolve gets
// the zero MediaKey at its position rather than failing the whole call
// (§4.4 "Keys(media_type, logical_frames[])").
func (a *Actor) CacheKeysFor(ctx context.Context, mt model.MediaType, logicalFrames []int) ([]model.MediaKey, error) {
	snap, err := a.frameSnapshot(ctx, mt)
	if err != nil {
		return nil, err
	}
	out := make([]model.MediaKey, len(logicalFrames))
	for i, lf := range logicalFrames {
		if key, err := a.resolveKey(snap, lf); err == nil {
			out[i] = key
		}
	}
	return out, nil
}

func (a *Actor) resolveKey(snap frameResolutionSnapshot, logicalFrame int) (model.MediaKey, error) {
	uri, fileFrame, err := snap.ref.URIAt(logicalFrame)
	if err != nil {
		return model.MediaKey{}, err
	}
	return model.NewMediaKey(snap.detail.KeyFormat, uri, fileFrame, snap.detail.Name), nil
}

// InvalidateCache computes every image and audio MediaKey for this
// source and fans out an erase request to both caches (select-all
// policy: await every cache), returning the union of erased keys.
// Returns an empty slice if no cache is registered for either type
// (§4.4 "Invalidate cache").
func (a *Actor) InvalidateCache(ctx context.Context) ([]model.MediaKey, error) {
	var erasedMu sync.Mutex
	var erased []model.MediaKey

	g, gctx := errgroup.WithContext(ctx)
	for _, mt := range model.MediaTypes {
		mt := mt
		g.Go(func() error {
			cache := a.rt.CacheFor(mt)
			if cache == nil {
				return nil
			}
			keys, err := a.CacheKeys(gctx, mt)
			if err != nil {
				if isNoStreams(err) {
					return nil
				}
				return model.WrapCache(err)
			}
			n, err := cache.Erase(gctx, keys)
			if err != nil {
				return model.WrapCache(err)
			}
			metrics.ObserveCacheErase(string(mt), n)
			erasedMu.Lock()
			erased = append(erased, keys...)
			erasedMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if erased == nil {
		erased = []model.MediaKey{}
	}
	return erased, nil
}

func isNoStreams(err error) bool {
	var e *model.Error
	if me, ok := err.(*model.Error); ok {
		e = me
	}
	return e != nil && e.Kind == model.KindNoStreams
}
