// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// GetMetadata runs the metadata probe (§4.5). When frame is nil, this is
// the "full probe": containers probe the whole URI once; sequences probe
// only the first file frame, to avoid stalling the system probing every
// frame of a large sequence. When frame is non-nil, this is the
// "single-frame probe", valid only on sequences.
func (a *Actor) GetMetadata(ctx context.Context, frame *int) (bool, error) {
	snap, err := actor.Request(ctx, a.mb, func() (metadataProbeSnapshot, error) {
		return metadataProbeSnapshot{
			uuid:      a.base.UUID,
			ref:       a.base.MediaReference,
			readerTag: a.base.ReaderTag,
		}, nil
	})
	if err != nil {
		return false, err
	}

	isContainer := snap.ref.Container
	if frame != nil && isContainer {
		return false, model.NoFrames("single-frame probe invoked on a container")
	}

	var uri string
	var fileFrame int
	var path string
	if frame != nil {
		fileFrame = *frame
		var err error
		uri, err = sequenceURIForFrame(snap.ref, fileFrame)
		if err != nil {
			return false, err
		}
		path = fmt.Sprintf("/metadata/media/@%d", fileFrame)
	} else if isContainer {
		uri = snap.ref.URI
		path = "/metadata/media/@"
	} else {
		var err error
		uri, fileFrame, err = snap.ref.URIAt(0)
		if err != nil {
			return false, err
		}
		path = fmt.Sprintf("/metadata/media/@%d", fileFrame)
	}

	if a.rt.Reader == nil {
		return false, model.WrapReader(fmt.Errorf("no reader registry configured"))
	}

	var probeArg *int
	if frame != nil {
		probeArg = frame
	} else if !isContainer {
		probeArg = &fileFrame
	}
	detail, err := a.rt.Reader.Probe(ctx, snap.readerTag, uri, probeArg)
	if err != nil {
		return false, model.WrapReader(err)
	}

	payload, err := marshalProbeMetadata(detail)
	if err != nil {
		return false, model.WrapGeneric(err)
	}

	if a.rt.Metadata != nil {
		if frame != nil {
			if err := a.rt.Metadata.SetAt(ctx, snap.uuid, "/metadata/media", fmt.Sprintf("@%d", fileFrame), payload); err != nil {
				return false, model.WrapMetadata(err)
			}
		} else if err := a.rt.Metadata.Merge(ctx, snap.uuid, path, payload); err != nil {
			return false, model.WrapMetadata(err)
		}
	}

	a.publish(ctx, ports.EventDetailChanged, map[string]interface{}{"kind": "get_metadata", "path": path})
	return true, nil
}

type metadataProbeSnapshot struct {
	uuid      uuid.UUID
	ref       model.MediaReference
	readerTag string
}

func sequenceURIForFrame(ref model.MediaReference, fileFrame int) (string, error) {
	for _, uf := range ref.URIs() {
		if uf.FileFrame == fileFrame {
			return uf.URI, nil
		}
	}
	return "", model.InvalidFrameIndex(fmt.Sprintf("no file frame %d on this source", fileFrame))
}

// GetMediaHook dispatches to the media-hook plugin (§4.6). An absent
// hook registry is reported as success=false, never an error.
func (a *Actor) GetMediaHook(ctx context.Context) (bool, error) {
	if a.rt.Hook == nil {
		return false, nil
	}
	uuidVal, err := actor.Request(ctx, a.mb, func() (uuid.UUID, error) {
		return a.base.UUID, nil
	})
	if err != nil {
		return false, err
	}
	uris := a.base.MediaReference.URIs()
	flat := make([]string, 0, len(uris))
	for _, uf := range uris {
		flat = append(flat, uf.URI)
	}
	a.rt.Hook.PostMediaSourcesChanged(ctx, uuidVal, flat)
	return true, nil
}

// Json is the generic metadata-store delegation surface (§6 "json-get/
// set/merge"): every verb broadcasts a change event, including get —
// preserved per §9 Open Question 2 rather than "fixed" as a bug.
func (a *Actor) JsonGet(ctx context.Context, path string) ([]byte, error) {
	if a.rt.Metadata == nil {
		return nil, model.WrapMetadata(fmt.Errorf("no metadata store configured"))
	}
	val, err := a.rt.Metadata.Get(ctx, a.base.UUID, path)
	a.publish(ctx, ports.EventDetailChanged, map[string]interface{}{"kind": "json_get", "path": path})
	if err != nil {
		return nil, model.WrapMetadata(err)
	}
	return val, nil
}

func (a *Actor) JsonSet(ctx context.Context, path string, value []byte) error {
	if a.rt.Metadata == nil {
		return model.WrapMetadata(fmt.Errorf("no metadata store configured"))
	}
	if err := a.rt.Metadata.Set(ctx, a.base.UUID, path, value); err != nil {
		return model.WrapMetadata(err)
	}
	a.publish(ctx, ports.EventDetailChanged, map[string]interface{}{"kind": "json_set", "path": path})
	return nil
}

func (a *Actor) JsonMerge(ctx context.Context, path string, value []byte) error {
	if a.rt.Metadata == nil {
		return model.WrapMetadata(fmt.Errorf("no metadata store configured"))
	}
	if err := a.rt.Metadata.Merge(ctx, a.base.UUID, path, value); err != nil {
		return model.WrapMetadata(err)
	}
	a.publish(ctx, ports.EventDetailChanged, map[string]interface{}{"kind": "json_merge", "path": path})
	return nil
}
