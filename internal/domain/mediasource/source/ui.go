// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// StreamDetailPayload is the tuple a UI companion receives for a
// source's stream detail (§4.9 "Stream details").
type StreamDetailPayload struct {
	UUID               uuid.UUID
	DisplayPath        string
	FPSString          string
	FPS                float64
	Current            model.StreamDetail
	ImageStreams       []model.StreamDetail
	CurrentImageStream uuid.UUID
}

// GetMediaDetails pushes one UIDetail to companion (§4.9): the
// /metadata/media subtree, triggering a full probe if absent, with the
// source's name, display path, fps, duration and colour pipeline. The
// stream-detail tuple is not pushed; StreamDetails returns it to its
// caller.
func (a *Actor) GetMediaDetails(ctx context.Context, companion ports.UICompanion) error {
	if companion == nil {
		return nil
	}
	detail, err := a.uiDetail(ctx)
	if err != nil {
		return err
	}
	companion.PushDetail(a.base.UUID, detail)
	return nil
}

func (a *Actor) uiDetail(ctx context.Context) (ports.UIDetail, error) {
	sourceMeta, err := a.sourceMetadataSubtree(ctx)
	if err != nil {
		a.rt.Log().Warn().Err(err).Msg("ui detail: metadata probe failed, sending empty document")
		sourceMeta = json.RawMessage(`{}`)
	}

	ref, err := a.MediaReference(ctx)
	if err != nil {
		return ports.UIDetail{}, err
	}
	name, _ := a.Name(ctx)
	colour, _ := a.ColourPipeline(ctx)

	return ports.UIDetail{
		Name:            name,
		Path:            DisplayPath(ref),
		Resolution:      "", // decoder-owned; not available without a real probe
		PixelAspect:     1.0,
		FPS:             FormatFPS(ref.Rate.ToFPS()),
		Duration:        fmt.Sprintf("%d", ref.Duration.Frames),
		ColourPipeline:  string(colour),
		MetadataSubtree: sourceMeta,
	}, nil
}

// sourceMetadataSubtree returns the /metadata/media subtree, triggering
// a full probe and re-fetching if it is absent (§4.9 "Source details").
func (a *Actor) sourceMetadataSubtree(ctx context.Context) (json.RawMessage, error) {
	if a.rt.Metadata == nil {
		return json.RawMessage(`{}`), nil
	}
	val, err := a.rt.Metadata.Get(ctx, a.base.UUID, "/metadata/media")
	if err == nil && len(val) > 0 {
		return val, nil
	}
	if _, probeErr := a.GetMetadata(ctx, nil); probeErr != nil {
		return nil, probeErr
	}
	val, err = a.rt.Metadata.Get(ctx, a.base.UUID, "/metadata/media")
	if err != nil {
		return nil, err
	}
	return val, nil
}

// StreamDetails assembles the §4.9 "Stream details" tuple for mt.
func (a *Actor) StreamDetails(ctx context.Context, mt model.MediaType) (StreamDetailPayload, error) {
	current, err := a.GetStreamDetail(ctx, mt)
	if err != nil {
		return StreamDetailPayload{}, err
	}
	ref, err := a.MediaReference(ctx)
	if err != nil {
		return StreamDetailPayload{}, err
	}
	imageStreams, err := a.GetStreams(ctx, model.MediaTypeImage)
	if err != nil {
		return StreamDetailPayload{}, err
	}
	imageDetails := make([]model.StreamDetail, 0, len(imageStreams))
	for _, s := range imageStreams {
		d, err := s.Detail(ctx)
		if err != nil {
			continue
		}
		imageDetails = append(imageDetails, d)
	}

	type currents struct {
		stream uuid.UUID
		image  uuid.UUID
	}
	cur, err := actor.Request(ctx, a.mb, func() (currents, error) {
		return currents{stream: a.base.Current(mt), image: a.base.Current(model.MediaTypeImage)}, nil
	})
	if err != nil {
		return StreamDetailPayload{}, err
	}

	return StreamDetailPayload{
		UUID:               cur.stream,
		DisplayPath:        DisplayPath(ref),
		FPSString:          FormatFPS(ref.Rate.ToFPS()),
		FPS:                ref.Rate.ToFPS(),
		Current:            current,
		ImageStreams:       imageDetails,
		CurrentImageStream: cur.image,
	}, nil
}

// DisplayPath rewrites a sequence's printf-style hash-pad token in the
// filename portion of its URI into #-padding (§4.9: "shot.{:04d}.exr"
// -> "shot.####.exr"). Container URIs are returned unchanged.
func DisplayPath(ref model.MediaReference) string {
	if ref.Container {
		return ref.URI
	}
	idx := strings.LastIndexByte(ref.URI, '/')
	dir, filename := ref.URI[:idx+1], ref.URI[idx+1:]
	return dir + model.HashPadFilename(filename)
}

// FormatFPS renders fps to 3 decimals, trailing zeros trimmed, except
// that a single trailing zero directly after the decimal point is kept
// (§4.9 "The fps string is formatted to 3 decimals with trailing zeros
// trimmed except that a single trailing zero after a lone '.' is
// re-appended").
func FormatFPS(fps float64) string {
	s := strconv.FormatFloat(fps, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		return s + "0"
	}
	return s
}
