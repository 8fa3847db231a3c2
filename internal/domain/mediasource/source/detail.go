// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/stream"
	"github.com/xstudio-go/mediasource/internal/metrics"
)

// AcquireDetail probes the source's backing asset and (re)builds its
// stream set (§4.1). Idempotent: once at least one stream exists, it
// returns success without re-probing. Returns failure, never an error,
// when the source is offline or the probe fails — per §4.1's contract
// the failure is recorded into base.ErrorDetail, not propagated.
func (a *Actor) AcquireDetail(ctx context.Context, fallback model.FrameRate) (bool, error) {
	start := time.Now()
	ok, err := actor.Request(ctx, a.mb, func() (bool, error) {
		return a.acquireDetailLocked(ctx, fallback)
	})
	metrics.ObserveAcquireDetail(recordAcquireOutcome(ok), start)
	return ok, err
}

func (a *Actor) acquireDetailLocked(ctx context.Context, fallback model.FrameRate) (bool, error) {
	// Idempotent fast path: already has streams, nothing to do.
	if !a.base.Empty() {
		return true, nil
	}

	// Offline: fail without any side effects.
	if !a.base.Online() {
		a.base.ErrorDetail = "source offline"
		a.publish(ctx, ports.EventStatusChanged, a.base.Status)
		return false, nil
	}

	// Step 1: clear existing streams and base stream indices.
	a.clearStreamsLocked(ctx)

	// Step 2: resolve logical frame 0. An unprobed reference has no
	// duration yet, so frame 0 is resolved as if it held one frame.
	probeRef := a.base.MediaReference
	if probeRef.Empty() {
		probeRef.Duration.Frames = 1
	}
	uri, _, err := probeRef.URIAt(0)
	if err != nil {
		a.base.ErrorDetail = err.Error()
		a.publish(ctx, ports.EventStatusChanged, a.base.Status)
		return false, nil
	}

	if a.rt.Reader == nil {
		a.base.ErrorDetail = "no reader registry configured"
		return false, nil
	}

	readerTag, err := a.rt.Reader.ReaderTag(ctx, uri)
	if err != nil {
		a.base.ErrorDetail = err.Error()
		return false, nil
	}

	if a.rt.ProbeLimiter != nil {
		if err := a.rt.ProbeLimiter.Wait(ctx); err != nil {
			a.base.ErrorDetail = err.Error()
			return false, nil
		}
	}

	detail, err := a.rt.Reader.Probe(ctx, readerTag, uri, nil)
	if err != nil {
		a.base.ErrorDetail = err.Error()
		return false, nil
	}

	// Step 4: overwrite a zero-valued timecode with the probed one.
	if a.base.MediaReference.Timecode.IsZero() && !detail.Timecode.IsZero() {
		a.base.MediaReference.Timecode = detail.Timecode
	}
	// Step 5: reader tag.
	a.base.ReaderTag = readerTag

	// Step 6: reconcile duration/rate per the probed stream table, and
	// step 7/8: spawn one stream actor per StreamInfo.
	current := a.base.MediaReference.Duration
	isContainer := a.base.MediaReference.Container
	var newStreams []*stream.Actor
	for _, sd := range detail.Streams {
		lockstep := sd.MediaType == model.MediaTypeImage && current.Frames != 0 && sd.Duration.Rate.Count() != 0
		if sd.MediaType == model.MediaTypeImage {
			current = reconcileDuration(current, sd.Duration, isContainer, fallback)
		}
		streamDuration := sd.Duration
		switch {
		case lockstep:
			// Known frame count, freshly probed rate: the source and this
			// stream both adopt {current.Frames, probed rate} in lockstep.
			streamDuration = model.Duration{Frames: current.Frames, Rate: streamDuration.Rate}
		case sd.MediaType == model.MediaTypeImage:
			streamDuration = streamRateOverride(streamDuration, current.Frames, isContainer, fallback)
		}
		sd.Duration = streamDuration
		s := stream.New(sd, uuid.Nil)
		newStreams = append(newStreams, s)
	}

	// A sequence whose duration was unknown derives its frame list from
	// the probe; a known frame list keeps its file-frame numbers.
	if !isContainer && a.base.MediaReference.Duration.Frames == 0 {
		a.base.MediaReference.FrameListField = model.FrameRange(0, current.Frames-1)
	}
	a.base.MediaReference.Duration = current
	a.base.MediaReference.Rate = current.Rate

	for _, s := range newStreams {
		a.addStream(s)
		a.publish(ctx, ports.EventStreamAdded, s.UUID())
	}

	// Step 10: sequence timecode anchoring.
	if !isContainer {
		if a.base.MediaReference.Timecode.IsZero() {
			a.base.MediaReference.SetTimecodeFromFrames()
		} else if first, ok := a.base.MediaReference.FrameListField.First(); ok && first != 0 {
			a.base.MediaReference.SetTimecodeFromFrames()
		}
	}

	a.base.ErrorDetail = ""
	a.base.Status = model.MediaStatusOnline
	a.publish(ctx, ports.EventDetailChanged, nil)

	// Step 9: metadata probe and media hook.
	a.scheduleMetadataAndHookProbe()
	return true, nil
}

func (a *Actor) clearStreamsLocked(ctx context.Context) {
	for _, s := range a.streams {
		_ = s.Shutdown(ctx)
	}
	a.streams = make(map[uuid.UUID]*stream.Actor)
	a.order = make(map[model.MediaType][]uuid.UUID)
	a.base.Clear()
}

// reconcileDuration implements the §4.1 step 6 policy table, updating
// the source's overall (frames, rate) from one probed image stream's
// own duration.
func reconcileDuration(current, probed model.Duration, isContainer bool, fallback model.FrameRate) model.Duration {
	switch {
	case current.Frames == 0 && probed.Frames != 0:
		return probed
	case current.Frames == 0 && probed.Frames == 0 && probed.Rate.Count() != 0:
		return model.Duration{Frames: 1, Rate: probed.Rate}
	case current.Frames == 0 && probed.Frames == 0:
		return model.Duration{Frames: 1, Rate: fallback}
	case current.Frames != 0 && probed.Rate.Count() != 0:
		return model.Duration{Frames: current.Frames, Rate: probed.Rate}
	case current.Frames != 0 && probed.Rate.Count() == 0 && isContainer:
		return current
	default: // current.Frames != 0, probed.Rate.Count() == 0, sequence
		return model.Duration{Frames: current.Frames, Rate: fallback}
	}
}

// streamRateOverride implements the reconciliation branch that mutates
// the *stream's* own duration rather than the source's: a known current
// duration whose probe reported no usable rate adopts the fallback rate
// for its own StreamDetail. A container keeps its own probed frame
// count and only has its rate overwritten; a sequence also adopts the
// source's current frame count, staying in lockstep with it.
func streamRateOverride(d model.Duration, currentFrames int, isContainer bool, fallback model.FrameRate) model.Duration {
	if d.Rate.Count() != 0 {
		return d
	}
	if isContainer {
		return model.Duration{Frames: d.Frames, Rate: fallback}
	}
	return model.Duration{Frames: currentFrames, Rate: fallback}
}

// scheduleMetadataAndHookProbe fires the post-acquire-detail metadata
// probe and media hook, unconditionally, regardless of the metadata
// probe's own outcome (§4.1 step 9, §9 Open Question 4).
func (a *Actor) scheduleMetadataAndHookProbe() {
	a.mb.Go(func() {
		ctx := context.Background()
		_, _ = a.GetMetadata(ctx, nil)
		_, _ = a.GetMediaHook(ctx)
	})
}
