// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xstudio-go/mediasource/internal/config"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
	"github.com/xstudio-go/mediasource/internal/runtime"
)

func newTestRuntime(reader ports.ReaderRegistry) runtime.Context {
	rt := runtime.New(config.Default())
	rt.Reader = reader
	return rt
}

func preconfiguredOffline(t *testing.T, rt runtime.Context) *Actor {
	t.Helper()
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	a.base.Status = model.MediaStatusMissing
	return a
}

func TestAcquireDetailOfflineFailsWithoutMutation(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(&fakeReader{})
	a := preconfiguredOffline(t, rt)
	defer func() { _ = a.Shutdown(ctx) }()

	ok, err := a.AcquireDetail(ctx, model.NewFrameRate(24, 1))
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, a.base.Empty())

	detail, _ := a.ErrorDetail(ctx)
	require.Equal(t, "source offline", detail)
}

func TestAcquireDetailContainerSuccess(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{
		tag: "localfile",
		detail: ports.MediaDetail{
			Container: true,
			Frames:    120,
			Rate:      model.NewFrameRate(24, 1),
			KeyFormat: "exr:v1",
			Streams: []model.StreamDetail{
				{Name: "main", Duration: model.Duration{Frames: 120, Rate: model.NewFrameRate(24, 1)}, MediaType: model.MediaTypeImage, KeyFormat: "exr:v1"},
			},
		},
	}
	rt := newTestRuntime(reader)
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(0, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	ok, err := a.AcquireDetail(ctx, model.NewFrameRate(24, 1))
	require.NoError(t, err)
	require.True(t, ok)

	streams, err := a.GetStreams(ctx, model.MediaTypeImage)
	require.NoError(t, err)
	require.Len(t, streams, 1)

	mediaRef, err := a.MediaReference(ctx)
	require.NoError(t, err)
	require.Equal(t, 120, mediaRef.Duration.Frames)
}

func TestAcquireDetailIsIdempotent(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{
		tag: "localfile",
		detail: ports.MediaDetail{
			Container: true,
			Frames:    10,
			Rate:      model.NewFrameRate(24, 1),
			Streams: []model.StreamDetail{
				{Name: "main", Duration: model.Duration{Frames: 10, Rate: model.NewFrameRate(24, 1)}, MediaType: model.MediaTypeImage},
			},
		},
	}
	rt := newTestRuntime(reader)
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	ok1, err := a.AcquireDetail(ctx, model.NewFrameRate(24, 1))
	require.NoError(t, err)
	require.True(t, ok1)
	require.Equal(t, 1, reader.probeCalls)

	ok2, err := a.AcquireDetail(ctx, model.NewFrameRate(24, 1))
	require.NoError(t, err)
	require.True(t, ok2)
	require.Equal(t, 1, reader.probeCalls, "second call must not re-probe")
}

func TestAcquireDetailProbeFailureRecordsErrorDetail(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{tag: "localfile", detailErr: fmt.Errorf("boom")}
	rt := newTestRuntime(reader)
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	ok, err := a.AcquireDetail(ctx, model.NewFrameRate(24, 1))
	require.NoError(t, err)
	require.False(t, ok)

	detail, _ := a.ErrorDetail(ctx)
	require.Equal(t, "boom", detail)
}

func TestReconcileDurationTable(t *testing.T) {
	fallback := model.NewFrameRate(24, 1)
	cases := []struct {
		name        string
		current     model.Duration
		probed      model.Duration
		isContainer bool
		want        model.Duration
	}{
		{
			name:    "unset_current_adopts_probed",
			current: model.Duration{},
			probed:  model.Duration{Frames: 50, Rate: model.NewFrameRate(30, 1)},
			want:    model.Duration{Frames: 50, Rate: model.NewFrameRate(30, 1)},
		},
		{
			name:    "both_zero_frames_probed_rate_usable",
			current: model.Duration{},
			probed:  model.Duration{Frames: 0, Rate: model.NewFrameRate(30, 1)},
			want:    model.Duration{Frames: 1, Rate: model.NewFrameRate(30, 1)},
		},
		{
			name:    "both_zero_frames_no_usable_rate",
			current: model.Duration{},
			probed:  model.Duration{},
			want:    model.Duration{Frames: 1, Rate: fallback},
		},
		{
			name:    "current_known_probed_rate_usable",
			current: model.Duration{Frames: 100, Rate: model.NewFrameRate(24, 1)},
			probed:  model.Duration{Rate: model.NewFrameRate(30, 1)},
			want:    model.Duration{Frames: 100, Rate: model.NewFrameRate(30, 1)},
		},
		{
			name:        "current_known_no_rate_container_keeps_current",
			current:     model.Duration{Frames: 100, Rate: model.NewFrameRate(24, 1)},
			probed:      model.Duration{},
			isContainer: true,
			want:        model.Duration{Frames: 100, Rate: model.NewFrameRate(24, 1)},
		},
		{
			name:    "current_known_no_rate_sequence_falls_back",
			current: model.Duration{Frames: 100, Rate: model.NewFrameRate(24, 1)},
			probed:  model.Duration{},
			want:    model.Duration{Frames: 100, Rate: fallback},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reconcileDuration(tc.current, tc.probed, tc.isContainer, fallback)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestAcquireDetailLockstepOverridesStreamFramesToo(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{
		tag: "localfile",
		detail: ports.MediaDetail{
			Container: true,
			Streams: []model.StreamDetail{
				{Name: "main", Duration: model.Duration{Rate: model.NewFrameRate(30, 1)}, MediaType: model.MediaTypeImage},
			},
		},
	}
	rt := newTestRuntime(reader)
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	ref.Duration = model.Duration{Frames: 100, Rate: model.NewFrameRate(24, 1)}
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	ok, err := a.AcquireDetail(ctx, model.NewFrameRate(24, 1))
	require.NoError(t, err)
	require.True(t, ok)

	mediaRef, err := a.MediaReference(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, mediaRef.Duration.Frames)
	require.Equal(t, model.NewFrameRate(30, 1), mediaRef.Duration.Rate)

	streams, err := a.GetStreams(ctx, model.MediaTypeImage)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	detail, err := streams[0].Detail(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, detail.Duration.Frames, "stream-level frame count must stay in lockstep with the source's")
	require.Equal(t, model.NewFrameRate(30, 1), detail.Duration.Rate)
}

func TestStreamRateOverride(t *testing.T) {
	fallback := model.NewFrameRate(24, 1)

	got := streamRateOverride(model.Duration{Frames: 10}, 100, true, fallback)
	require.Equal(t, fallback, got.Rate)
	require.Equal(t, 10, got.Frames, "container keeps its own probed frame count")

	got = streamRateOverride(model.Duration{Frames: 10, Rate: model.NewFrameRate(30, 1)}, 100, true, fallback)
	require.Equal(t, model.NewFrameRate(30, 1), got.Rate)

	got = streamRateOverride(model.Duration{Frames: 10}, 100, false, fallback)
	require.Equal(t, fallback, got.Rate)
	require.Equal(t, 100, got.Frames, "sequence adopts the source's current frame count")
}

func TestAcquireDetailSequenceZeroProbedRateFallsBackAndLocksFrames(t *testing.T) {
	ctx := context.Background()
	reader := &fakeReader{
		tag: "localfile",
		detail: ports.MediaDetail{
			Streams: []model.StreamDetail{
				{Name: "main", Duration: model.Duration{Frames: 7}, MediaType: model.MediaTypeImage},
			},
		},
	}
	rt := newTestRuntime(reader)
	ref := model.NewSequenceReference("file:///shot.{:04d}.exr", model.FrameRange(1, 100), model.NewFrameRate(24, 1))
	ref.Duration = model.Duration{Frames: 100, Rate: model.NewFrameRate(24, 1)}
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	ok, err := a.AcquireDetail(ctx, model.NewFrameRate(24, 1))
	require.NoError(t, err)
	require.True(t, ok)

	streams, err := a.GetStreams(ctx, model.MediaTypeImage)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	detail, err := streams[0].Detail(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, detail.Duration.Frames, "sequence stream adopts the source's known current frame count")
	require.Equal(t, model.NewFrameRate(24, 1), detail.Duration.Rate, "sequence stream adopts the fallback rate")
}
