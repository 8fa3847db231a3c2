// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/infrastructure/metadatastore"
)

func TestColourPipelineAbsentIsNilNotError(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(&fakeReader{})
	rt.Metadata = metadatastore.NewMemory()
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	val, err := a.ColourPipeline(ctx)
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestSetColourPipelineThenGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(&fakeReader{})
	rt.Metadata = metadatastore.NewMemory()
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	require.NoError(t, a.SetColourPipeline(ctx, []byte(`{"lut":"rec709"}`)))

	val, err := a.ColourPipeline(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"lut":"rec709"}`, string(val))
}

// TestColourPipelineObservesGenericJsonSet is the review-mandated
// regression test: a generic json-set targeting /colour_pipeline must be
// visible through ColourPipeline, since both go through the same
// Metadata Store path rather than two independently-mutable copies.
func TestColourPipelineObservesGenericJsonSet(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(&fakeReader{})
	rt.Metadata = metadatastore.NewMemory()
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	require.NoError(t, a.JsonSet(ctx, "/colour_pipeline", []byte(`{"lut":"aces"}`)))

	val, err := a.ColourPipeline(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"lut":"aces"}`, string(val))
}

func TestColourPipelineObservesGenericJsonMerge(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(&fakeReader{})
	rt.Metadata = metadatastore.NewMemory()
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	require.NoError(t, a.SetColourPipeline(ctx, []byte(`{"lut":"rec709"}`)))
	require.NoError(t, a.JsonMerge(ctx, "/colour_pipeline", []byte(`{"gamma":2.2}`)))

	val, err := a.ColourPipeline(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"lut":"rec709","gamma":2.2}`, string(val))
}

func TestSetColourPipelineWithoutMetadataStoreErrors(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(&fakeReader{})
	ref := model.NewContainerReference("file:///movie.mov", model.NewFrameRate(24, 1))
	a := NewPreconfigured(rt, "clip", "", ref, uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	require.Error(t, a.SetColourPipeline(ctx, []byte(`{}`)))
}
