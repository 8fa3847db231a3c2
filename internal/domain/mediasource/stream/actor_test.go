// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

func testDetail() model.StreamDetail {
	return model.StreamDetail{
		Name:      "main",
		Duration:  model.Duration{Frames: 100, Rate: model.NewFrameRate(24, 1)},
		MediaType: model.MediaTypeImage,
		KeyFormat: "exr:v1",
	}
}

func TestActorDetailRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := New(testDetail(), uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	require.NotEqual(t, uuid.Nil, a.UUID())
	require.Equal(t, model.MediaTypeImage, a.MediaType())

	d, err := a.Detail(ctx)
	require.NoError(t, err)
	require.Equal(t, "main", d.Name)
	require.Equal(t, 100, d.Duration.Frames)
}

func TestActorSetDetail(t *testing.T) {
	ctx := context.Background()
	a := New(testDetail(), uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	updated := testDetail()
	updated.Duration.Frames = 50
	require.NoError(t, a.SetDetail(ctx, updated))

	d, err := a.Detail(ctx)
	require.NoError(t, err)
	require.Equal(t, 50, d.Duration.Frames)
}

func TestActorDuplicateMintsFreshUUID(t *testing.T) {
	ctx := context.Background()
	a := New(testDetail(), uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	dup, err := a.Duplicate(ctx)
	require.NoError(t, err)
	defer func() { _ = dup.Shutdown(ctx) }()

	require.NotEqual(t, a.UUID(), dup.UUID())
	dDetail, _ := dup.Detail(ctx)
	aDetail, _ := a.Detail(ctx)
	require.Equal(t, aDetail, dDetail)
}

func TestActorSerialise(t *testing.T) {
	ctx := context.Background()
	a := New(testDetail(), uuid.Nil)
	defer func() { _ = a.Shutdown(ctx) }()

	data, err := a.Serialise(ctx)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "main", out["name"])
	require.Equal(t, float64(100), out["frames"])
}

func TestActorShutdownRejectsFurtherRequests(t *testing.T) {
	ctx := context.Background()
	a := New(testDetail(), uuid.Nil)
	require.NoError(t, a.Shutdown(ctx))

	_, err := a.Detail(ctx)
	require.Error(t, err)
}
