// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

type fakeThumbnails struct {
	generateCalls   int
	lastURI         string
	lastFrame       int
	invalidateCalls int
	lastInvalidated uuid.UUID
}

func (f *fakeThumbnails) Generate(ctx context.Context, sourceUUID uuid.UUID, uri string, logicalFrame int) {
	f.generateCalls++
	f.lastURI = uri
	f.lastFrame = logicalFrame
}

func (f *fakeThumbnails) Invalidate(ctx context.Context, jobUUID uuid.UUID) {
	f.invalidateCalls++
	f.lastInvalidated = jobUUID
}

var _ ports.ThumbnailManager = (*fakeThumbnails)(nil)

func TestGetThumbnailRejectsOutOfRangePosition(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	defer func() { _ = a.Shutdown(ctx) }()

	require.Error(t, a.GetThumbnail(ctx, -0.1, uuid.New()))
	require.Error(t, a.GetThumbnail(ctx, 1.1, uuid.New()))
}

func TestGetThumbnailForwardsToManager(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	thumbs := &fakeThumbnails{}
	a.rt.Thumbnails = thumbs
	defer func() { _ = a.Shutdown(ctx) }()

	require.NoError(t, a.GetThumbnail(ctx, 0.5, uuid.New()))
	require.Equal(t, 1, thumbs.generateCalls)
	require.NotEmpty(t, thumbs.lastURI)
}

func TestGetThumbnailWithoutManagerIsNoop(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	defer func() { _ = a.Shutdown(ctx) }()

	require.NoError(t, a.GetThumbnail(ctx, 0.5, uuid.New()))
}

func TestCancelThumbnailForwardsJobUUID(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	thumbs := &fakeThumbnails{}
	a.rt.Thumbnails = thumbs
	defer func() { _ = a.Shutdown(ctx) }()

	job := uuid.New()
	a.CancelThumbnail(ctx, job)
	require.Equal(t, 1, thumbs.invalidateCalls)
	require.Equal(t, job, thumbs.lastInvalidated)
}

func TestCancelThumbnailWithoutManagerIsNoop(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	defer func() { _ = a.Shutdown(ctx) }()

	a.CancelThumbnail(ctx, uuid.New())
}
