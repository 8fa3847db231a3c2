// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

func TestEditListSectionSourceLevel(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	defer func() { _ = a.Shutdown(ctx) }()

	section, err := a.EditListSection(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, a.UUID(), section.UUID)
	require.Equal(t, 10, section.Duration.Frames)
}

func TestEditListSectionForStream(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	defer func() { _ = a.Shutdown(ctx) }()

	streams, err := a.GetStreams(ctx, model.MediaTypeImage)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	streamUUID := streams[0].UUID()

	section, err := a.EditListSection(ctx, &streamUUID)
	require.NoError(t, err)
	require.Equal(t, streamUUID, section.UUID)
	require.Equal(t, 10, section.Duration.Frames)
}

func TestEditListSectionUnknownStreamErrors(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 10)
	defer func() { _ = a.Shutdown(ctx) }()

	unknown := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	_, err := a.EditListSection(ctx, &unknown)
	require.Error(t, err)
}
