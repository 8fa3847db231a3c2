// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

func TestMediaReferenceGetReturnsCurrentReference(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 5)
	defer func() { _ = a.Shutdown(ctx) }()

	ref, err := a.MediaReference(ctx)
	require.NoError(t, err)
	require.Equal(t, "file:///shot.%04d.exr", ref.URI)
}

func TestSetMediaReferenceReplacesAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 5)
	defer func() { _ = a.Shutdown(ctx) }()

	newRef := model.NewContainerReference("file:///other.mov", model.NewFrameRate(30, 1))
	ok, err := a.SetMediaReference(ctx, newRef)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := a.MediaReference(ctx)
	require.NoError(t, err)
	require.Equal(t, "file:///other.mov", got.URI)
	require.True(t, got.Container)
}

func TestStatusGetSet(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 5)
	defer func() { _ = a.Shutdown(ctx) }()

	status, err := a.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, model.MediaStatusUnknown, status)

	ok, err := a.SetStatus(ctx, model.MediaStatusMissing)
	require.NoError(t, err)
	require.True(t, ok)

	status, err = a.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, model.MediaStatusMissing, status)
}

func TestErrorDetailDefaultsEmpty(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 5)
	defer func() { _ = a.Shutdown(ctx) }()

	detail, err := a.ErrorDetail(ctx)
	require.NoError(t, err)
	require.Empty(t, detail)
}
