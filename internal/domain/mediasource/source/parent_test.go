// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParentAbsentByDefault(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 5)
	defer func() { _ = a.Shutdown(ctx) }()

	parent, err := a.Parent(ctx)
	require.NoError(t, err)
	require.False(t, parent.Present)
}

func TestSetParentThenGet(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 5)
	defer func() { _ = a.Shutdown(ctx) }()

	parentUUID := uuid.New()
	require.NoError(t, a.SetParent(ctx, parentUUID))

	parent, err := a.Parent(ctx)
	require.NoError(t, err)
	require.True(t, parent.Present)
	require.Equal(t, parentUUID, parent.UUID)
}

func TestSetParentAlsoUpdatesBaseParentUUID(t *testing.T) {
	ctx := context.Background()
	a := newReadyActor(t, 5)
	defer func() { _ = a.Shutdown(ctx) }()

	parentUUID := uuid.New()
	require.NoError(t, a.SetParent(ctx, parentUUID))

	dup, err := a.Duplicate(ctx)
	require.NoError(t, err)
	defer func() { _ = dup.Shutdown(ctx) }()
	require.Equal(t, parentUUID, dup.base.ParentUUID, "Duplicate copies base.ParentUUID, which SetParent must keep in sync")
}
