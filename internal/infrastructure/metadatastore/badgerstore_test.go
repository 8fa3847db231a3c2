// SPDX-License-Identifier: Apache-2.0

package metadatastore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBadgerStoreOpenCloseReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store2, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	defer func() { _ = store2.Close() }()
}

func TestBadgerStoreGetSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	owner := uuid.New()
	_, err = store.Get(ctx, owner, "/colour_pipeline")
	require.Error(t, err)

	require.NoError(t, store.Set(ctx, owner, "/colour_pipeline", []byte(`{"lut":"rec709"}`)))
	val, err := store.Get(ctx, owner, "/colour_pipeline")
	require.NoError(t, err)
	require.JSONEq(t, `{"lut":"rec709"}`, string(val))
}

func TestBadgerStoreMergeMergesKeys(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	owner := uuid.New()
	require.NoError(t, store.Set(ctx, owner, "/edit_list", []byte(`{"a":1}`)))
	require.NoError(t, store.Merge(ctx, owner, "/edit_list", []byte(`{"b":2}`)))

	val, err := store.Get(ctx, owner, "/edit_list")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1,"b":2}`, string(val))
}

func TestBadgerStoreSetAtWritesSingleKey(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	owner := uuid.New()
	require.NoError(t, store.SetAt(ctx, owner, "/metadata", "title", []byte(`"clip one"`)))
	require.NoError(t, store.SetAt(ctx, owner, "/metadata", "rating", []byte(`5`)))

	val, err := store.Get(ctx, owner, "/metadata")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"clip one","rating":5}`, string(val))
}

func TestBadgerStoreGetAllScansOwnerPrefixOnly(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	owner := uuid.New()
	other := uuid.New()
	require.NoError(t, store.Set(ctx, owner, "/colour_pipeline", []byte(`{"lut":"rec709"}`)))
	require.NoError(t, store.Set(ctx, owner, "/metadata", []byte(`{"title":"clip"}`)))
	require.NoError(t, store.Set(ctx, other, "/colour_pipeline", []byte(`{"lut":"other"}`)))

	tree, err := store.GetAll(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.JSONEq(t, `{"lut":"rec709"}`, string(tree["/colour_pipeline"]))
	require.JSONEq(t, `{"title":"clip"}`, string(tree["/metadata"]))
}

func TestBadgerStoreClearRemovesOwnerKeysOnly(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	owner := uuid.New()
	other := uuid.New()
	require.NoError(t, store.Set(ctx, owner, "/a", []byte(`1`)))
	require.NoError(t, store.Set(ctx, other, "/a", []byte(`2`)))

	require.NoError(t, store.Clear(ctx, owner))

	tree, err := store.GetAll(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, tree)

	otherTree, err := store.GetAll(ctx, other)
	require.NoError(t, err)
	require.Len(t, otherTree, 1)
}
