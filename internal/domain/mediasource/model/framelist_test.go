// SPDX-License-Identifier: Apache-2.0

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameRange(t *testing.T) {
	fl := FrameRange(5, 8)
	require.Equal(t, 4, fl.Len())
	f, ok := fl.At(0)
	require.True(t, ok)
	require.Equal(t, 5, f)
	f, ok = fl.At(3)
	require.True(t, ok)
	require.Equal(t, 8, f)
}

func TestFrameRangeInvalidIsEmpty(t *testing.T) {
	fl := FrameRange(8, 5)
	require.True(t, fl.Empty())
}

func TestFrameListAtOutOfRange(t *testing.T) {
	fl := NewFrameList(1, 2, 3)
	_, ok := fl.At(3)
	require.False(t, ok)
	_, ok = fl.At(-1)
	require.False(t, ok)
}

func TestMediaKeyIsZero(t *testing.T) {
	require.True(t, MediaKey{}.IsZero())
	k := NewMediaKey("exr", "file:///a.exr", 1, "main")
	require.False(t, k.IsZero())
}
