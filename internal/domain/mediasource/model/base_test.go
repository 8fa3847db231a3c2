// SPDX-License-Identifier: Apache-2.0

package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBaseAddStreamSetsCurrentOnFirstStream(t *testing.T) {
	b := NewBase("clip", NewContainerReference("file:///a.mov", NewFrameRate(24, 1)), uuid.Nil)
	require.True(t, b.Empty())

	s1, s2 := uuid.New(), uuid.New()
	b.AddStream(MediaTypeImage, s1)
	require.False(t, b.Empty())
	require.Equal(t, s1, b.Current(MediaTypeImage))

	b.AddStream(MediaTypeImage, s2)
	require.Equal(t, s1, b.Current(MediaTypeImage), "current stays put once set")
	require.ElementsMatch(t, []uuid.UUID{s1, s2}, b.Streams(MediaTypeImage))
}

func TestBaseSetCurrentRejectsUnknownStream(t *testing.T) {
	b := NewBase("clip", NewContainerReference("file:///a.mov", NewFrameRate(24, 1)), uuid.Nil)
	known := uuid.New()
	b.AddStream(MediaTypeImage, known)

	require.False(t, b.SetCurrent(MediaTypeImage, uuid.New()))
	require.True(t, b.SetCurrent(MediaTypeImage, known))
	require.Equal(t, known, b.Current(MediaTypeImage))
}

func TestBaseClearRemovesStreamsButKeepsReference(t *testing.T) {
	b := NewBase("clip", NewContainerReference("file:///a.mov", NewFrameRate(24, 1)), uuid.Nil)
	b.AddStream(MediaTypeImage, uuid.New())
	b.Clear()

	require.True(t, b.Empty())
	require.Equal(t, "file:///a.mov", b.MediaReference.URI)
}

func TestBaseOnlineDefaultsTrueUntilProbed(t *testing.T) {
	b := NewBase("clip", NewContainerReference("file:///a.mov", NewFrameRate(24, 1)), uuid.Nil)
	require.True(t, b.Online())

	b.Status = MediaStatusMissing
	require.False(t, b.Online())

	b.Status = MediaStatusUnreadable
	require.False(t, b.Online())

	b.Status = MediaStatusOnline
	require.True(t, b.Online())
}

func TestBaseSerialiseRoundTrip(t *testing.T) {
	id := uuid.New()
	ref := NewSequenceReference("file:///s.%04d.exr", NewFrameList(1, 2, 3), NewFrameRate(24, 1))
	ref.Duration = Duration{Frames: 3, Rate: NewFrameRate(24, 1)}
	ref.Timecode = NewTimecode(1)

	b := NewBase("seq", ref, id)
	s1 := uuid.New()
	b.AddStream(MediaTypeImage, s1)
	b.ReaderTag = "localfile"
	b.Status = MediaStatusOnline

	data, err := b.Serialise()
	require.NoError(t, err)

	out, err := DeserialiseBase(data)
	require.NoError(t, err)

	require.Equal(t, id, out.UUID)
	require.Equal(t, "seq", out.Name)
	require.Equal(t, "localfile", out.ReaderTag)
	require.Equal(t, MediaStatusOnline, out.Status)
	require.Equal(t, s1, out.Current(MediaTypeImage))
	require.Equal(t, []uuid.UUID{s1}, out.Streams(MediaTypeImage))
	require.Equal(t, 3, out.MediaReference.Duration.Frames)
	require.Equal(t, 1, out.MediaReference.Timecode.TotalFrames())
	require.False(t, out.MediaReference.Container)
	require.Equal(t, []int{1, 2, 3}, out.MediaReference.FrameListField.Frames())
}
