// SPDX-License-Identifier: Apache-2.0

package model

// FrameList is the ordered set of integer file-frame numbers present on
// disk for a sequence source (§3). Logical frame k addresses frames[k].
type FrameList struct {
	frames []int
}

// NewFrameList builds a FrameList from explicit file-frame numbers, in
// logical order (the order the caller supplies them in).
func NewFrameList(frames ...int) FrameList {
	out := make([]int, len(frames))
	copy(out, frames)
	return FrameList{frames: out}
}

// FrameRange builds a contiguous FrameList [first, last] inclusive, as
// used by the detail-acquisition reconciliation table ("frame_list =
// [0, frames-1]").
func FrameRange(first, last int) FrameList {
	if last < first {
		return FrameList{}
	}
	frames := make([]int, 0, last-first+1)
	for f := first; f <= last; f++ {
		frames = append(frames, f)
	}
	return FrameList{frames: frames}
}

// Len returns the number of file frames in the list.
func (fl FrameList) Len() int { return len(fl.frames) }

// At returns the file frame at logical index i.
func (fl FrameList) At(i int) (int, bool) {
	if i < 0 || i >= len(fl.frames) {
		return 0, false
	}
	return fl.frames[i], true
}

// First returns the file frame at logical index 0.
func (fl FrameList) First() (int, bool) {
	return fl.At(0)
}

// Frames returns a defensive copy of the underlying file-frame numbers.
func (fl FrameList) Frames() []int {
	out := make([]int, len(fl.frames))
	copy(out, fl.frames)
	return out
}

// Empty reports whether the list has no frames.
func (fl FrameList) Empty() bool { return len(fl.frames) == 0 }
