// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SourceRef is a weak, identity-only back-reference to the Media Source
// that produced an AVFrameID (§3, §9 "Frame descriptor back-reference").
// It must never be used to extend the source's lifetime — only to
// identify it or re-enter it through whatever transport the caller
// already holds a handle for.
type SourceRef interface {
	SourceUUID() uuid.UUID
}

// LogicalFrameRange is an inclusive [First, Last] span of logical frames,
// the unit the range-list frame-pointer request (§4.3c) takes.
type LogicalFrameRange struct {
	First int
	Last  int
}

// AVFrameID is the immutable, decode-ready descriptor of one frame (§3).
// Every field is a value or a weak reference; nothing here owns the
// source or the stream it was produced from.
type AVFrameID struct {
	URI               string
	FileFrame         int
	FirstFrameStamp   int
	Rate              FrameRate
	StreamName        string
	KeyFormat         string
	ReaderTag         string
	SourceAddress     SourceRef
	ColourPipeline    json.RawMessage
	CurrentStreamUUID uuid.UUID
	ParentUUID        uuid.UUID
	MediaType         MediaType

	// Blank marks a sentinel descriptor standing in for a frame that
	// could not be resolved, so batch/range requests stay positional
	// without failing outright (§4.3c, "blank sentinel").
	Blank bool
}

// BlankFrame builds the distinguished "no frame here" sentinel for
// mediaType, per §4.3(c) and the GLOSSARY.
func BlankFrame(mediaType MediaType) AVFrameID {
	return AVFrameID{MediaType: mediaType, Blank: true}
}

// Key derives the cache key for this frame descriptor.
func (f AVFrameID) Key() MediaKey {
	if f.Blank {
		return MediaKey{}
	}
	return NewMediaKey(f.KeyFormat, f.URI, f.FileFrame, f.StreamName)
}
