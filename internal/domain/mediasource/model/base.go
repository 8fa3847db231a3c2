// SPDX-License-Identifier: Apache-2.0

package model

import (
	"github.com/google/uuid"
)

// Base is the Media Source's base state record (§2, §6 "Persisted state
// layout"): everything about a source that is not a child actor.
type Base struct {
	UUID           uuid.UUID
	Name           string
	ParentUUID     uuid.UUID
	MediaReference MediaReference
	ReaderTag      string
	Status         MediaStatus
	ErrorDetail    string

	current map[MediaType]uuid.UUID
	streams map[MediaType][]uuid.UUID
}

// NewBase builds a Base with a freshly generated uuid, or uuid if it is
// not the nil UUID (constructors (b) and (c) accept an optional caller
// supplied uuid).
func NewBase(name string, ref MediaReference, id uuid.UUID) Base {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Base{
		UUID:           id,
		Name:           name,
		MediaReference: ref,
		current:        make(map[MediaType]uuid.UUID),
		streams:        make(map[MediaType][]uuid.UUID),
	}
}

func (b *Base) ensureMaps() {
	if b.current == nil {
		b.current = make(map[MediaType]uuid.UUID)
	}
	if b.streams == nil {
		b.streams = make(map[MediaType][]uuid.UUID)
	}
}

// Online reports whether the source's backing files are considered
// reachable. A source that has never been probed (status unknown) is
// optimistically online so the first acquire-detail can run.
func (b Base) Online() bool {
	switch b.Status {
	case MediaStatusMissing, MediaStatusUnreadable:
		return false
	default:
		return true
	}
}

// Empty reports whether the source has no streams of any media type —
// the all-or-nothing condition §4.1 guarantees and frame-request paths
// must reject (§3 invariant, §4.3).
func (b *Base) Empty() bool {
	b.ensureMaps()
	for _, ids := range b.streams {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}

// HasType reports whether the source owns at least one stream of mt.
func (b *Base) HasType(mt MediaType) bool {
	b.ensureMaps()
	return len(b.streams[mt]) > 0
}

// Streams returns a defensive copy of the known stream uuids of mt, in
// the order they were registered.
func (b *Base) Streams(mt MediaType) []uuid.UUID {
	b.ensureMaps()
	src := b.streams[mt]
	out := make([]uuid.UUID, len(src))
	copy(out, src)
	return out
}

// AddStream registers id as a known stream of mt, if not already known.
// If mt currently has no current-stream selection, id becomes current.
func (b *Base) AddStream(mt MediaType, id uuid.UUID) {
	b.ensureMaps()
	for _, existing := range b.streams[mt] {
		if existing == id {
			return
		}
	}
	b.streams[mt] = append(b.streams[mt], id)
	if b.current[mt] == uuid.Nil {
		b.current[mt] = id
	}
}

// Clear removes every known stream and current-stream selection, leaving
// the rest of the base state (name, media reference, reader, status)
// untouched — used at the start of acquire-detail (§4.1 step 1).
func (b *Base) Clear() {
	b.ensureMaps()
	b.current = make(map[MediaType]uuid.UUID)
	b.streams = make(map[MediaType][]uuid.UUID)
}

// Current returns the current stream uuid for mt, or uuid.Nil if none.
func (b *Base) Current(mt MediaType) uuid.UUID {
	b.ensureMaps()
	return b.current[mt]
}

// SetCurrent updates the current-stream pointer for mt to id, but only
// if id is a known stream of that type (§4.2). Reports whether the
// change was accepted.
func (b *Base) SetCurrent(mt MediaType, id uuid.UUID) bool {
	b.ensureMaps()
	for _, existing := range b.streams[mt] {
		if existing == id {
			b.current[mt] = id
			return true
		}
	}
	return false
}

// HasStream reports whether id is known under any media type.
func (b *Base) HasStream(id uuid.UUID) bool {
	b.ensureMaps()
	for _, ids := range b.streams {
		for _, existing := range ids {
			if existing == id {
				return true
			}
		}
	}
	return false
}

// serialisedBase is the on-the-wire shape of Base, per §6's layout.
type serialisedBase struct {
	UUID               uuid.UUID              `json:"uuid"`
	Name               string                 `json:"name"`
	ParentUUID         uuid.UUID              `json:"parent_uuid"`
	MediaReference     serialisedReference    `json:"media_reference"`
	Reader             string                 `json:"reader"`
	Status             MediaStatus            `json:"status"`
	ErrorDetail        string                 `json:"error_detail,omitempty"`
	CurrentImageStream uuid.UUID              `json:"current_image_stream"`
	CurrentAudioStream uuid.UUID              `json:"current_audio_stream"`
	StreamsByType      map[MediaType][]uuid.UUID `json:"streams_by_type"`
}

type serialisedReference struct {
	Container bool        `json:"container"`
	URI       string      `json:"uri"`
	FrameList []int       `json:"frame_list"`
	RateNum   int64       `json:"rate_num"`
	RateDen   int64       `json:"rate_den"`
	Frames    int         `json:"frames"`
	Timecode  int         `json:"timecode_frames"`
}

// Serialise projects Base into its persisted JSON shape (§4.8, §6).
func (b *Base) Serialise() ([]byte, error) {
	b.ensureMaps()
	streamsByType := make(map[MediaType][]uuid.UUID, len(b.streams))
	for mt, ids := range b.streams {
		streamsByType[mt] = append([]uuid.UUID(nil), ids...)
	}
	return marshalBase(serialisedBase{
		UUID:       b.UUID,
		Name:       b.Name,
		ParentUUID: b.ParentUUID,
		MediaReference: serialisedReference{
			Container: b.MediaReference.Container,
			URI:       b.MediaReference.URI,
			FrameList: b.MediaReference.FrameListField.Frames(),
			RateNum:   b.MediaReference.Rate.Num,
			RateDen:   b.MediaReference.Rate.Den,
			Frames:    b.MediaReference.Duration.Frames,
			Timecode:  b.MediaReference.Timecode.TotalFrames(),
		},
		Reader:             b.ReaderTag,
		Status:             b.Status,
		ErrorDetail:        b.ErrorDetail,
		CurrentImageStream: b.current[MediaTypeImage],
		CurrentAudioStream: b.current[MediaTypeAudio],
		StreamsByType:      streamsByType,
	})
}

// DeserialiseBase reconstructs a Base from its persisted JSON shape.
func DeserialiseBase(data []byte) (Base, error) {
	var s serialisedBase
	if err := unmarshalBase(data, &s); err != nil {
		return Base{}, err
	}
	b := Base{
		UUID:        s.UUID,
		Name:        s.Name,
		ParentUUID:  s.ParentUUID,
		ReaderTag:   s.Reader,
		Status:      s.Status,
		ErrorDetail: s.ErrorDetail,
		current:     make(map[MediaType]uuid.UUID),
		streams:     make(map[MediaType][]uuid.UUID),
	}
	rate := NewFrameRate(s.MediaReference.RateNum, s.MediaReference.RateDen)
	ref := MediaReference{
		Container: s.MediaReference.Container,
		URI:       s.MediaReference.URI,
		Rate:      rate,
		Duration:  Duration{Frames: s.MediaReference.Frames, Rate: rate},
		Timecode:  NewTimecode(s.MediaReference.Timecode),
	}
	if !ref.Container {
		ref.FrameListField = NewFrameList(s.MediaReference.FrameList...)
	}
	b.MediaReference = ref

	for mt, ids := range s.StreamsByType {
		b.streams[mt] = append([]uuid.UUID(nil), ids...)
	}
	if s.CurrentImageStream != uuid.Nil {
		b.current[MediaTypeImage] = s.CurrentImageStream
	}
	if s.CurrentAudioStream != uuid.Nil {
		b.current[MediaTypeAudio] = s.CurrentAudioStream
	}
	return b, nil
}
