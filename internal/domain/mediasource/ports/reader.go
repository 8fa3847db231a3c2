// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"context"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

// MediaDetail is everything a concrete reader plugin can determine about
// a URI by probing it (§4.5, "Metadata probing"). It is reader-agnostic:
// the source actor never imports a specific reader implementation.
type MediaDetail struct {
	// Container is true when the probed URI addresses the whole asset
	// (video container, audio file); false for a single frame of an
	// image sequence.
	Container bool
	Frames    int
	Rate      model.FrameRate
	// Timecode is the probed SMPTE timecode, used to overwrite the
	// media reference's timecode when it was zero-valued (§4.1 step 4).
	Timecode  model.Timecode
	Streams   []model.StreamDetail
	KeyFormat string
}

// ReaderRegistry resolves a URI to the reader plugin capable of decoding
// it, and exposes the probing operation that plugin performs (§4.5).
// Concrete adapters live in internal/infrastructure/reader.
type ReaderRegistry interface {
	// ReaderTag returns the opaque tag of the plugin that claims uri, or
	// an error (model.KindReaderError) if no plugin claims it.
	ReaderTag(ctx context.Context, uri string) (string, error)

	// Probe extracts MediaDetail from uri using the named reader. When
	// frame is nil the whole asset is probed (container, or sequence
	// frame zero acting as a representative sample); when non-nil, the
	// single file-frame addressed by *frame is probed in isolation,
	// which is how per-frame metadata merge (§4.5) is implemented.
	Probe(ctx context.Context, readerTag, uri string, frame *int) (MediaDetail, error)
}
