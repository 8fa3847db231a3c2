// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strings"
)

// URIFrame is one (uri, file_frame) pair, the unit uris() enumerates.
type URIFrame struct {
	URI       string
	FileFrame int
}

// MediaReference is the canonical description of the physical asset a
// Media Source addresses (§3). It is a plain value: the source actor
// owns the authoritative copy and mutates it only inside its mailbox.
type MediaReference struct {
	// Container is true for a single-file container, false for an image
	// sequence addressed by FrameListField.
	Container bool
	// URI is the base URI (container) or a printf-style templated URI
	// with a frame-number field (sequence, e.g. "file:///s.%04d.exr").
	URI string
	// FrameListField is the ordered set of file-frame numbers on disk.
	// Empty for containers.
	FrameListField FrameList
	Rate           FrameRate
	Duration       Duration
	Timecode       Timecode
}

// NewContainerReference builds a reference for a single-file container.
func NewContainerReference(uri string, rate FrameRate) MediaReference {
	return MediaReference{
		Container: true,
		URI:       uri,
		Rate:      rate,
	}
}

// NewSequenceReference builds a reference for an image sequence.
func NewSequenceReference(uri string, frames FrameList, rate FrameRate) MediaReference {
	return MediaReference{
		Container:      false,
		URI:            uri,
		FrameListField: frames,
		Rate:           rate,
	}
}

// Frames reports the total logical frame count.
func (r MediaReference) Frames() int { return r.Duration.Frames }

// Empty reports whether the reference describes zero frames — per §3 a
// source with frames == 0 is considered empty/invalid.
func (r MediaReference) Empty() bool { return r.Duration.Frames <= 0 }

// URIAt maps logical_frame in [0, frames) to a concrete URI and file-frame
// number, per §3's uri(logical_frame). It fails with InvalidFrameIndex
// when out of range, including when the reference has not been probed
// yet (Frames() == 0).
func (r MediaReference) URIAt(logicalFrame int) (string, int, error) {
	if r.Duration.Frames <= 0 {
		return "", 0, InvalidFrameIndex("empty media reference")
	}
	if logicalFrame < 0 || logicalFrame >= r.Duration.Frames {
		return "", 0, InvalidFrameIndex(fmt.Sprintf("logical frame %d out of range [0, %d)", logicalFrame, r.Duration.Frames))
	}

	if r.Container {
		return r.URI, logicalFrame, nil
	}

	fileFrame, ok := r.FrameListField.At(logicalFrame)
	if !ok {
		return "", 0, InvalidFrameIndex(fmt.Sprintf("no file frame at logical index %d", logicalFrame))
	}
	return formatSequenceURI(r.URI, fileFrame), fileFrame, nil
}

// URIs enumerates (uri, file_frame) over every logical frame, in order.
// It is finite and restartable: calling it again re-walks the same range.
func (r MediaReference) URIs() []URIFrame {
	if r.Duration.Frames <= 0 {
		return nil
	}
	out := make([]URIFrame, 0, r.Duration.Frames)
	for k := 0; k < r.Duration.Frames; k++ {
		uri, fileFrame, err := r.URIAt(k)
		if err != nil {
			break
		}
		out = append(out, URIFrame{URI: uri, FileFrame: fileFrame})
	}
	return out
}

// FrameZero returns the file-frame number of logical frame 0, used as the
// "first frame" stamp baked into every AVFrameID.
func (r MediaReference) FrameZero() (int, error) {
	_, fileFrame, err := r.URIAt(0)
	return fileFrame, err
}

// SetTimecodeFromFrames sets Timecode so that timecode-as-frames equals
// Frame(0). A reference that cannot resolve frame 0 is left unchanged.
func (r *MediaReference) SetTimecodeFromFrames() {
	fileFrame, err := r.FrameZero()
	if err != nil {
		return
	}
	r.Timecode = NewTimecode(fileFrame)
}

// formatSequenceURI substitutes fileFrame into a printf-style templated
// URI (e.g. "file:///s.%04d.exr"). Templates without a '%' verb are
// returned unchanged, matching a sequence whose on-disk names do not
// embed the frame number in the URI string itself.
func formatSequenceURI(template string, fileFrame int) string {
	if !strings.Contains(template, "%") {
		return template
	}
	return fmt.Sprintf(template, fileFrame)
}

// HashPadFilename rewrites printf-style zero-pad tokens ({:0Nd}) in a
// filename into '#' padding, e.g. "shot.{:04d}.exr" -> "shot.####.exr".
// Used by the UI detail projection (§4.9).
func HashPadFilename(filename string) string {
	var b strings.Builder
	i := 0
	for i < len(filename) {
		if filename[i] == '{' {
			if end, width, ok := parseHashPadToken(filename, i); ok {
				b.WriteString(strings.Repeat("#", width))
				i = end
				continue
			}
		}
		b.WriteByte(filename[i])
		i++
	}
	return b.String()
}

// parseHashPadToken recognizes "{:0<digits>d}" starting at i and returns
// the index just past the closing brace and the pad width.
func parseHashPadToken(s string, i int) (end int, width int, ok bool) {
	const prefix = "{:0"
	if !strings.HasPrefix(s[i:], prefix) {
		return 0, 0, false
	}
	j := i + len(prefix)
	digitsStart := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == digitsStart || j >= len(s) || s[j] != 'd' {
		return 0, 0, false
	}
	j++
	if j >= len(s) || s[j] != '}' {
		return 0, 0, false
	}
	var w int
	for _, c := range s[digitsStart : j-1] {
		w = w*10 + int(c-'0')
	}
	return j + 1, w, true
}
