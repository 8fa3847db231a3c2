// SPDX-License-Identifier: Apache-2.0

// Package reader provides a filesystem-backed ports.ReaderRegistry
// stub, grounded on the teacher's infrastructure/media/stub adapter:
// it claims file:// URIs by extension and reports just enough detail
// (existence, a single stream, a configured rate) to exercise
// acquire-detail without a real decoder plugin wired in.
package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// LocalFile is a stub ReaderRegistry over the local filesystem. It
// claims any URI whose extension it recognises and probes by stat'ing
// the addressed path; it never decodes pixel or sample data.
type LocalFile struct {
	mu          sync.RWMutex
	imageExts   map[string]bool
	audioExts   map[string]bool
	defaultRate model.FrameRate
}

// NewLocalFile builds a LocalFile reader with a conservative default
// extension set and fallback rate.
func NewLocalFile(defaultRate model.FrameRate) *LocalFile {
	return &LocalFile{
		imageExts:   map[string]bool{".exr": true, ".dpx": true, ".png": true, ".jpg": true, ".jpeg": true, ".mov": true, ".mp4": true},
		audioExts:   map[string]bool{".wav": true, ".aif": true, ".aiff": true},
		defaultRate: defaultRate,
	}
}

func (r *LocalFile) classify(uri string) (model.MediaType, bool) {
	ext := strings.ToLower(filepath.Ext(uri))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.imageExts[ext] {
		return model.MediaTypeImage, true
	}
	if r.audioExts[ext] {
		return model.MediaTypeAudio, true
	}
	return "", false
}

// ReaderTag returns "localfile" for any URI with a recognised
// extension, or a reader-kind error otherwise (§4.5).
func (r *LocalFile) ReaderTag(ctx context.Context, uri string) (string, error) {
	path := stripFileScheme(uri)
	if _, ok := r.classify(path); !ok {
		return "", model.WrapReader(fmt.Errorf("localfile: no reader claims %q", uri))
	}
	return "localfile", nil
}

// Probe stats the addressed path and reports a single stream of the
// classified media type. An audio file or a .mov/.mp4 extension yields
// Container=true; everything else is treated as one frame of a
// sequence. When frame is non-nil, only that single file-frame's
// existence is checked (per-frame metadata probing, §4.5).
func (r *LocalFile) Probe(ctx context.Context, readerTag, uri string, frame *int) (ports.MediaDetail, error) {
	path := stripFileScheme(uri)
	mt, ok := r.classify(path)
	if !ok {
		return ports.MediaDetail{}, model.WrapReader(fmt.Errorf("localfile: no reader claims %q", uri))
	}

	info, err := os.Stat(path)
	if err != nil {
		return ports.MediaDetail{}, model.WrapReader(err)
	}

	isContainer := mt == model.MediaTypeAudio || strings.EqualFold(filepath.Ext(path), ".mov") || strings.EqualFold(filepath.Ext(path), ".mp4")

	frames := 1
	if isContainer {
		// A stub can't know a container's real frame count; a size
		// based heuristic is good enough to exercise non-degenerate
		// durations without decoding.
		frames = int(info.Size()/1_000_000) + 1
	}

	return ports.MediaDetail{
		Container: isContainer,
		Frames:    frames,
		Rate:      r.defaultRate,
		KeyFormat: "localfile:v1",
		Streams: []model.StreamDetail{
			{
				Name:      "main",
				Duration:  model.Duration{Frames: frames, Rate: r.defaultRate},
				MediaType: mt,
				KeyFormat: "localfile:v1",
			},
		},
	}, nil
}

func stripFileScheme(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

var _ ports.ReaderRegistry = (*LocalFile)(nil)
