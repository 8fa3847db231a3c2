// SPDX-License-Identifier: Apache-2.0

// Package thumbnail provides ports.ThumbnailManager adapters.
package thumbnail

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

type thumbnailRequest struct {
	uri          string
	logicalFrame int
}

// Stub is a ThumbnailManager that records requests instead of
// generating real preview images, used as the default wiring.
type Stub struct {
	Logger zerolog.Logger

	mu      sync.Mutex
	pending map[uuid.UUID]thumbnailRequest
}

// NewStub builds an empty Stub thumbnail manager.
func NewStub(logger zerolog.Logger) *Stub {
	return &Stub{Logger: logger, pending: make(map[uuid.UUID]thumbnailRequest)}
}

func (s *Stub) Generate(ctx context.Context, sourceUUID uuid.UUID, uri string, logicalFrame int) {
	s.mu.Lock()
	s.pending[sourceUUID] = thumbnailRequest{uri, logicalFrame}
	s.mu.Unlock()
	s.Logger.Debug().
		Str("source_uuid", sourceUUID.String()).
		Str("uri", uri).
		Int("logical_frame", logicalFrame).
		Msg("thumbnail: generate requested")
}

func (s *Stub) Invalidate(ctx context.Context, sourceUUID uuid.UUID) {
	s.mu.Lock()
	delete(s.pending, sourceUUID)
	s.mu.Unlock()
}

// Pending reports whether a generate request is outstanding for
// sourceUUID, used by tests.
func (s *Stub) Pending(sourceUUID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[sourceUUID]
	return ok
}

var _ ports.ThumbnailManager = (*Stub)(nil)
