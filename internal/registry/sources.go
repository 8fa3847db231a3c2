// SPDX-License-Identifier: Apache-2.0

// Package registry is the process-local directory of live Media Source
// actors, used by the HTTP projection surface and mediasourcectl to
// address a source by uuid. The domain packages never depend on this —
// it is purely an outer-surface convenience, grounded on the teacher's
// session registries under internal/domain/session.
package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/source"
)

// Sources is a concurrent directory of *source.Actor keyed by uuid.
type Sources struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*source.Actor
}

// New builds an empty Sources directory.
func New() *Sources {
	return &Sources{items: make(map[uuid.UUID]*source.Actor)}
}

// Add registers a, keyed by its own uuid.
func (s *Sources) Add(a *source.Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[a.UUID()] = a
}

// Remove drops id from the directory without shutting it down.
func (s *Sources) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Get returns the actor registered under id, or ok=false.
func (s *Sources) Get(id uuid.UUID) (*source.Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[id]
	return a, ok
}

// List returns every registered uuid.
func (s *Sources) List() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	return ids
}
