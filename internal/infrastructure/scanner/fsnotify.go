// SPDX-License-Identifier: Apache-2.0

// Package scanner provides a filesystem-watch ports.Scanner, grounded
// on the teacher's proxy.WaitForFile fsnotify usage: each watched
// source gets its own goroutine tracking the parent directory of its
// backing path for create/remove events and flipping online/offline
// status accordingly (§4.6, supplemented feature).
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// FSNotify watches backing files for reachability changes using one
// shared fsnotify.Watcher, demultiplexed by directory.
type FSNotify struct {
	logger zerolog.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	watches  map[uuid.UUID]watch
	dirRefs  map[string]int
}

type watch struct {
	cancel context.CancelFunc
}

// New starts the shared fsnotify watcher. Callers must call Close when
// done to release the underlying OS resource.
func New(logger zerolog.Logger) (*FSNotify, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, model.WrapGeneric(err)
	}
	return &FSNotify{
		logger:  logger,
		watcher: w,
		watches: make(map[uuid.UUID]watch),
		dirRefs: make(map[string]int),
	}, nil
}

func (s *FSNotify) Close() error {
	return s.watcher.Close()
}

// Watch begins tracking uri's backing path on behalf of sourceUUID,
// reporting an initial status immediately and subsequent transitions
// as fsnotify create/remove events arrive in its parent directory.
func (s *FSNotify) Watch(ctx context.Context, sourceUUID uuid.UUID, uri string, onStatus func(model.MediaStatus)) error {
	path := strings.TrimPrefix(uri, "file://")
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	s.mu.Lock()
	if s.dirRefs[dir] == 0 {
		if err := s.watcher.Add(dir); err != nil {
			s.mu.Unlock()
			return model.WrapGeneric(err)
		}
	}
	s.dirRefs[dir]++
	watchCtx, cancel := context.WithCancel(ctx)
	s.watches[sourceUUID] = watch{cancel: cancel}
	s.mu.Unlock()

	onStatus(statusOf(path))

	go s.run(watchCtx, sourceUUID, dir, name, path, onStatus)
	return nil
}

func (s *FSNotify) run(ctx context.Context, sourceUUID uuid.UUID, dir, name, path string, onStatus func(model.MediaStatus)) {
	defer s.releaseDir(sourceUUID, dir)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Dir(event.Name) != dir || filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				onStatus(model.MediaStatusOnline)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				onStatus(model.MediaStatusMissing)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Str("path", path).Msg("scanner: fsnotify watcher error")
		}
	}
}

func (s *FSNotify) releaseDir(sourceUUID uuid.UUID, dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watches, sourceUUID)
	s.dirRefs[dir]--
	if s.dirRefs[dir] <= 0 {
		delete(s.dirRefs, dir)
		_ = s.watcher.Remove(dir)
	}
}

// Unwatch stops tracking sourceUUID.
func (s *FSNotify) Unwatch(sourceUUID uuid.UUID) {
	s.mu.Lock()
	w, ok := s.watches[sourceUUID]
	s.mu.Unlock()
	if ok {
		w.cancel()
	}
}

func statusOf(path string) model.MediaStatus {
	if _, err := os.Stat(path); err != nil {
		return model.MediaStatusMissing
	}
	return model.MediaStatusOnline
}

var _ ports.Scanner = (*FSNotify)(nil)
