// SPDX-License-Identifier: Apache-2.0

// Package metadatastore provides ports.MetadataStore adapters: an
// in-memory map for tests and a badger-backed store for persistence,
// grounded on the teacher's v3/store.BadgerStore.
package metadatastore

import (
	"encoding/json"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// Memory is an in-process ports.MetadataStore backed by a nested map,
// keyed by owner uuid then slash-separated path.
type Memory struct {
	mu   sync.RWMutex
	data map[uuid.UUID]map[string]json.RawMessage
}

// NewMemory builds an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[uuid.UUID]map[string]json.RawMessage)}
}

func (m *Memory) Get(ctx context.Context, owner uuid.UUID, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tree, ok := m.data[owner]
	if !ok {
		return nil, model.NoFrames("no metadata for owner")
	}
	v, ok := tree[path]
	if !ok {
		return nil, model.NoFrames("no metadata at path")
	}
	return []byte(v), nil
}

func (m *Memory) Set(ctx context.Context, owner uuid.UUID, path string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(owner)[path] = append(json.RawMessage(nil), value...)
	return nil
}

func (m *Memory) Merge(ctx context.Context, owner uuid.UUID, path string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tree := m.ensure(owner)

	merged := map[string]interface{}{}
	if existing, ok := tree[path]; ok {
		_ = json.Unmarshal(existing, &merged)
	}
	var incoming map[string]interface{}
	if err := json.Unmarshal(value, &incoming); err != nil {
		return fmt.Errorf("metadatastore: merge: %w", err)
	}
	for k, v := range incoming {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	tree[path] = out
	return nil
}

func (m *Memory) SetAt(ctx context.Context, owner uuid.UUID, path, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tree := m.ensure(owner)

	parent := map[string]interface{}{}
	if existing, ok := tree[path]; ok {
		_ = json.Unmarshal(existing, &parent)
	}
	var v interface{}
	if err := json.Unmarshal(value, &v); err != nil {
		return fmt.Errorf("metadatastore: setAt: %w", err)
	}
	parent[key] = v
	out, err := json.Marshal(parent)
	if err != nil {
		return err
	}
	tree[path] = out
	return nil
}

func (m *Memory) Clear(ctx context.Context, owner uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, owner)
	return nil
}

func (m *Memory) GetAll(ctx context.Context, owner uuid.UUID) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tree, ok := m.data[owner]
	if !ok {
		return nil, nil
	}
	out := make(map[string][]byte, len(tree))
	for path, v := range tree {
		out[path] = append([]byte(nil), v...)
	}
	return out, nil
}

func (m *Memory) ensure(owner uuid.UUID) map[string]json.RawMessage {
	tree, ok := m.data[owner]
	if !ok {
		tree = make(map[string]json.RawMessage)
		m.data[owner] = tree
	}
	return tree
}

var _ ports.MetadataStore = (*Memory)(nil)
