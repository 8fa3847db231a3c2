// SPDX-License-Identifier: Apache-2.0

package metadatastore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// BadgerStore is a persisted ports.MetadataStore, one badger key per
// (owner, path) pair: "meta:<owner>:<path>". Intentionally conservative,
// matching the teacher's BadgerStore MVP approach.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("metadatastore: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }

func metaKey(owner uuid.UUID, path string) []byte {
	return []byte("meta:" + owner.String() + ":" + path)
}

func ownerPrefix(owner uuid.UUID) []byte {
	return []byte("meta:" + owner.String() + ":")
}

func (s *BadgerStore) Get(ctx context.Context, owner uuid.UUID, path string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(owner, path))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, model.NoFrames("no metadata at path")
	}
	if err != nil {
		return nil, model.WrapGeneric(err)
	}
	return out, nil
}

func (s *BadgerStore) Set(ctx context.Context, owner uuid.UUID, path string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(metaKey(owner, path), value)
	})
	if err != nil {
		return model.WrapGeneric(err)
	}
	return nil
}

func (s *BadgerStore) Merge(ctx context.Context, owner uuid.UUID, path string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		merged := map[string]interface{}{}
		item, err := txn.Get(metaKey(owner, path))
		if err == nil {
			_ = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &merged)
			})
		} else if err != badger.ErrKeyNotFound {
			return err
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
		return txn.Set(metaKey(owner, path), out)
	})
}

func (s *BadgerStore) SetAt(ctx context.Context, owner uuid.UUID, path, key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		parent := map[string]interface{}{}
		item, err := txn.Get(metaKey(owner, path))
		if err == nil {
			_ = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &parent)
			})
		} else if err != badger.ErrKeyNotFound {
			return err
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
		return txn.Set(metaKey(owner, path), out)
	})
}

func (s *BadgerStore) GetAll(ctx context.Context, owner uuid.UUID) (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := ownerPrefix(owner)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			path := strings.TrimPrefix(string(item.Key()), string(prefix))
			if err := item.Value(func(val []byte) error {
				out[path] = append([]byte(nil), val...)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, model.WrapGeneric(err)
	}
	return out, nil
}

func (s *BadgerStore) Clear(ctx context.Context, owner uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := ownerPrefix(owner)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, append([]byte(nil), it.Item().Key()...))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ ports.MetadataStore = (*BadgerStore)(nil)
