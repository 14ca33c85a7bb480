// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package localstore persists Lithoform's client-side state between runs.
//
// Three independently keyed entries live here: the session token, the
// serialized user profile, and the guest cart line list. Each is read
// once at startup and rewritten whole on every relevant mutation.
//
// Corrupt or missing data is never fatal: reads report "absent" and the
// caller starts from a clean state. A client cache must not be able to
// brick the CLI.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/lithoform/lithoform/pkg/storage/badger"
)

// Well-known keys. Each entry is owned by exactly one component.
const (
	// KeyToken holds the opaque session credential.
	KeyToken = "session/token"

	// KeyProfile holds the serialized user profile.
	KeyProfile = "session/profile"

	// KeyGuestCart holds the serialized guest cart line list.
	KeyGuestCart = "cart/guest"
)

// ErrClosed indicates the store has been closed.
var ErrClosed = errors.New("local store is closed")

// Store is a small typed facade over the embedded BadgerDB.
//
// Thread Safety: Safe for concurrent use; BadgerDB serializes
// transactions internally.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the persistent store at the given directory.
func Open(path string) (*Store, error) {
	db, err := badger.OpenWithPath(path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a volatile store for testing.
func OpenInMemory() (*Store, error) {
	db, err := badger.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Put writes raw bytes under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.WithTxn(ctx, func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Get reads raw bytes under key. The second return value is false
// when the key is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, ErrClosed
	}
	var out []byte
	err := s.db.WithReadTxn(ctx, func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.WithTxn(ctx, func(txn *badgerdb.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// PutJSON serializes v and writes it under key.
func (s *Store) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Put(ctx, key, data)
}

// GetJSON reads key and unmarshals it into v.
//
// Returns false when the key is absent OR the stored bytes fail to
// unmarshal. Corrupt persisted state is treated exactly like missing
// state, never surfaced as an error to the caller.
func (s *Store) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupt entry: report absent; the next write repairs it.
		return false, nil
	}
	return true, nil
}

// PutString writes a plain string under key.
func (s *Store) PutString(ctx context.Context, key, value string) error {
	return s.Put(ctx, key, []byte(value))
}

// GetString reads a plain string under key.
func (s *Store) GetString(ctx context.Context, key string) (string, bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(data), true, nil
}
