// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package astcache persists extracted ASTs keyed by relative path and the
// sha256 of file content, so an unchanged file never pays the tree-sitter
// parse cost again. A cache entry is invalidation-free by construction: the
// key already encodes content identity, so a stale entry is simply a
// different key, never a wrong value under an old one.
package astcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/dipeo/codegen/internal/astx"
)

// Sentinel errors for cache operations.
var (
	// ErrEntryNotFound is returned when the requested key has no entry.
	ErrEntryNotFound = errors.New("astcache: entry not found")
)

// Config configures the underlying badger store.
type Config struct {
	// InMemory runs the store without touching disk. Intended for tests
	// and one-shot invocations where persistence across runs isn't needed.
	InMemory bool

	// Path is the on-disk directory for persistent storage. Required
	// unless InMemory is set.
	Path string

	// SyncWrites forces an fsync on every write.
	SyncWrites bool

	// NumVersionsToKeep bounds the number of historical versions badger
	// keeps per key.
	NumVersionsToKeep int

	// GCInterval is carried for callers that run value-log garbage
	// collection themselves (see NewGCRunner); Open does not read it and
	// starts no background GC.
	GCInterval time.Duration
}

// DefaultConfig returns sane defaults for persistent use.
func DefaultConfig() Config {
	return Config{
		SyncWrites:        true,
		NumVersionsToKeep: 1,
		GCInterval:        5 * time.Minute,
	}
}

// InMemoryConfig returns defaults for ephemeral, in-memory use.
func InMemoryConfig() Config {
	return Config{
		InMemory:   true,
		SyncWrites: false,
		GCInterval: 0,
	}
}

// DB wraps a badger.DB with context-aware transaction helpers.
type DB struct {
	badger *badger.DB
}

// Open opens a store per cfg. Persistent mode requires cfg.Path.
func Open(cfg Config) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("astcache: path is required for persistent storage")
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts = opts.WithInMemory(cfg.InMemory)
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithLogger(nil)
	if cfg.NumVersionsToKeep > 0 {
		opts = opts.WithNumVersionsToKeep(cfg.NumVersionsToKeep)
	}

	return badger.Open(opts)
}

// OpenInMemory opens an ephemeral, in-memory store.
func OpenInMemory() (*badger.DB, error) {
	return Open(InMemoryConfig())
}

// OpenWithPath opens a persistent store rooted at dir.
func OpenWithPath(dir string) (*badger.DB, error) {
	cfg := DefaultConfig()
	cfg.Path = dir
	return Open(cfg)
}

// OpenDB opens a store per cfg and wraps it with transaction helpers.
func OpenDB(cfg Config) (*DB, error) {
	bdb, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	return &DB{badger: bdb}, nil
}

// Close closes the underlying store.
func (d *DB) Close() error {
	return d.badger.Close()
}

// WithTxn runs fn in a read-write transaction, committing on success and
// rolling back on error or context cancellation.
func (d *DB) WithTxn(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("astcache: context cancelled: %w", err)
	}
	return d.badger.Update(fn)
}

// WithReadTxn runs fn in a read-only transaction.
func (d *DB) WithReadTxn(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("astcache: context cancelled: %w", err)
	}
	return d.badger.View(fn)
}

// Cache is a content-addressed store of extracted astx.Files.
type Cache struct {
	db *DB
}

// New wraps db as a Cache.
func New(db *DB) *Cache {
	return &Cache{db: db}
}

// Key returns the cache key for relativePath at the given content hash.
// The hash is expected to be the hex sha256 digest already computed by the
// extractor (astx.File.Hash). The separator is NUL rather than a visible
// character so a path containing it can never collide with the hash
// half of the key.
func Key(relativePath, contentHash string) []byte {
	return []byte(relativePath + "\x00" + contentHash)
}

// Get returns the cached File for relativePath/contentHash, if present.
func (c *Cache) Get(ctx context.Context, relativePath, contentHash string) (*astx.File, error) {
	var file astx.File
	key := Key(relativePath, contentHash)

	err := c.db.WithReadTxn(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &file)
		})
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Put stores file under relativePath/contentHash, overwriting any existing
// entry for that exact key. Because the key already encodes content
// identity, a Put for a changed file is always a new key, never a mutation
// of a stale one.
func (c *Cache) Put(ctx context.Context, relativePath, contentHash string, file *astx.File) error {
	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("astcache: marshal entry: %w", err)
	}
	key := Key(relativePath, contentHash)

	return c.db.WithTxn(ctx, func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GCRunner periodically reclaims badger value-log space.
type GCRunner struct {
	db       *badger.DB
	interval time.Duration
	ratio    float64
	onError  func(error)
	stop     chan struct{}
	done     chan struct{}
}

// NewGCRunner validates its arguments and returns a runner that has not
// yet started. onError may be nil, in which case GC errors are discarded.
func NewGCRunner(db *badger.DB, interval time.Duration, ratio float64, onError func(error)) (*GCRunner, error) {
	if db == nil {
		return nil, fmt.Errorf("astcache: db must not be nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("astcache: interval must be positive")
	}
	if ratio <= 0 || ratio >= 1 {
		return nil, fmt.Errorf("astcache: ratio must be between 0 and 1")
	}
	return &GCRunner{
		db:       db,
		interval: interval,
		ratio:    ratio,
		onError:  onError,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start runs garbage collection on a ticker until Stop is called.
func (r *GCRunner) Start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				for {
					err := r.db.RunValueLogGC(r.ratio)
					if err != nil {
						if err != badger.ErrNoRewrite && r.onError != nil {
							r.onError(err)
						}
						break
					}
				}
			}
		}
	}()
}

// Stop halts the GC loop and waits for it to exit.
func (r *GCRunner) Stop() {
	close(r.stop)
	<-r.done
}

// TempDir creates a new temp directory with the given prefix.
func TempDir(prefix string) (string, error) {
	return os.MkdirTemp("", prefix)
}

// CleanupDir removes dir and its contents. A blank path is a no-op.
func CleanupDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}
