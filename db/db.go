package db

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/conure-db/conure-btree/btree"
)

// DefaultDegree is the minimum degree used when Options leave it unset
const DefaultDegree = 32

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrEmptyKey    = errors.New("empty key")
	ErrClosed      = errors.New("database closed")
)

// Options configures a DB
type Options struct {
	// Degree is the minimum degree of the underlying tree
	Degree int

	// CheckInvariants validates the tree after every mutation and logs
	// any violation at error level
	CheckInvariants bool

	Logger *zap.Logger
}

// DefaultOptions returns the options used by Open when none are given
func DefaultOptions() Options {
	return Options{Degree: DefaultDegree}
}

// DB represents an in-memory key-value database
type DB struct {
	mu       sync.RWMutex
	tree     *btree.BTree[string, []byte]
	opts     Options
	log      *zap.Logger
	isClosed bool
}

// Open opens a database
func Open(opts Options) (*DB, error) {
	if opts.Degree == 0 {
		opts.Degree = DefaultDegree
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tree, err := btree.New[string, []byte](opts.Degree)
	if err != nil {
		return nil, err
	}

	logger.Debug("database opened", zap.Int("degree", opts.Degree), zap.Bool("check_invariants", opts.CheckInvariants))

	return &DB{
		tree: tree,
		opts: opts,
		log:  logger,
	}, nil
}

// Close closes the database
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.isClosed {
		return fmt.Errorf("database already closed: %w", ErrClosed)
	}

	db.isClosed = true
	db.tree.Clear()
	db.log.Debug("database closed")
	return nil
}

// Get gets a copy of the value stored under key
func (db *DB) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.isClosed {
		return nil, ErrClosed
	}

	value, ok := db.tree.Get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	return bytes.Clone(value), nil
}

// Put puts a key-value pair in the database, replacing any existing value.
// The database keeps its own copy of value.
func (db *DB) Put(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.isClosed {
		return ErrClosed
	}

	height := db.tree.Height()
	replaced := db.tree.Set(key, bytes.Clone(value))
	db.log.Debug("put", zap.String("key", key), zap.Int("size", len(value)), zap.Bool("replaced", replaced))
	db.afterMutation("put", height)

	return nil
}

// Insert adds a new key-value pair. It fails with btree.ErrDuplicateKey if
// the key already exists.
func (db *DB) Insert(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.isClosed {
		return ErrClosed
	}

	height := db.tree.Height()
	if err := db.tree.Insert(key, bytes.Clone(value)); err != nil {
		db.log.Debug("insert rejected", zap.String("key", key), zap.Error(err))
		return err
	}
	db.log.Debug("insert", zap.String("key", key), zap.Int("size", len(value)))
	db.afterMutation("insert", height)

	return nil
}

// Delete deletes a key from the database and reports whether it existed
func (db *DB) Delete(key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.isClosed {
		return false, ErrClosed
	}

	height := db.tree.Height()
	deleted := db.tree.Delete(key)
	db.log.Debug("delete", zap.String("key", key), zap.Bool("deleted", deleted))
	if deleted {
		db.afterMutation("delete", height)
	}

	return deleted, nil
}

// afterMutation logs height changes and, when enabled, validates the tree.
// Callers hold the write lock.
func (db *DB) afterMutation(op string, heightBefore int) {
	if h := db.tree.Height(); h != heightBefore {
		db.log.Info("tree height changed", zap.String("op", op), zap.Int("from", heightBefore), zap.Int("to", h))
	}

	if !db.opts.CheckInvariants {
		return
	}
	if err := db.tree.CheckInvariants(); err != nil {
		db.log.Error("tree invariant violated", zap.String("op", op), zap.Error(err))
	}
}

// Len returns the number of keys
func (db *DB) Len() (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.isClosed {
		return 0, ErrClosed
	}

	return db.tree.Len(), nil
}

// Height returns the height of the underlying tree
func (db *DB) Height() (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.isClosed {
		return 0, ErrClosed
	}

	return db.tree.Height(), nil
}

// Stats returns statistics about the underlying tree
func (db *DB) Stats() (btree.Stats, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.isClosed {
		return btree.Stats{}, ErrClosed
	}

	return db.tree.Stats(), nil
}

// Keys returns all keys in order
func (db *DB) Keys() ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.isClosed {
		return nil, ErrClosed
	}

	return db.tree.Keys(), nil
}

// Check validates the structure of the underlying tree
func (db *DB) Check() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.isClosed {
		return ErrClosed
	}

	return db.tree.CheckInvariants()
}

// Render writes the node structure of the underlying tree to w
func (db *DB) Render(w io.Writer, colorize bool) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.isClosed {
		return ErrClosed
	}

	return db.tree.Render(w, colorize)
}
