package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// Key layout: "perft/" + xxhash64(FEN) big-endian + depth byte.
const keyPrefix = "perft/"

// PerftEntry is a stored perft result. Divide holds per-move counts in long
// algebraic notation when the result came from a divide run.
type PerftEntry struct {
	FEN      string            `json:"fen"`
	Depth    int               `json:"depth"`
	Nodes    uint64            `json:"nodes"`
	Divide   map[string]uint64 `json:"divide,omitempty"`
	Elapsed  time.Duration     `json:"elapsed"`
	Recorded time.Time         `json:"recorded"`
}

// PerftStore wraps BadgerDB to cache perft node counts by position and depth.
type PerftStore struct {
	db *badger.DB
}

// Open opens or creates a perft store in dir.
func Open(dir string) (*PerftStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*PerftStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

// OpenDefault opens the store in PerftCacheDir.
func OpenDefault() (*PerftStore, error) {
	dir, err := PerftCacheDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

func open(opts badger.Options) (*PerftStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open perft store: %w", err)
	}
	return &PerftStore{db: db}, nil
}

// Close closes the database
func (s *PerftStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(fen string, depth int) []byte {
	key := make([]byte, 0, len(keyPrefix)+9)
	key = append(key, keyPrefix...)
	key = binary.BigEndian.AppendUint64(key, xxhash.Sum64String(fen))
	return append(key, byte(depth))
}

// Get returns the stored result for fen at depth. A hash collision with a
// different position reads as a miss.
func (s *PerftStore) Get(fen string, depth int) (*PerftEntry, bool, error) {
	var entry *PerftEntry

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(fen, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			var e PerftEntry
			if err := json.Unmarshal(val, &e); err != nil {
				return err
			}
			if e.FEN == fen && e.Depth == depth {
				entry = &e
			}
			return nil
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("read perft %d: %w", depth, err)
	}

	return entry, entry != nil, nil
}

// Put stores e, replacing any earlier result for the same position and depth.
// A zero Recorded time is set to now.
func (s *PerftStore) Put(e *PerftEntry) error {
	if e.Depth < 0 || e.Depth > 255 {
		return fmt.Errorf("perft depth %d out of range", e.Depth)
	}
	if e.Recorded.IsZero() {
		e.Recorded = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(e.FEN, e.Depth), data)
	})
}

// Delete removes the result for fen at depth, if any.
func (s *PerftStore) Delete(fen string, depth int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(perftKey(fen, depth))
	})
}

// Len returns the number of stored results.
func (s *PerftStore) Len() (int, error) {
	n := 0
	prefix := []byte(keyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})

	return n, err
}
