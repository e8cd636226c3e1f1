// Package magiccache is an optional, explicitly-opened disk cache of magic
// bitboard numbers, so a process that has already paid for the magic
// search once does not repeat it on every restart. internal/board does
// not import this package: BuildMagicTables searches in memory unless a
// caller wires this cache in through board.SetMagicCacheHooks.
package magiccache

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// Entry is one discovered magic number, keyed by the square/piece-kind/seed
// triple that produced it.
type Entry struct {
	Magic uint64
	Shift uint8
}

// Cache wraps a Badger database of Entry values.
type Cache struct {
	db *badger.DB
}

// Open opens (creating if necessary) a magic-number cache at dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("magiccache: open %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// key derives the cache key for a (square, isRook, seed) triple by hashing
// the triple with xxhash, avoiding a string-formatting allocation on the
// hot path of a cold-cache fill.
func key(square int, isRook bool, seed uint64) []byte {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(square))
	if isRook {
		buf[8] = 1
	}
	binary.LittleEndian.PutUint64(buf[9:17], seed)

	h := xxhash.Sum64(buf[:])
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], h)
	return out[:]
}

// Get looks up a previously cached magic number. The second return value
// is false on a cache miss.
func (c *Cache) Get(square int, isRook bool, seed uint64) (Entry, bool, error) {
	var entry Entry
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(square, isRook, seed))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 9 {
				return fmt.Errorf("magiccache: corrupt entry (%d bytes)", len(val))
			}
			entry.Magic = binary.LittleEndian.Uint64(val[0:8])
			entry.Shift = val[8]
			found = true
			return nil
		})
	})

	return entry, found, err
}

// Put stores a discovered magic number.
func (c *Cache) Put(square int, isRook bool, seed uint64, entry Entry) error {
	var val [9]byte
	binary.LittleEndian.PutUint64(val[0:8], entry.Magic)
	val[8] = entry.Shift

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(square, isRook, seed), val[:])
	})
}
