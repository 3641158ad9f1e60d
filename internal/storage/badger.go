// Package storage provides the concrete executors the quadruple core
// can be wired to: an embedded key-value backend on BadgerDB and a SQL
// backend on SQLite.
package storage

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/aleksaelezovic/quadstore/internal/encoding"
	"github.com/aleksaelezovic/quadstore/pkg/quad"
)

// BadgerExecutor implements quad.Executor on BadgerDB. Rows live in a
// single table keyed by the big-endian quadruple id; predicate
// conjunctions are evaluated by scanning and filtering decoded rows.
// Every executor call runs inside one badger transaction, so a failed
// call leaves the stored set untouched.
type BadgerExecutor struct {
	db *badger.DB
}

// NewBadgerExecutor opens a BadgerDB-backed executor at path.
func NewBadgerExecutor(path string) (*BadgerExecutor, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable default logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	return &BadgerExecutor{db: db}, nil
}

// Close closes the underlying database.
func (e *BadgerExecutor) Close() error {
	return e.db.Close()
}

// Sync flushes writes to disk.
func (e *BadgerExecutor) Sync() error {
	return e.db.Sync()
}

// InsertIfAbsent stores the row unless its id is already present.
func (e *BadgerExecutor) InsertIfAbsent(row quad.Row) (bool, error) {
	inserted := false
	err := e.db.Update(func(txn *badger.Txn) error {
		var err error
		inserted, err = insertIfAbsent(txn, row)
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// InsertBatchIfAbsent stores all absent rows in one transaction.
func (e *BadgerExecutor) InsertBatchIfAbsent(rows []quad.Row) (int, error) {
	added := 0
	err := e.db.Update(func(txn *badger.Txn) error {
		added = 0
		for _, row := range rows {
			inserted, err := insertIfAbsent(txn, row)
			if err != nil {
				return err
			}
			if inserted {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func insertIfAbsent(txn *badger.Txn, row quad.Row) (bool, error) {
	key := encoding.EncodeID(row.ID)
	_, err := txn.Get(key)
	if err == nil {
		return false, nil
	}
	if err != badger.ErrKeyNotFound {
		return false, err
	}
	if err := txn.Set(key, encoding.EncodeRow(row)); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByID removes the row with the given id, if present.
func (e *BadgerExecutor) DeleteByID(id quad.ID) error {
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(encoding.EncodeID(id))
	})
}

// DeleteWhere removes every row matching the conjunction.
func (e *BadgerExecutor) DeleteWhere(lookup quad.Lookup) (int64, error) {
	var removed int64
	err := e.db.Update(func(txn *badger.Txn) error {
		removed = 0

		// Collect matches first; deleting under an open iterator is
		// not supported by badger.
		var keys [][]byte
		err := scanRows(txn, func(key []byte, row quad.Row) error {
			if lookup.Matches(row) {
				k := make([]byte, len(key))
				copy(k, key)
				keys = append(keys, k)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// DeleteAll removes every stored row.
func (e *BadgerExecutor) DeleteAll() error {
	return e.db.DropAll()
}

// ExistsByID reports whether a row with the given id is stored.
func (e *BadgerExecutor) ExistsByID(id quad.ID) (bool, error) {
	exists := false
	err := e.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(encoding.EncodeID(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// SelectWhere streams every row matching the conjunction. The whole
// result is materialized inside one read transaction so the stream
// observes a consistent snapshot.
func (e *BadgerExecutor) SelectWhere(lookup quad.Lookup) (quad.Rows, error) {
	var matched []quad.Row
	err := e.db.View(func(txn *badger.Txn) error {
		return scanRows(txn, func(_ []byte, row quad.Row) error {
			if lookup.Matches(row) {
				matched = append(matched, row)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &sliceRows{rows: matched}, nil
}

// scanRows walks every stored row, decoding each and handing it to fn.
func scanRows(txn *badger.Txn, fn func(key []byte, row quad.Row) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		id, err := encoding.DecodeID(item.Key())
		if err != nil {
			return err
		}

		var row quad.Row
		err = item.Value(func(val []byte) error {
			row, err = encoding.DecodeRow(id, val)
			return err
		})
		if err != nil {
			return err
		}

		if err := fn(item.Key(), row); err != nil {
			return err
		}
	}
	return nil
}

// sliceRows adapts a materialized result set to the quad.Rows stream.
type sliceRows struct {
	rows []quad.Row
	pos  int
}

func (r *sliceRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *sliceRows) Row() (quad.Row, error) {
	if r.pos == 0 || r.pos > len(r.rows) {
		return quad.Row{}, fmt.Errorf("no current row")
	}
	return r.rows[r.pos-1], nil
}

// Err is always nil: the result set is fully materialized before the
// stream is handed out, so there is no mid-stream failure to report.
func (r *sliceRows) Err() error {
	return nil
}

func (r *sliceRows) Close() error {
	return nil
}
