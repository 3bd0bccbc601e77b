// Package store persists an ordered collection of JSON records in a single
// file. One Table owns one file; the file holds one JSON array and is the
// whole table. Writes replace the file atomically via rename, so readers
// observe either the previous complete state or the new one, never a
// partial write.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Table is a file-backed collection of records of type T. All operations
// serialize on an internal mutex, so concurrent read-modify-write cycles
// through Update cannot lose each other's changes.
type Table[T any] struct {
	path    string
	mu      sync.Mutex
	lenient bool
}

// Open binds a table to path, creating the parent directory and an empty
// file if they do not exist yet.
func Open[T any](path string) (*Table[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("touch file: %w", err)
	}
	_ = f.Close()
	return &Table[T]{path: path, lenient: true}, nil
}

// SetLenient controls what happens when the file content cannot be parsed.
// In lenient mode (the default) Load recovers to an empty collection, which
// keeps the service available but means the next Save overwrites whatever
// was there. With lenient off the decode error is returned instead.
func (t *Table[T]) SetLenient(v bool) { t.lenient = v }

// Load returns all records in file order. A missing or empty file yields
// an empty slice and no error.
func (t *Table[T]) Load() ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadUnlocked()
}

// Save replaces the whole collection.
func (t *Table[T]) Save(records []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveUnlocked(records)
}

// Update runs fn on the current collection and persists its result, all
// under the table lock. fn must not retain the input slice.
func (t *Table[T]) Update(fn func([]T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	records, err := t.loadUnlocked()
	if err != nil {
		return err
	}
	out, err := fn(records)
	if err != nil {
		return err
	}
	return t.saveUnlocked(out)
}

func (t *Table[T]) loadUnlocked() ([]T, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		if t.lenient {
			// malformed content -> start fresh
			return []T{}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", t.path, err)
	}
	return records, nil
}

func (t *Table[T]) saveUnlocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.path, err)
	}
	tmp := t.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", t.path, err)
	}
	return nil
}

// Path returns the file backing this table.
func (t *Table[T]) Path() string { return t.path }
