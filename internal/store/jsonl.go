package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// JSONL is a Store backed by an append-only JSONL file. Each line is one
// JSON-serialized EventRecord. The file and its directory are created on the
// first Append; nothing touches the filesystem before that.
//
// Appends from separate processes are safe without locking: the file is
// opened with O_APPEND and each record goes out in a single write, so the
// kernel places every line after the existing content. Readers never lock
// either and simply drop a torn last line.
type JSONL struct {
	path string

	// Logger, when set, receives a line for every record ReadAll skips.
	Logger *log.Logger
}

// NewJSONL returns a store for the log file at path.
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path}
}

// Path returns the log file location.
func (j *JSONL) Path() string {
	return j.path
}

// Append serializes record as a JSON line, appends it to the file and syncs.
func (j *JSONL) Append(record EventRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("store: %w: %w", ErrSerialization, err)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("store: %w: %w", ErrSerialization, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: %w: mkdir %q: %w", ErrStorageUnavailable, dir, err)
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("store: %w: open %q: %w", ErrStorageUnavailable, j.path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("store: %w: write %q: %w", ErrStorageUnavailable, j.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("store: %w: sync %q: %w", ErrStorageUnavailable, j.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("store: %w: close %q: %w", ErrStorageUnavailable, j.path, err)
	}
	return nil
}

// ReadAll returns every parseable record in file order. A missing file is
// an empty log, not an error. Malformed lines are skipped.
func (j *JSONL) ReadAll() ([]EventRecord, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: %w: open %q: %w", ErrStorageUnavailable, j.path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := ParseRecords(f, j.Logger)
	if err != nil {
		return nil, fmt.Errorf("store: %w: read %q: %w", ErrStorageUnavailable, j.path, err)
	}
	return records, nil
}
