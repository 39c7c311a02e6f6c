// Package store persists query events to an append-only JSONL log and reads
// them back for the history and statistics views. One store instance is
// created per pplx invocation in cmd/pplx and pointed at a single file;
// several invocations may append to that file at the same time.
package store

import "errors"

var (
	// ErrStorageUnavailable is returned when the log directory or file
	// cannot be created, opened, read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSerialization is returned when a record cannot be encoded as a
	// log line. Nothing is written in that case.
	ErrSerialization = errors.New("record serialization failed")
)

// Writer persists query events to durable storage.
type Writer interface {
	Append(record EventRecord) error
}

// Reader retrieves every recoverable event in append order.
type Reader interface {
	ReadAll() ([]EventRecord, error)
}

// Store combines Writer and Reader over one log location.
type Store interface {
	Writer
	Reader
}
