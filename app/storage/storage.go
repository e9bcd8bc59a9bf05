// Package storage holds the scratch document between fetch and parse.
package storage

import (
	"errors"
)

var ErrNotFound = errors.New("scratch entry not found")

// Storage is a byte-stream store of named entries. The display loop uses a
// single entry, overwritten on every fetch.
type Storage interface {
	Write(name string, data []byte) error
	Read(name string) ([]byte, error)
	// Stat returns the stored size of name, or ErrNotFound.
	Stat(name string) (int64, error)
	// Remove deletes name. Removing a missing entry is not an error.
	Remove(name string) error
	Close() error
}
