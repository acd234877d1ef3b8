// Package storage provides the storage interface and implementations.
package storage

import (
	"github.com/mandalnilabja/authdash/internal/storage/sqlite"
)

// Re-export errors from sqlite package
var (
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// Storage defines the interface for durable key-value storage.
// Entries are grouped by namespace so unrelated data can share one file.
type Storage interface {
	GetValue(namespace, key string) (string, bool, error)
	SetValues(namespace string, values map[string]string) error
	DeleteValues(namespace string, keys ...string) error
	ClearNamespace(namespace string) (int64, error)

	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
// This is the main factory function for creating storage
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}
