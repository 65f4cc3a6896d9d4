package store

import "github.com/i474232898/api-dashboard/internal/dashboard"

// Store is a closable settings store.
type Store interface {
	dashboard.KeyStore
	Close() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Open returns a SQLite store in dataDir, or an in-memory store when dataDir is empty.
func Open(dataDir string) (Store, error) {
	if dataDir == "" {
		return NewMemoryStore(), nil
	}
	return OpenSQLite(dataDir)
}
