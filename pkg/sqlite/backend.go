// Package sqlite exposes the SQLite record store to programs outside this
// module while keeping its implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/darzi/internal/sqlite"
	"github.com/mesh-intelligence/darzi/pkg/types"
)

// NewStore creates a closed SQLite record store. Call Open to use it.
//
// Example:
//
//	store := sqlite.NewStore()
//	err := store.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".darzi-db",
//	})
//	defer store.Close()
func NewStore() types.Store {
	return sqlite.NewBackend()
}
