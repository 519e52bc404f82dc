// Package sqlite provides the public API for the SQLite Vault backend.
// This package exposes the factory functions while keeping implementation
// details internal.
package sqlite

import (
	"github.com/mesh-intelligence/heirloom/internal/sqlite"
	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".heirloom-db",
//	})
//	defer backend.Detach()
func NewBackend() types.Vault {
	return sqlite.NewBackend()
}

// NewLedger returns the simulated asset ledger stored alongside the
// backend's custody records. The backend must be attached.
func NewLedger(v types.Vault) (types.Ledger, error) {
	b, ok := v.(*sqlite.Backend)
	if !ok {
		return nil, types.ErrBackendUnknown
	}
	l, err := b.Ledger()
	if err != nil {
		return nil, err
	}
	return l, nil
}
