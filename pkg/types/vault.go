package types

import "errors"

// Vault defines the interface for backend-agnostic storage access.
// Callers attach to a backend, access tables by name, and detach when done.
type Vault interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Vault to the backend described by config.
	// Creates the DataDir if it does not exist. Idempotent on first call;
	// returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, table operations return ErrVaultDetached.
	Detach() error
}

// Vault lifecycle errors.
var (
	ErrVaultDetached   = errors.New("vault is detached")
	ErrAlreadyAttached = errors.New("vault is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
