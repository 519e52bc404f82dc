package types

import "errors"

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity
// struct. Composite keys (rates, withdrawal marks) are slash-joined.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table.
	Fetch(filter map[string]any) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)

// Keeper operation errors.
var (
	ErrWrongState       = errors.New("operation illegal in current state")
	ErrPropertyExists   = errors.New("property already exists")
	ErrQuorumBounds     = errors.New("quorum must be positive and at most the guardian count")
	ErrTooManyGuardians = errors.New("too many guardians")
	ErrNoAssets         = errors.New("no assets requested")
	ErrTooManyAssets    = errors.New("too many assets in one call")
	ErrNotGuardian      = errors.New("caller holds no guardian slot")
	ErrNotSuccessor     = errors.New("caller holds no share")
	ErrNotHeir          = errors.New("caller is not the designated heir")
	ErrNotAdmin         = errors.New("caller is not the administrator")
)
