// This file implements the properties table accessor for the SQLite
// backend. The successor registry and the vote tally are stored as JSON
// columns; the bitset serializes through its own MarshalJSON.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// Compile-time interface check: propertiesTable must implement Table.
var _ types.Table = (*propertiesTable)(nil)

// propertiesTable implements the Table interface for the Property entity.
// The row key is the owner address; Set with an empty id falls back to
// the record's owner because a property can never exist without one.
type propertiesTable struct {
	backend *Backend
}

// Get retrieves a property by owner address.
func (pt *propertiesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := pt.backend.db.QueryRow(
		"SELECT owner, expiration_time, successors, tally, created_at, updated_at FROM properties WHERE owner = ?",
		id,
	)
	prop, err := hydrateProperty(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting property %s: %w", id, err)
	}
	return prop, nil
}

// Set persists a property under its owner key, inserting or updating as
// needed. The id must equal the record's owner.
func (pt *propertiesTable) Set(id string, data any) (string, error) {
	prop, ok := data.(*types.Property)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = prop.Owner
	}
	if id == "" || id != prop.Owner {
		return "", types.ErrInvalidID
	}

	successorsJSON, err := json.Marshal(prop.Successors)
	if err != nil {
		return "", fmt.Errorf("encoding successors: %w", err)
	}
	tallyJSON, err := json.Marshal(prop.Tally)
	if err != nil {
		return "", fmt.Errorf("encoding tally: %w", err)
	}

	var exists bool
	err = pt.backend.db.QueryRow(
		"SELECT 1 FROM properties WHERE owner = ?", id,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking property existence: %w", err)
	}

	expirationStr := prop.ExpirationTime.UTC().Format(time.RFC3339Nano)
	createdAtStr := prop.CreatedAt.UTC().Format(time.RFC3339Nano)
	updatedAtStr := prop.UpdatedAt.UTC().Format(time.RFC3339Nano)

	if exists {
		_, err = pt.backend.db.Exec(
			"UPDATE properties SET expiration_time = ?, successors = ?, tally = ?, created_at = ?, updated_at = ? WHERE owner = ?",
			expirationStr, string(successorsJSON), string(tallyJSON), createdAtStr, updatedAtStr, id,
		)
	} else {
		_, err = pt.backend.db.Exec(
			"INSERT INTO properties (owner, expiration_time, successors, tally, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, expirationStr, string(successorsJSON), string(tallyJSON), createdAtStr, updatedAtStr,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting property: %w", err)
	}
	return id, nil
}

// Delete removes a property row by owner address.
func (pt *propertiesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	result, err := pt.backend.db.Exec("DELETE FROM properties WHERE owner = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting property %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all properties matching the filter. Supported filter
// key: "owner". An empty filter returns every property.
func (pt *propertiesTable) Fetch(filter map[string]any) ([]any, error) {
	query := "SELECT owner, expiration_time, successors, tally, created_at, updated_at FROM properties"
	args := []any{}
	if owner, ok := filter["owner"]; ok {
		query += " WHERE owner = ?"
		args = append(args, owner)
	}
	query += " ORDER BY owner"

	rows, err := pt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching properties: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		prop, err := hydratePropertyFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("fetching properties: %w", err)
		}
		results = append(results, prop)
	}
	return results, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for hydration.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(s rowScanner) (*types.Property, error) {
	var prop types.Property
	var expirationStr, successorsJSON, tallyJSON, createdAtStr, updatedAtStr string

	if err := s.Scan(&prop.Owner, &expirationStr, &successorsJSON, &tallyJSON, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}

	var err error
	if prop.ExpirationTime, err = time.Parse(time.RFC3339Nano, expirationStr); err != nil {
		return nil, fmt.Errorf("parsing expiration_time: %w", err)
	}
	if prop.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if prop.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(successorsJSON), &prop.Successors); err != nil {
		return nil, fmt.Errorf("decoding successors: %w", err)
	}
	if err := json.Unmarshal([]byte(tallyJSON), &prop.Tally); err != nil {
		return nil, fmt.Errorf("decoding tally: %w", err)
	}
	return &prop, nil
}

func hydrateProperty(row *sql.Row) (*types.Property, error) {
	return scanProperty(row)
}

func hydratePropertyFromRows(rows *sql.Rows) (*types.Property, error) {
	return scanProperty(rows)
}
