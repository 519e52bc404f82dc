// This file implements the settings table accessor for the SQLite
// backend: the key/value rows of the administrative surface.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// Compile-time interface check: settingsTable must implement Table.
var _ types.Table = (*settingsTable)(nil)

type settingsTable struct {
	backend *Backend
}

// Get retrieves a setting by key.
func (st *settingsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := st.backend.db.QueryRow(
		"SELECT key, value, updated_at FROM settings WHERE key = ?",
		id,
	)
	setting, err := scanSetting(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting setting %s: %w", id, err)
	}
	return setting, nil
}

// Set upserts a setting under its key.
func (st *settingsTable) Set(id string, data any) (string, error) {
	setting, ok := data.(*types.Setting)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = setting.Key
	}
	if id == "" {
		return "", types.ErrInvalidID
	}
	setting.Key = id
	if setting.UpdatedAt.IsZero() {
		setting.UpdatedAt = time.Now().UTC()
	}

	updatedStr := setting.UpdatedAt.UTC().Format(time.RFC3339Nano)
	_, err := st.backend.db.Exec(
		"INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		id, setting.Value, updatedStr,
	)
	if err != nil {
		return "", fmt.Errorf("persisting setting: %w", err)
	}
	return id, nil
}

// Delete removes a setting by key.
func (st *settingsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	result, err := st.backend.db.Exec("DELETE FROM settings WHERE key = ?", id)
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all settings matching the filter. Supported filter key:
// "key".
func (st *settingsTable) Fetch(filter map[string]any) ([]any, error) {
	query := "SELECT key, value, updated_at FROM settings"
	where, args := buildWhere(filter, "key")
	query += where + " ORDER BY key"

	rows, err := st.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("fetching settings: %w", err)
		}
		results = append(results, setting)
	}
	return results, rows.Err()
}

func scanSetting(s rowScanner) (*types.Setting, error) {
	var setting types.Setting
	var updatedStr string

	if err := s.Scan(&setting.Key, &setting.Value, &updatedStr); err != nil {
		return nil, err
	}

	var err error
	if setting.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &setting, nil
}
