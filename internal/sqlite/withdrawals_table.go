// This file implements the withdrawals table accessor for the SQLite
// backend: the one-shot replay marks, keyed owner/successor/asset.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// Compile-time interface check: withdrawalsTable must implement Table.
var _ types.Table = (*withdrawalsTable)(nil)

type withdrawalsTable struct {
	backend *Backend
}

// Get retrieves a withdrawal mark by its composite key. The engine only
// cares whether the row exists.
func (wt *withdrawalsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := wt.backend.db.QueryRow(
		"SELECT owner, successor, asset, created_at FROM withdrawals WHERE mark_id = ?",
		id,
	)
	mark, err := scanMark(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting withdrawal mark %s: %w", id, err)
	}
	return mark, nil
}

// Set persists a withdrawal mark. Marks are one-shot: re-inserting an
// existing key is ignored rather than an error.
func (wt *withdrawalsTable) Set(id string, data any) (string, error) {
	mark, ok := data.(*types.WithdrawalMark)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = types.WithdrawalKey(mark.Owner, mark.Successor, mark.Asset)
	}

	createdStr := mark.CreatedAt.UTC().Format(time.RFC3339Nano)
	_, err := wt.backend.db.Exec(
		"INSERT OR IGNORE INTO withdrawals (mark_id, owner, successor, asset, created_at) VALUES (?, ?, ?, ?, ?)",
		id, mark.Owner, mark.Successor, mark.Asset, createdStr,
	)
	if err != nil {
		return "", fmt.Errorf("persisting withdrawal mark: %w", err)
	}
	return id, nil
}

// Delete removes a withdrawal mark. Only exercised by tests; claims are
// never handed back.
func (wt *withdrawalsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	result, err := wt.backend.db.Exec("DELETE FROM withdrawals WHERE mark_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting withdrawal mark %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting withdrawal mark %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all marks matching the filter. Supported filter keys:
// "owner", "successor", "asset".
func (wt *withdrawalsTable) Fetch(filter map[string]any) ([]any, error) {
	query := "SELECT owner, successor, asset, created_at FROM withdrawals"
	where, args := buildWhere(filter, "owner", "successor", "asset")
	query += where + " ORDER BY mark_id"

	rows, err := wt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching withdrawal marks: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		mark, err := scanMark(rows)
		if err != nil {
			return nil, fmt.Errorf("fetching withdrawal marks: %w", err)
		}
		results = append(results, mark)
	}
	return results, rows.Err()
}

func scanMark(s rowScanner) (*types.WithdrawalMark, error) {
	var mark types.WithdrawalMark
	var createdStr string

	if err := s.Scan(&mark.Owner, &mark.Successor, &mark.Asset, &createdStr); err != nil {
		return nil, err
	}

	var err error
	if mark.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &mark, nil
}
