// This file implements the rates table accessor for the SQLite backend:
// the frozen per-share-unit distribution rates, keyed owner/asset.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// Compile-time interface check: ratesTable must implement Table.
var _ types.Table = (*ratesTable)(nil)

type ratesTable struct {
	backend *Backend
}

// Get retrieves a rate by its composite owner/asset key.
func (rt *ratesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := rt.backend.db.QueryRow(
		"SELECT owner, asset, amount_per_share, snapshot_at FROM rates WHERE rate_id = ?",
		id,
	)
	rate, err := scanRate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting rate %s: %w", id, err)
	}
	return rate, nil
}

// Set persists a rate row. Rates are written once per (owner, asset)
// pair and never updated afterwards; the INSERT OR IGNORE keeps an
// accidental second snapshot from moving a frozen rate.
func (rt *ratesTable) Set(id string, data any) (string, error) {
	rate, ok := data.(*types.DistributionRate)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = types.RateKey(rate.Owner, rate.Asset)
	}

	snapshotStr := rate.SnapshotAt.UTC().Format(time.RFC3339Nano)
	_, err := rt.backend.db.Exec(
		"INSERT OR IGNORE INTO rates (rate_id, owner, asset, amount_per_share, snapshot_at) VALUES (?, ?, ?, ?, ?)",
		id, rate.Owner, rate.Asset, int64(rate.AmountPerShare), snapshotStr,
	)
	if err != nil {
		return "", fmt.Errorf("persisting rate: %w", err)
	}
	return id, nil
}

// Delete removes a rate row. Only exercised by tests; the engine never
// deletes a snapshot.
func (rt *ratesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	result, err := rt.backend.db.Exec("DELETE FROM rates WHERE rate_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting rate %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting rate %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all rates matching the filter. Supported filter keys:
// "owner", "asset".
func (rt *ratesTable) Fetch(filter map[string]any) ([]any, error) {
	query := "SELECT owner, asset, amount_per_share, snapshot_at FROM rates"
	where, args := buildWhere(filter, "owner", "asset")
	query += where + " ORDER BY rate_id"

	rows, err := rt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("fetching rates: %w", err)
		}
		results = append(results, rate)
	}
	return results, rows.Err()
}

func scanRate(s rowScanner) (*types.DistributionRate, error) {
	var rate types.DistributionRate
	var amount int64
	var snapshotStr string

	if err := s.Scan(&rate.Owner, &rate.Asset, &amount, &snapshotStr); err != nil {
		return nil, err
	}
	rate.AmountPerShare = uint64(amount)

	var err error
	if rate.SnapshotAt, err = time.Parse(time.RFC3339Nano, snapshotStr); err != nil {
		return nil, fmt.Errorf("parsing snapshot_at: %w", err)
	}
	return &rate, nil
}
