// This file implements the simulated asset ledger over the backend's
// database: fungible balances, single-id deeds, and batch bundles. It
// stands in for the external ledger the keeper would talk to in a real
// deployment, and gives the CLI and tests something to move value on.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// Compile-time interface check: Ledger must implement the full boundary.
var _ types.Ledger = (*Ledger)(nil)

// Ledger is the simulated asset ledger. Beyond the keeper's boundary
// interfaces it carries Mint/Grant helpers for funding accounts.
type Ledger struct {
	backend *Backend
}

// BalanceOf returns the owner's balance of the asset, 0 when no row
// exists.
func (l *Ledger) BalanceOf(owner, asset string) (uint64, error) {
	var amount int64
	err := l.backend.db.QueryRow(
		"SELECT amount FROM balances WHERE owner = ? AND asset = ?",
		owner, asset,
	).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading balance: %w", err)
	}
	return uint64(amount), nil
}

// TransferFrom moves amount of asset from owner to to, atomically.
func (l *Ledger) TransferFrom(owner, to, asset string, amount uint64) error {
	if amount == 0 {
		return nil
	}

	tx, err := l.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transfer: %w", err)
	}
	defer tx.Rollback()

	var have int64
	err = tx.QueryRow(
		"SELECT amount FROM balances WHERE owner = ? AND asset = ?",
		owner, asset,
	).Scan(&have)
	if err == sql.ErrNoRows || (err == nil && uint64(have) < amount) {
		return types.ErrInsufficientBalance
	}
	if err != nil {
		return fmt.Errorf("reading balance: %w", err)
	}

	if _, err := tx.Exec(
		"UPDATE balances SET amount = amount - ? WHERE owner = ? AND asset = ?",
		int64(amount), owner, asset,
	); err != nil {
		return fmt.Errorf("debiting %s: %w", owner, err)
	}
	if err := creditTx(tx, to, asset, amount); err != nil {
		return err
	}
	return tx.Commit()
}

// Transfer moves amount of asset from the custody account to to.
func (l *Ledger) Transfer(to, asset string, amount uint64) error {
	return l.TransferFrom(types.CustodyAccount, to, asset, amount)
}

// Mint credits amount of asset to owner out of nothing. CLI and test
// funding helper; not part of the keeper's ledger boundary.
func (l *Ledger) Mint(owner, asset string, amount uint64) error {
	tx, err := l.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning mint: %w", err)
	}
	defer tx.Rollback()

	if err := creditTx(tx, owner, asset, amount); err != nil {
		return err
	}
	return tx.Commit()
}

// DeedOwner returns the current holder of a deed.
func (l *Ledger) DeedOwner(collection, tokenID string) (string, error) {
	var owner string
	err := l.backend.db.QueryRow(
		"SELECT owner FROM deeds WHERE collection = ? AND token_id = ?",
		collection, tokenID,
	).Scan(&owner)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading deed: %w", err)
	}
	return owner, nil
}

// TransferDeedFrom moves one deed from owner to to.
func (l *Ledger) TransferDeedFrom(owner, to, collection, tokenID string) error {
	result, err := l.backend.db.Exec(
		"UPDATE deeds SET owner = ? WHERE collection = ? AND token_id = ? AND owner = ?",
		to, collection, tokenID, owner,
	)
	if err != nil {
		return fmt.Errorf("transferring deed: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("transferring deed: %w", err)
	}
	if n == 0 {
		return types.ErrNotDeedHolder
	}
	return nil
}

// GrantDeed assigns a deed to owner, creating it if needed. CLI and test
// funding helper.
func (l *Ledger) GrantDeed(owner, collection, tokenID string) error {
	_, err := l.backend.db.Exec(
		"INSERT INTO deeds (collection, token_id, owner) VALUES (?, ?, ?) ON CONFLICT(collection, token_id) DO UPDATE SET owner = excluded.owner",
		collection, tokenID, owner,
	)
	if err != nil {
		return fmt.Errorf("granting deed: %w", err)
	}
	return nil
}

// BalanceOfBatch returns the owner's balance for each bundle id, in the
// order requested. Missing rows read as 0.
func (l *Ledger) BalanceOfBatch(owner, collection string, ids []string) ([]uint64, error) {
	amounts := make([]uint64, len(ids))
	for i, id := range ids {
		var amount int64
		err := l.backend.db.QueryRow(
			"SELECT amount FROM bundles WHERE owner = ? AND collection = ? AND token_id = ?",
			owner, collection, id,
		).Scan(&amount)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading bundle balance: %w", err)
		}
		amounts[i] = uint64(amount)
	}
	return amounts, nil
}

// SafeBatchTransferFrom moves amounts[i] of ids[i] from owner to to. The
// whole batch commits or none of it does.
func (l *Ledger) SafeBatchTransferFrom(owner, to, collection string, ids []string, amounts []uint64) error {
	if len(ids) != len(amounts) {
		return types.ErrBatchLengthMismatch
	}

	tx, err := l.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch transfer: %w", err)
	}
	defer tx.Rollback()

	for i, id := range ids {
		if amounts[i] == 0 {
			continue
		}
		var have int64
		err := tx.QueryRow(
			"SELECT amount FROM bundles WHERE owner = ? AND collection = ? AND token_id = ?",
			owner, collection, id,
		).Scan(&have)
		if err == sql.ErrNoRows || (err == nil && uint64(have) < amounts[i]) {
			return types.ErrInsufficientBalance
		}
		if err != nil {
			return fmt.Errorf("reading bundle balance: %w", err)
		}

		if _, err := tx.Exec(
			"UPDATE bundles SET amount = amount - ? WHERE owner = ? AND collection = ? AND token_id = ?",
			int64(amounts[i]), owner, collection, id,
		); err != nil {
			return fmt.Errorf("debiting bundle: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO bundles (owner, collection, token_id, amount) VALUES (?, ?, ?, ?) ON CONFLICT(owner, collection, token_id) DO UPDATE SET amount = amount + excluded.amount",
			to, collection, id, int64(amounts[i]),
		); err != nil {
			return fmt.Errorf("crediting bundle: %w", err)
		}
	}
	return tx.Commit()
}

// MintBundle credits amount of a bundle id to owner. CLI and test
// funding helper.
func (l *Ledger) MintBundle(owner, collection, tokenID string, amount uint64) error {
	_, err := l.backend.db.Exec(
		"INSERT INTO bundles (owner, collection, token_id, amount) VALUES (?, ?, ?, ?) ON CONFLICT(owner, collection, token_id) DO UPDATE SET amount = amount + excluded.amount",
		owner, collection, tokenID, int64(amount),
	)
	if err != nil {
		return fmt.Errorf("minting bundle: %w", err)
	}
	return nil
}

// creditTx adds amount of asset to owner within tx.
func creditTx(tx *sql.Tx, owner, asset string, amount uint64) error {
	if _, err := tx.Exec(
		"INSERT INTO balances (owner, asset, amount) VALUES (?, ?, ?) ON CONFLICT(owner, asset) DO UPDATE SET amount = amount + excluded.amount",
		owner, asset, int64(amount),
	); err != nil {
		return fmt.Errorf("crediting %s: %w", owner, err)
	}
	return nil
}
