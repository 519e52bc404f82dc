package types

import "errors"

// The asset ledger is an external collaborator: the keeper moves value
// through these interfaces and never inspects how balances are kept.
// internal/sqlite provides a simulated implementation for the CLI and
// tests; a production deployment plugs in the real thing.

// FungibleLedger moves divisible assets. Transfer spends from the
// custody account that TransferFrom deposits into.
type FungibleLedger interface {
	// BalanceOf returns the owner's balance of the asset.
	BalanceOf(owner, asset string) (uint64, error)

	// TransferFrom moves amount of asset from owner to to.
	// Returns ErrInsufficientBalance if owner holds less than amount.
	TransferFrom(owner, to, asset string, amount uint64) error

	// Transfer moves amount of asset from the custody account to to.
	Transfer(to, asset string, amount uint64) error
}

// DeedLedger moves single-id non-fungible assets.
type DeedLedger interface {
	// DeedOwner returns the current holder of the deed.
	// Returns ErrNotFound if the deed does not exist.
	DeedOwner(collection, tokenID string) (string, error)

	// TransferDeedFrom moves one deed from owner to to.
	// Returns ErrNotDeedHolder if owner does not hold it.
	TransferDeedFrom(owner, to, collection, tokenID string) error
}

// BundleLedger moves batch non-fungible assets: per-id balances within a
// collection, transferable many ids at a time.
type BundleLedger interface {
	// BalanceOfBatch returns the owner's balance for each id, in order.
	BalanceOfBatch(owner, collection string, ids []string) ([]uint64, error)

	// SafeBatchTransferFrom moves amounts[i] of ids[i] from owner to to.
	// The whole batch fails if any single move would fail.
	SafeBatchTransferFrom(owner, to, collection string, ids []string, amounts []uint64) error
}

// CustodyAccount is the ledger identity that holds snapshotted
// remainders between the first claim of an asset and each successor's
// payout. FungibleLedger.Transfer spends from it.
const CustodyAccount = "custody"

// Ledger bundles the three asset classes one backend serves.
type Ledger interface {
	FungibleLedger
	DeedLedger
	BundleLedger
}

// Ledger operation errors.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotDeedHolder       = errors.New("owner does not hold the deed")
	ErrBatchLengthMismatch = errors.New("ids and amounts must have equal length")
)
