// Package sqlite implements the SQLite Vault backend for the Heirloom
// custody records and the simulated asset ledger.
package sqlite

// Schema DDL for all tables. The database is the store of record, so
// every statement is IF NOT EXISTS and Attach never recreates the file.
const (
	createProperties = `CREATE TABLE IF NOT EXISTS properties (
    owner TEXT PRIMARY KEY,
    expiration_time TEXT NOT NULL,
    successors TEXT NOT NULL,
    tally TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRates = `CREATE TABLE IF NOT EXISTS rates (
    rate_id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    asset TEXT NOT NULL,
    amount_per_share INTEGER NOT NULL,
    snapshot_at TEXT NOT NULL
);`

	createWithdrawals = `CREATE TABLE IF NOT EXISTS withdrawals (
    mark_id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    successor TEXT NOT NULL,
    asset TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createEvents = `CREATE TABLE IF NOT EXISTS events (
    event_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    owner TEXT NOT NULL,
    actor TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	// Simulated ledger tables.
	createBalances = `CREATE TABLE IF NOT EXISTS balances (
    owner TEXT NOT NULL,
    asset TEXT NOT NULL,
    amount INTEGER NOT NULL,
    PRIMARY KEY (owner, asset)
);`

	createDeeds = `CREATE TABLE IF NOT EXISTS deeds (
    collection TEXT NOT NULL,
    token_id TEXT NOT NULL,
    owner TEXT NOT NULL,
    PRIMARY KEY (collection, token_id)
);`

	createBundles = `CREATE TABLE IF NOT EXISTS bundles (
    owner TEXT NOT NULL,
    collection TEXT NOT NULL,
    token_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    PRIMARY KEY (owner, collection, token_id)
);`
)

// schemaDDL lists every statement Attach executes, in order.
var schemaDDL = []string{
	createProperties,
	createRates,
	createWithdrawals,
	createEvents,
	createSettings,
	createBalances,
	createDeeds,
	createBundles,
}
