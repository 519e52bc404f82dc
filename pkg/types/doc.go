// Package types defines the custody entities (Property, SuccessorSet,
// VoteTally, Event), the Vault and Table storage interfaces, the asset
// ledger boundary interfaces, and the standard error types for the
// Heirloom succession system.
package types
