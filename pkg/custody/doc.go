// Package custody implements the Keeper: every owner, guardian, and
// successor operation over the property lifecycle, plus the pro-rata,
// fee-adjusted, idempotent withdrawal engine. Records live behind the
// types.Vault interface; asset movement goes through the types ledger
// interfaces. All operations are serialized behind one mutex and either
// fully commit or leave no trace.
package custody
