package types

import "time"

// DistributionRate is the frozen per-share-unit payout for one
// (owner, asset) pair, snapshotted by whichever successor withdraws
// first. A rate of 0 means no snapshot was ever taken for the pair.
type DistributionRate struct {
	Owner          string    `json:"owner"`
	Asset          string    `json:"asset"`
	AmountPerShare uint64    `json:"amount_per_share"`
	SnapshotAt     time.Time `json:"snapshot_at"`
}

// RateKey builds the composite table key for a rate row.
func RateKey(owner, asset string) string {
	return owner + "/" + asset
}

// WithdrawalMark is the one-shot replay flag for one
// (owner, successor, asset) triple. Its presence means the successor's
// claim for that asset is spent, whether or not value moved.
type WithdrawalMark struct {
	Owner     string    `json:"owner"`
	Successor string    `json:"successor"`
	Asset     string    `json:"asset"`
	CreatedAt time.Time `json:"created_at"`
}

// WithdrawalKey builds the composite table key for a withdrawal mark.
func WithdrawalKey(owner, successor, asset string) string {
	return owner + "/" + successor + "/" + asset
}

// Setting is one mutable key/value row of the administrative surface.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings keys.
const (
	SettingFeeCollector = "fee_collector"
)
