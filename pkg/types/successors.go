package types

import "errors"

// ShareScale is the denominator of every share: shares are parts per 10000
// and a valid share table sums to exactly ShareScale.
const ShareScale = 10000

// ShareEntry allocates a slice of the fungible pool to one address.
// The same address may appear in several entries; its payouts add up.
type ShareEntry struct {
	Address string `json:"address"`
	Share   uint32 `json:"share"`
}

// SuccessorSet is one property's succession registry: the fungible share
// table plus at most one heir per non-fungible class. DeedHeir receives
// single-id deeds; BundleHeir receives batch-transferable bundles.
type SuccessorSet struct {
	Shares     []ShareEntry `json:"shares"`
	DeedHeir   string       `json:"deed_heir,omitempty"`
	BundleHeir string       `json:"bundle_heir,omitempty"`
}

// Successor registry validation errors.
var (
	ErrShareSum          = errors.New("shares must sum to exactly 10000")
	ErrZeroShare         = errors.New("share must be greater than zero")
	ErrEmptyAddress      = errors.New("address must not be empty")
	ErrTooManySuccessors = errors.New("too many successors")
)

// Validate checks the registry against the cardinality bound. A bound of 0
// disables the limit. Returns a sentinel error on the first violation.
func (s SuccessorSet) Validate(maxSuccessors int) error {
	if maxSuccessors > 0 && len(s.Shares) > maxSuccessors {
		return ErrTooManySuccessors
	}
	var sum uint64
	for _, e := range s.Shares {
		if e.Address == "" {
			return ErrEmptyAddress
		}
		if e.Share == 0 {
			return ErrZeroShare
		}
		sum += uint64(e.Share)
	}
	if sum != ShareScale {
		return ErrShareSum
	}
	return nil
}

// CumulativeShare returns the summed share of addr across all entries,
// 0 when addr holds none.
func (s SuccessorSet) CumulativeShare(addr string) uint64 {
	var sum uint64
	for _, e := range s.Shares {
		if e.Address == addr {
			sum += uint64(e.Share)
		}
	}
	return sum
}
