package types

import (
	"time"

	"github.com/bits-and-blooms/bitset"
)

// TallyCapacity is the hard upper bound on guardian slots. A tally bit
// position is a guardian list index, so the bitset never needs to grow
// past this.
const TallyCapacity = 64

// VoteTally accumulates guardian votes for one round of lost-access
// confirmation. Bit i of Confirmed is set when the guardian occupying
// slot i has voted. A duplicated address occupies multiple slots and
// therefore carries multiple effective votes.
type VoteTally struct {
	Guardians        []string       `json:"guardians"`
	Quorum           int            `json:"quorum"`
	Confirmed        *bitset.BitSet `json:"confirmed"`
	ConfirmationTime time.Time      `json:"confirmation_time"`
}

// NewVoteTally returns a tally over the given guardian slots with an
// empty vote round.
func NewVoteTally(quorum int, guardians []string) VoteTally {
	return VoteTally{
		Guardians: append([]string(nil), guardians...),
		Quorum:    quorum,
		Confirmed: bitset.New(uint(len(guardians))),
	}
}

// CastVote sets the bit of every unset slot whose address equals voter.
// It reports whether any bit changed: false means the caller either holds
// no slot or had already voted in every slot it occupies.
func (t *VoteTally) CastVote(voter string) bool {
	if t.Confirmed == nil {
		t.Confirmed = bitset.New(uint(len(t.Guardians)))
	}
	changed := false
	for i, g := range t.Guardians {
		if g == voter && !t.Confirmed.Test(uint(i)) {
			t.Confirmed.Set(uint(i))
			changed = true
		}
	}
	return changed
}

// HoldsSlot reports whether addr occupies at least one guardian slot.
func (t *VoteTally) HoldsSlot(addr string) bool {
	for _, g := range t.Guardians {
		if g == addr {
			return true
		}
	}
	return false
}

// VoteCount returns the number of set slots in the current round.
func (t *VoteTally) VoteCount() int {
	if t.Confirmed == nil {
		return 0
	}
	return int(t.Confirmed.Count())
}

// HasQuorum reports whether the current round has reached the quorum.
// A tally with no guardians never has quorum; the no-guardian variant
// bypasses voting entirely.
func (t *VoteTally) HasQuorum() bool {
	return len(t.Guardians) > 0 && t.VoteCount() >= t.Quorum
}

// Voters returns the addresses of the slots that have voted, in guardian
// list order. Empty, never nil, when no slot has voted.
func (t *VoteTally) Voters() []string {
	voters := []string{}
	if t.Confirmed == nil {
		return voters
	}
	for i, g := range t.Guardians {
		if t.Confirmed.Test(uint(i)) {
			voters = append(voters, g)
		}
	}
	return voters
}

// Reset clears the vote round: every bit and the confirmation time.
// Guardians and quorum are untouched.
func (t *VoteTally) Reset() {
	t.Confirmed = bitset.New(uint(len(t.Guardians)))
	t.ConfirmationTime = time.Time{}
}

// Replace swaps in a new guardian set and quorum atomically, starting a
// fresh round.
func (t *VoteTally) Replace(quorum int, guardians []string) {
	t.Guardians = append([]string(nil), guardians...)
	t.Quorum = quorum
	t.Reset()
}
