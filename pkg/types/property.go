package types

import "time"

// Property is the managed bundle of one owner's succession arrangement:
// the heartbeat deadline, the successor registry, and the guardian tally.
// There is no stored lifecycle state; the current state is always derived
// from the timestamps and the tally (see StateAt).
type Property struct {
	Owner          string       `json:"owner"`
	ExpirationTime time.Time    `json:"expiration_time"` // zero: does not exist
	Successors     SuccessorSet `json:"successors"`
	Tally          VoteTally    `json:"tally"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Schedule holds the lock windows that drive state derivation.
type Schedule struct {
	// MinLock is both the heartbeat period and the voting window after a
	// lapse; one heartbeat extends ExpirationTime by exactly MinLock.
	MinLock time.Duration
	// Contingency is the window after a lapse past which unlock proceeds
	// regardless of quorum.
	Contingency time.Duration
	// ConfirmationLock is the delay between the first quorum crossing and
	// the Unlocked state becoming reachable.
	ConfirmationLock time.Duration
}

// StateAt derives the lifecycle state of the property at the given instant.
// It is a pure function of the stored record and now; calling it never
// mutates anything. With no guardians configured the voting phases vanish
// and a lapsed property is Unlocked immediately.
func (p *Property) StateAt(now time.Time, sched Schedule) State {
	if p.ExpirationTime.IsZero() {
		return StateNotExist
	}
	if !now.After(p.ExpirationTime) {
		return StateOwnerActive
	}
	if len(p.Tally.Guardians) == 0 {
		return StateUnlocked
	}
	if p.Tally.HasQuorum() || now.After(p.ExpirationTime.Add(sched.Contingency)) {
		if now.Before(p.Tally.ConfirmationTime) {
			return StateConfirmationWaiting
		}
		return StateUnlocked
	}
	if now.Before(p.ExpirationTime.Add(sched.MinLock)) {
		return StateVoteActive
	}
	// Abandoned: nobody heartbeat and quorum never came within one extra
	// lock window. Only the reported state reverts; the record stays until
	// the owner deletes or recreates it.
	return StateNotExist
}

// CanHeartbeat reports whether a heartbeat at now is within the renewal
// window: at most one full lock period may be prepaid.
func (p *Property) CanHeartbeat(now time.Time, sched Schedule) bool {
	return now.After(p.ExpirationTime.Add(-sched.MinLock))
}
