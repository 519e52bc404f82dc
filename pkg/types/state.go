package types

// State is a property's derived lifecycle state. States are ordered:
// comparisons like "strictly below StateUnlocked" are meaningful.
type State int

const (
	// StateNotExist: no record, or the record was abandoned.
	StateNotExist State = iota
	// StateOwnerActive: the owner's last heartbeat still covers now.
	StateOwnerActive
	// StateVoteActive: the heartbeat lapsed; guardians may vote.
	StateVoteActive
	// StateConfirmationWaiting: quorum (or the contingency timeout) was
	// reached and the confirmation delay is still running.
	StateConfirmationWaiting
	// StateUnlocked: successors may withdraw.
	StateUnlocked
)

var stateNames = map[State]string{
	StateNotExist:            "not_exist",
	StateOwnerActive:         "owner_active",
	StateVoteActive:          "vote_active",
	StateConfirmationWaiting: "confirmation_waiting",
	StateUnlocked:            "unlocked",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
