package types

import (
	"testing"
	"time"
)

var testSched = Schedule{
	MinLock:          10 * 24 * time.Hour,
	Contingency:      30 * 24 * time.Hour,
	ConfirmationLock: 5 * 24 * time.Hour,
}

var testExpiry = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

// confirmedTally builds a one-guardian tally with quorum reached and the
// confirmation delay running from at.
func confirmedTally(at time.Time) VoteTally {
	tally := NewVoteTally(1, []string{"gwen"})
	tally.CastVote("gwen")
	tally.ConfirmationTime = at.Add(testSched.ConfirmationLock)
	return tally
}

func TestPropertyStateAt(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		now  time.Time
		want State
	}{
		{
			name: "zero expiration is not exist",
			prop: Property{},
			now:  testExpiry,
			want: StateNotExist,
		},
		{
			name: "before expiration is owner active",
			prop: Property{ExpirationTime: testExpiry},
			now:  testExpiry.Add(-time.Hour),
			want: StateOwnerActive,
		},
		{
			name: "the expiration instant itself is owner active",
			prop: Property{ExpirationTime: testExpiry},
			now:  testExpiry,
			want: StateOwnerActive,
		},
		{
			name: "lapsed without guardians is unlocked immediately",
			prop: Property{ExpirationTime: testExpiry},
			now:  testExpiry.Add(time.Second),
			want: StateUnlocked,
		},
		{
			name: "lapsed with guardians opens voting",
			prop: Property{
				ExpirationTime: testExpiry,
				Tally:          NewVoteTally(1, []string{"gwen"}),
			},
			now:  testExpiry.Add(time.Hour),
			want: StateVoteActive,
		},
		{
			name: "voting stays open to the end of one lock period",
			prop: Property{
				ExpirationTime: testExpiry,
				Tally:          NewVoteTally(1, []string{"gwen"}),
			},
			now:  testExpiry.Add(testSched.MinLock - time.Second),
			want: StateVoteActive,
		},
		{
			name: "quorum within the delay is confirmation waiting",
			prop: Property{
				ExpirationTime: testExpiry,
				Tally:          confirmedTally(testExpiry.Add(time.Hour)),
			},
			now:  testExpiry.Add(2 * time.Hour),
			want: StateConfirmationWaiting,
		},
		{
			name: "quorum past the delay is unlocked",
			prop: Property{
				ExpirationTime: testExpiry,
				Tally:          confirmedTally(testExpiry.Add(time.Hour)),
			},
			now:  testExpiry.Add(time.Hour).Add(testSched.ConfirmationLock),
			want: StateUnlocked,
		},
		{
			name: "contingency timeout unlocks without quorum",
			prop: Property{
				ExpirationTime: testExpiry,
				Tally:          NewVoteTally(2, []string{"gwen", "gil"}),
			},
			now:  testExpiry.Add(testSched.Contingency + time.Second),
			want: StateUnlocked,
		},
		{
			name: "abandoned past the voting window reports not exist",
			prop: Property{
				ExpirationTime: testExpiry,
				Tally:          NewVoteTally(2, []string{"gwen", "gil"}),
			},
			now:  testExpiry.Add(testSched.MinLock + time.Hour),
			want: StateNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prop.StateAt(tt.now, testSched); got != tt.want {
				t.Errorf("StateAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPropertyCanHeartbeat(t *testing.T) {
	p := Property{ExpirationTime: testExpiry}
	windowOpen := testExpiry.Add(-testSched.MinLock)

	if p.CanHeartbeat(windowOpen, testSched) {
		t.Error("the window-open instant itself should not allow a heartbeat")
	}
	if !p.CanHeartbeat(windowOpen.Add(time.Second), testSched) {
		t.Error("just inside the window should allow a heartbeat")
	}
	if !p.CanHeartbeat(testExpiry.Add(time.Hour), testSched) {
		t.Error("a lapsed property should allow a heartbeat")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateNotExist, "not_exist"},
		{StateOwnerActive, "owner_active"},
		{StateVoteActive, "vote_active"},
		{StateConfirmationWaiting, "confirmation_waiting"},
		{StateUnlocked, "unlocked"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
