package types

import (
	"errors"
	"testing"
)

func TestSuccessorSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     SuccessorSet
		max     int
		wantErr error
	}{
		{
			name:    "single full share is valid",
			set:     SuccessorSet{Shares: []ShareEntry{{Address: "bob", Share: ShareScale}}},
			wantErr: nil,
		},
		{
			name: "even split is valid",
			set: SuccessorSet{Shares: []ShareEntry{
				{Address: "bob", Share: 5000},
				{Address: "carol", Share: 5000},
			}},
			wantErr: nil,
		},
		{
			name: "repeated address is valid",
			set: SuccessorSet{Shares: []ShareEntry{
				{Address: "bob", Share: 6000},
				{Address: "bob", Share: 4000},
			}},
			wantErr: nil,
		},
		{
			name:    "undershoot returns ErrShareSum",
			set:     SuccessorSet{Shares: []ShareEntry{{Address: "bob", Share: 9999}}},
			wantErr: ErrShareSum,
		},
		{
			name: "overshoot returns ErrShareSum",
			set: SuccessorSet{Shares: []ShareEntry{
				{Address: "bob", Share: 5001},
				{Address: "carol", Share: 5000},
			}},
			wantErr: ErrShareSum,
		},
		{
			name:    "empty table returns ErrShareSum",
			set:     SuccessorSet{},
			wantErr: ErrShareSum,
		},
		{
			name: "zero share returns ErrZeroShare",
			set: SuccessorSet{Shares: []ShareEntry{
				{Address: "bob", Share: ShareScale},
				{Address: "carol", Share: 0},
			}},
			wantErr: ErrZeroShare,
		},
		{
			name:    "empty address returns ErrEmptyAddress",
			set:     SuccessorSet{Shares: []ShareEntry{{Address: "", Share: ShareScale}}},
			wantErr: ErrEmptyAddress,
		},
		{
			name: "over the cardinality bound returns ErrTooManySuccessors",
			set: SuccessorSet{Shares: []ShareEntry{
				{Address: "bob", Share: 4000},
				{Address: "carol", Share: 3000},
				{Address: "dave", Share: 3000},
			}},
			max:     2,
			wantErr: ErrTooManySuccessors,
		},
		{
			name: "bound of zero disables the limit",
			set: SuccessorSet{Shares: []ShareEntry{
				{Address: "bob", Share: 4000},
				{Address: "carol", Share: 3000},
				{Address: "dave", Share: 3000},
			}},
			max:     0,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate(tt.max)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSuccessorSetCumulativeShare(t *testing.T) {
	set := SuccessorSet{Shares: []ShareEntry{
		{Address: "bob", Share: 2500},
		{Address: "carol", Share: 5000},
		{Address: "bob", Share: 2500},
	}}

	if got := set.CumulativeShare("bob"); got != 5000 {
		t.Errorf("CumulativeShare(bob) = %d, want 5000", got)
	}
	if got := set.CumulativeShare("carol"); got != 5000 {
		t.Errorf("CumulativeShare(carol) = %d, want 5000", got)
	}
	if got := set.CumulativeShare("mallory"); got != 0 {
		t.Errorf("CumulativeShare(mallory) = %d, want 0", got)
	}
}
