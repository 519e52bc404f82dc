// Tests for the rates and withdrawals accessors: write-once semantics
// and composite-key filtering.
package sqlite

import (
	"testing"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

func TestRatesTable_WriteOnce(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Detach()
	tbl, _ := b.GetTable(types.TableRates)

	key := types.RateKey("alice", "gold")
	first := &types.DistributionRate{
		Owner:          "alice",
		Asset:          "gold",
		AmountPerShare: 99,
		SnapshotAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := tbl.Set(key, first); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A second snapshot attempt never moves a frozen rate.
	second := &types.DistributionRate{Owner: "alice", Asset: "gold", AmountPerShare: 7, SnapshotAt: time.Now().UTC()}
	if _, err := tbl.Set(key, second); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	got, err := tbl.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rate := got.(*types.DistributionRate)
	if rate.AmountPerShare != 99 {
		t.Errorf("AmountPerShare = %d, want the frozen 99", rate.AmountPerShare)
	}
	if !rate.SnapshotAt.Equal(first.SnapshotAt) {
		t.Errorf("SnapshotAt = %v, want %v", rate.SnapshotAt, first.SnapshotAt)
	}
}

func TestRatesTable_EmptyIDUsesCompositeKey(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Detach()
	tbl, _ := b.GetTable(types.TableRates)

	rate := &types.DistributionRate{Owner: "alice", Asset: "silver", AmountPerShare: 49, SnapshotAt: time.Now().UTC()}
	id, err := tbl.Set("", rate)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if id != types.RateKey("alice", "silver") {
		t.Errorf("id = %q, want %q", id, types.RateKey("alice", "silver"))
	}

	if _, err := tbl.Get(types.RateKey("alice", "gold")); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing pair, got %v", err)
	}
}

func TestRatesTable_FetchByOwner(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Detach()
	tbl, _ := b.GetTable(types.TableRates)

	now := time.Now().UTC()
	for _, pair := range []struct{ owner, asset string }{
		{"alice", "gold"}, {"alice", "silver"}, {"bob", "gold"},
	} {
		rate := &types.DistributionRate{Owner: pair.owner, Asset: pair.asset, AmountPerShare: 1, SnapshotAt: now}
		if _, err := tbl.Set("", rate); err != nil {
			t.Fatalf("Set %s/%s: %v", pair.owner, pair.asset, err)
		}
	}

	got, err := tbl.Fetch(map[string]any{"owner": "alice"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Fetch(owner=alice) returned %d rows, want 2", len(got))
	}
}

func TestWithdrawalsTable_OneShotMarks(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Detach()
	tbl, _ := b.GetTable(types.TableWithdrawals)

	mark := &types.WithdrawalMark{
		Owner:     "alice",
		Successor: "bob",
		Asset:     "gold",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	id, err := tbl.Set("", mark)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if id != types.WithdrawalKey("alice", "bob", "gold") {
		t.Errorf("id = %q, want composite key", id)
	}

	// Re-inserting the spent claim is ignored, not an error.
	later := &types.WithdrawalMark{Owner: "alice", Successor: "bob", Asset: "gold", CreatedAt: time.Now().UTC()}
	if _, err := tbl.Set(id, later); err != nil {
		t.Fatalf("repeat Set: %v", err)
	}
	got, err := tbl.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.(*types.WithdrawalMark).CreatedAt.Equal(mark.CreatedAt) {
		t.Error("repeat Set should not move the original mark")
	}

	if _, err := tbl.Get(types.WithdrawalKey("alice", "carol", "gold")); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound for unspent claim, got %v", err)
	}
}

func TestWithdrawalsTable_FetchBySuccessor(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Detach()
	tbl, _ := b.GetTable(types.TableWithdrawals)

	now := time.Now().UTC()
	for _, trip := range []struct{ owner, successor, asset string }{
		{"alice", "bob", "gold"}, {"alice", "bob", "silver"}, {"alice", "carol", "gold"},
	} {
		mark := &types.WithdrawalMark{Owner: trip.owner, Successor: trip.successor, Asset: trip.asset, CreatedAt: now}
		if _, err := tbl.Set("", mark); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	got, err := tbl.Fetch(map[string]any{"owner": "alice", "successor": "bob"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Fetch returned %d rows, want 2", len(got))
	}
}
