package custody

import (
	"errors"
	"math/bits"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// AssetPayout reports what one asset paid out in a Withdraw call.
type AssetPayout struct {
	Asset   string `json:"asset"`
	Amount  uint64 `json:"amount"`
	Skipped bool   `json:"skipped"` // already claimed by this successor
}

// Withdraw pays caller its share of each requested fungible asset held by
// owner. The property must be Unlocked and the caller must hold a nonzero
// cumulative share.
//
// Per asset: a successor that already claimed is skipped silently, so a
// batch mixing fresh and claimed assets still pays the fresh ones. The
// replay mark is written before any value moves and handed back if the
// settlement behind it fails. The first claimant of an asset captures
// the fee and snapshots the distribution rate; the snapshot is never
// recomputed, so owner balance changes after the first claim cannot
// affect later claimants. A remainder of at most 10000 is dust: no
// snapshot, no custody move, and the stored rate stays 0 — which also
// means a later claimant observing rate 0 re-runs the fee-and-snapshot
// attempt against whatever balance remains.
func (k *Keeper) Withdraw(owner, caller string, assets []string) ([]AssetPayout, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(assets) == 0 {
		return nil, types.ErrNoAssets
	}
	if len(assets) > k.cfg.MaxWithdrawAssets {
		return nil, types.ErrTooManyAssets
	}
	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return nil, err
	}
	if state := p.StateAt(now, k.sched); state != types.StateUnlocked {
		return nil, wrongState(state)
	}
	share := p.Successors.CumulativeShare(caller)
	if share == 0 {
		return nil, types.ErrNotSuccessor
	}

	payouts := make([]AssetPayout, 0, len(assets))
	var total uint64
	claimed := 0
	for _, asset := range assets {
		payout, err := k.withdrawAsset(p, caller, share, asset)
		if err != nil {
			return payouts, err
		}
		payouts = append(payouts, payout)
		total += payout.Amount
		if !payout.Skipped {
			claimed++
		}
	}

	// A batch where every asset was already claimed changes nothing, so
	// it leaves no trace in the event stream.
	if claimed > 0 {
		k.emit(types.EventPropertyWithdrawn, owner, caller, map[string]any{
			"class":  "fungible",
			"assets": assets,
			"total":  total,
		})
	}
	return payouts, nil
}

// withdrawAsset runs the per-asset accounting. Caller holds the mutex.
func (k *Keeper) withdrawAsset(p *types.Property, caller string, share uint64, asset string) (AssetPayout, error) {
	marks, err := k.vault.GetTable(types.TableWithdrawals)
	if err != nil {
		return AssetPayout{}, err
	}
	markKey := types.WithdrawalKey(p.Owner, caller, asset)
	if _, err := marks.Get(markKey); err == nil {
		return AssetPayout{Asset: asset, Skipped: true}, nil
	} else if !errors.Is(err, types.ErrNotFound) {
		return AssetPayout{}, err
	}

	// Spend the claim before anything moves; a failure past this point
	// hands it back so the successor can claim again.
	if _, err := marks.Set(markKey, &types.WithdrawalMark{
		Owner:     p.Owner,
		Successor: caller,
		Asset:     asset,
		CreatedAt: k.now(),
	}); err != nil {
		return AssetPayout{}, err
	}

	payout, err := k.settleAsset(p.Owner, caller, share, asset)
	if err != nil {
		// Best effort: a failed delete leaves the claim spent, which a
		// remote ledger deployment must reconcile by hand.
		_ = marks.Delete(markKey)
		return AssetPayout{}, err
	}
	return AssetPayout{Asset: asset, Amount: payout}, nil
}

// settleAsset resolves the rate for one asset, snapshotting it on first
// claim, and pays the caller's share out of custody.
func (k *Keeper) settleAsset(owner, caller string, share uint64, asset string) (uint64, error) {
	rate, err := k.assetRate(owner, asset)
	if err != nil {
		return 0, err
	}
	if rate == 0 {
		rate, err = k.snapshotRate(owner, asset)
		if err != nil {
			return 0, err
		}
	}

	payout := rate * share
	if payout > 0 {
		if err := k.ledger.Transfer(caller, asset, payout); err != nil {
			return 0, err
		}
	}
	return payout, nil
}

// snapshotRate performs the one-time fee capture and rate snapshot for an
// (owner, asset) pair: fee to the collector, the distributable remainder
// into custody, and the per-share-unit rate stored. A remainder of at
// most ShareScale is left with the owner and no rate is stored.
func (k *Keeper) snapshotRate(owner, asset string) (uint64, error) {
	balance, err := k.ledger.BalanceOf(owner, asset)
	if err != nil {
		return 0, err
	}
	// The product can exceed 64 bits for large balances, so compute it
	// in a double word. FeeBasisPoints < ShareScale keeps the high word
	// below the divisor.
	hi, lo := bits.Mul64(balance, k.cfg.FeeBasisPoints)
	fee, _ := bits.Div64(hi, lo, types.ShareScale)
	if fee > 0 {
		collector, err := k.feeCollector()
		if err != nil {
			return 0, err
		}
		if err := k.ledger.TransferFrom(owner, collector, asset, fee); err != nil {
			return 0, err
		}
	}
	remainder := balance - fee
	if remainder <= types.ShareScale {
		return 0, nil
	}

	rate := remainder / types.ShareScale
	rates, err := k.vault.GetTable(types.TableRates)
	if err != nil {
		return 0, err
	}
	if _, err := rates.Set(types.RateKey(owner, asset), &types.DistributionRate{
		Owner:          owner,
		Asset:          asset,
		AmountPerShare: rate,
		SnapshotAt:     k.now(),
	}); err != nil {
		return 0, err
	}
	if err := k.ledger.TransferFrom(owner, types.CustodyAccount, asset, remainder); err != nil {
		return 0, err
	}
	return rate, nil
}

// assetRate reads the stored snapshot rate, 0 when none exists.
func (k *Keeper) assetRate(owner, asset string) (uint64, error) {
	rates, err := k.vault.GetTable(types.TableRates)
	if err != nil {
		return 0, err
	}
	got, err := rates.Get(types.RateKey(owner, asset))
	if errors.Is(err, types.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	r, ok := got.(*types.DistributionRate)
	if !ok {
		return 0, types.ErrInvalidData
	}
	return r.AmountPerShare, nil
}

// DeedItem names one single-id non-fungible asset.
type DeedItem struct {
	Collection string `json:"collection"`
	TokenID    string `json:"token_id"`
}

// WithdrawDeeds transfers the listed deeds from owner to caller, who must
// be the designated deed heir. No fee, no share math, and no replay mark:
// a repeat call fails at the ledger because the owner no longer holds the
// deeds.
func (k *Keeper) WithdrawDeeds(owner, caller string, items []DeedItem) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(items) == 0 {
		return types.ErrNoAssets
	}
	if len(items) > k.cfg.MaxWithdrawAssets {
		return types.ErrTooManyAssets
	}
	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return err
	}
	if state := p.StateAt(now, k.sched); state != types.StateUnlocked {
		return wrongState(state)
	}
	if p.Successors.DeedHeir == "" || caller != p.Successors.DeedHeir {
		return types.ErrNotHeir
	}

	for _, item := range items {
		if err := k.ledger.TransferDeedFrom(owner, caller, item.Collection, item.TokenID); err != nil {
			return err
		}
	}
	k.emit(types.EventPropertyWithdrawn, owner, caller, map[string]any{
		"class": "deed",
		"count": len(items),
	})
	return nil
}

// WithdrawBundles batch-transfers owner's balances of the listed bundle
// ids to caller, who must be the designated bundle heir. Each id moves at
// the owner's full current balance; ids the owner no longer holds move
// nothing.
func (k *Keeper) WithdrawBundles(owner, caller, collection string, ids []string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(ids) == 0 {
		return types.ErrNoAssets
	}
	if len(ids) > k.cfg.MaxWithdrawAssets {
		return types.ErrTooManyAssets
	}
	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return err
	}
	if state := p.StateAt(now, k.sched); state != types.StateUnlocked {
		return wrongState(state)
	}
	if p.Successors.BundleHeir == "" || caller != p.Successors.BundleHeir {
		return types.ErrNotHeir
	}

	amounts, err := k.ledger.BalanceOfBatch(owner, collection, ids)
	if err != nil {
		return err
	}
	moveIDs := make([]string, 0, len(ids))
	moveAmounts := make([]uint64, 0, len(ids))
	for i, id := range ids {
		if amounts[i] > 0 {
			moveIDs = append(moveIDs, id)
			moveAmounts = append(moveAmounts, amounts[i])
		}
	}
	if len(moveIDs) > 0 {
		if err := k.ledger.SafeBatchTransferFrom(owner, caller, collection, moveIDs, moveAmounts); err != nil {
			return err
		}
	}
	k.emit(types.EventPropertyWithdrawn, owner, caller, map[string]any{
		"class":      "bundle",
		"collection": collection,
		"count":      len(moveIDs),
	})
	return nil
}
