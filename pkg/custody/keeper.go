package custody

import (
	"fmt"
	"sync"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// Keeper drives the property lifecycle. It owns no storage of its own:
// records go through the vault, assets through the ledger. The clock is
// injectable so time-driven states are testable without sleeping.
type Keeper struct {
	mu     sync.Mutex
	vault  types.Vault
	ledger types.Ledger
	cfg    types.Config
	sched  types.Schedule
	now    func() time.Time
}

// NewKeeper returns a Keeper over an attached vault and a ledger.
// The config should already be validated; WithDefaults is applied here.
func NewKeeper(vault types.Vault, ledger types.Ledger, cfg types.Config) *Keeper {
	cfg = cfg.WithDefaults()
	return &Keeper{
		vault:  vault,
		ledger: ledger,
		cfg:    cfg,
		sched:  cfg.Schedule(),
		now:    time.Now,
	}
}

// SetClock replaces the keeper's time source. Intended for tests and for
// the CLI's --now override.
func (k *Keeper) SetClock(now func() time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.now = now
}

// Schedule returns the lock windows the keeper derives states with.
func (k *Keeper) Schedule() types.Schedule {
	return k.sched
}

// CreateProperty registers a property for owner. Legal only while no
// property exists (or an abandoned one is being recreated; the fresh
// record replaces it wholesale). Guardians may be empty, which selects
// the no-guardian variant: the property unlocks directly on lapse.
func (k *Keeper) CreateProperty(owner string, successors types.SuccessorSet, quorum int, guardians []string) (*types.Property, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if owner == "" {
		return nil, types.ErrEmptyAddress
	}
	now := k.now()
	existing, err := k.getProperty(owner)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	if existing != nil && existing.StateAt(now, k.sched) != types.StateNotExist {
		return nil, types.ErrPropertyExists
	}
	if err := successors.Validate(k.cfg.MaxSuccessors); err != nil {
		return nil, err
	}
	if err := k.validateGuardians(quorum, guardians, true); err != nil {
		return nil, err
	}

	p := &types.Property{
		Owner:          owner,
		ExpirationTime: now.Add(k.sched.MinLock),
		Successors:     successors,
		Tally:          types.NewVoteTally(quorum, guardians),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := k.putProperty(p); err != nil {
		return nil, err
	}
	k.emit(types.EventPropertyCreated, owner, owner, map[string]any{
		"expiration_time": p.ExpirationTime,
		"successors":      len(successors.Shares),
		"guardians":       len(guardians),
		"quorum":          quorum,
	})
	return p, nil
}

// Heartbeat records owner activity, extending the expiration by one lock
// period and forgetting any in-progress vote round. Legal in OwnerActive
// and VoteActive; at most one full lock period may be prepaid.
func (k *Keeper) Heartbeat(owner string) (*types.Property, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return nil, err
	}
	state := p.StateAt(now, k.sched)
	if state != types.StateOwnerActive && state != types.StateVoteActive {
		return nil, wrongState(state)
	}
	if !p.CanHeartbeat(now, k.sched) {
		return nil, fmt.Errorf("%w: renewal window not yet open", types.ErrWrongState)
	}

	p.ExpirationTime = p.ExpirationTime.Add(k.sched.MinLock)
	p.Tally.Reset()
	p.UpdatedAt = now
	if err := k.putProperty(p); err != nil {
		return nil, err
	}
	k.emit(types.EventHeartbeat, owner, owner, map[string]any{
		"expiration_time": p.ExpirationTime,
	})
	return p, nil
}

// SetSuccessors replaces the succession registry wholesale. Legal only in
// OwnerActive: a lapsed owner must heartbeat back first.
func (k *Keeper) SetSuccessors(owner string, successors types.SuccessorSet) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return err
	}
	if state := p.StateAt(now, k.sched); state != types.StateOwnerActive {
		return wrongState(state)
	}
	if err := successors.Validate(k.cfg.MaxSuccessors); err != nil {
		return err
	}

	p.Successors = successors
	p.UpdatedAt = now
	if err := k.putProperty(p); err != nil {
		return err
	}
	k.emit(types.EventSuccessorsChanged, owner, owner, map[string]any{
		"successors":  len(successors.Shares),
		"deed_heir":   successors.DeedHeir,
		"bundle_heir": successors.BundleHeir,
	})
	return nil
}

// SetGuardians atomically replaces the guardian set and quorum and clears
// the vote round. Legal in OwnerActive and VoteActive, so an owner can
// reset an in-progress vote without first heartbeating.
func (k *Keeper) SetGuardians(owner string, quorum int, guardians []string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return err
	}
	state := p.StateAt(now, k.sched)
	if state != types.StateOwnerActive && state != types.StateVoteActive {
		return wrongState(state)
	}
	if err := k.validateGuardians(quorum, guardians, false); err != nil {
		return err
	}

	p.Tally.Replace(quorum, guardians)
	p.UpdatedAt = now
	if err := k.putProperty(p); err != nil {
		return err
	}
	k.emit(types.EventGuardiansChanged, owner, owner, map[string]any{
		"guardians": len(guardians),
		"quorum":    quorum,
	})
	return nil
}

// CastVote records voter's confirmation that owner has lost access. Every
// unset slot the voter occupies is set; a guardian who already voted in
// all its slots is a silent no-op. The first crossing of quorum in a round
// starts the confirmation delay; later votes never move it.
func (k *Keeper) CastVote(owner, voter string) (*types.Property, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return nil, err
	}
	state := p.StateAt(now, k.sched)
	if state != types.StateVoteActive && state != types.StateConfirmationWaiting {
		return nil, wrongState(state)
	}
	if !p.Tally.HoldsSlot(voter) {
		return nil, types.ErrNotGuardian
	}

	changed := p.Tally.CastVote(voter)
	confirmed := false
	if p.Tally.HasQuorum() && p.Tally.ConfirmationTime.IsZero() {
		p.Tally.ConfirmationTime = now.Add(k.sched.ConfirmationLock)
		confirmed = true
	}
	if !changed && !confirmed {
		// Re-vote: nothing to persist.
		return p, nil
	}

	p.UpdatedAt = now
	if err := k.putProperty(p); err != nil {
		return nil, err
	}
	if confirmed {
		k.emit(types.EventLostAccessConfirmed, owner, voter, map[string]any{
			"votes":             p.Tally.VoteCount(),
			"quorum":            p.Tally.Quorum,
			"confirmation_time": p.Tally.ConfirmationTime,
		})
	}
	return p, nil
}

// DeleteProperty removes the record entirely. Legal in every state
// strictly below Unlocked, including mid-vote: the owner can always
// reclaim before assets become claimable. No refund mechanics.
func (k *Keeper) DeleteProperty(owner string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	p, err := k.getProperty(owner)
	if err != nil {
		return err
	}
	if state := p.StateAt(now, k.sched); state >= types.StateUnlocked {
		return wrongState(state)
	}

	tbl, err := k.vault.GetTable(types.TableProperties)
	if err != nil {
		return err
	}
	if err := tbl.Delete(owner); err != nil {
		return err
	}
	k.emit(types.EventPropertyDeleted, owner, owner, nil)
	return nil
}

// State returns the derived lifecycle state of owner's property at the
// keeper's current time. A missing record is StateNotExist, not an error.
func (k *Keeper) State(owner string) (types.State, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	p, err := k.getProperty(owner)
	if err == types.ErrNotFound {
		return types.StateNotExist, nil
	}
	if err != nil {
		return types.StateNotExist, err
	}
	return p.StateAt(k.now(), k.sched), nil
}

// Property returns the stored record for owner.
func (k *Keeper) Property(owner string) (*types.Property, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.getProperty(owner)
}

// Voters returns the guardians that have voted this round, in slot order.
func (k *Keeper) Voters(owner string) ([]string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	p, err := k.getProperty(owner)
	if err != nil {
		return nil, err
	}
	return p.Tally.Voters(), nil
}

// validateGuardians enforces the quorum policy. allowEmpty permits the
// no-guardian variant (create only): both quorum and guardians empty.
func (k *Keeper) validateGuardians(quorum int, guardians []string, allowEmpty bool) error {
	if len(guardians) == 0 {
		if allowEmpty && quorum == 0 {
			return nil
		}
		return types.ErrQuorumBounds
	}
	if quorum <= 0 || quorum > len(guardians) {
		return types.ErrQuorumBounds
	}
	if len(guardians) > k.cfg.MaxGuardians {
		return types.ErrTooManyGuardians
	}
	for _, g := range guardians {
		if g == "" {
			return types.ErrEmptyAddress
		}
	}
	return nil
}

func wrongState(s types.State) error {
	return fmt.Errorf("%w: %s", types.ErrWrongState, s)
}

func (k *Keeper) getProperty(owner string) (*types.Property, error) {
	if owner == "" {
		return nil, types.ErrInvalidID
	}
	tbl, err := k.vault.GetTable(types.TableProperties)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(owner)
	if err != nil {
		return nil, err
	}
	p, ok := got.(*types.Property)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return p, nil
}

func (k *Keeper) putProperty(p *types.Property) error {
	tbl, err := k.vault.GetTable(types.TableProperties)
	if err != nil {
		return err
	}
	_, err = tbl.Set(p.Owner, p)
	return err
}
