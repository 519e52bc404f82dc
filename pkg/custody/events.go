package custody

import (
	"sort"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// emit appends an event row. Event append failures are swallowed: the
// state change already committed and the event stream is advisory, for
// external indexers only.
func (k *Keeper) emit(kind, owner, actor string, payload map[string]any) {
	tbl, err := k.vault.GetTable(types.TableEvents)
	if err != nil {
		return
	}
	_, _ = tbl.Set("", &types.Event{
		Kind:      kind,
		Owner:     owner,
		Actor:     actor,
		Payload:   payload,
		CreatedAt: k.now(),
	})
}

// Events returns every event recorded for owner, oldest first.
func (k *Keeper) Events(owner string) ([]*types.Event, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	tbl, err := k.vault.GetTable(types.TableEvents)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Fetch(map[string]any{"owner": owner})
	if err != nil {
		return nil, err
	}
	events := make([]*types.Event, 0, len(rows))
	for _, r := range rows {
		if e, ok := r.(*types.Event); ok {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}
