package custody

import (
	"errors"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// SetFeeCollector stores a new fee recipient address. Restricted to the
// configured administrator; this is the whole administrative surface.
func (k *Keeper) SetFeeCollector(caller, addr string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cfg.Admin == "" || caller != k.cfg.Admin {
		return types.ErrNotAdmin
	}
	if addr == "" {
		return types.ErrEmptyAddress
	}

	tbl, err := k.vault.GetTable(types.TableSettings)
	if err != nil {
		return err
	}
	if _, err := tbl.Set(types.SettingFeeCollector, &types.Setting{
		Key:   types.SettingFeeCollector,
		Value: addr,
	}); err != nil {
		return err
	}
	k.emit(types.EventFeeCollectorChanged, "", caller, map[string]any{
		"fee_collector": addr,
	})
	return nil
}

// FeeCollector returns the current fee recipient: the settings override
// when present, the configured default otherwise.
func (k *Keeper) FeeCollector() (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.feeCollector()
}

// feeCollector reads the settings row without taking the mutex; callers
// hold it already.
func (k *Keeper) feeCollector() (string, error) {
	tbl, err := k.vault.GetTable(types.TableSettings)
	if err != nil {
		return "", err
	}
	got, err := tbl.Get(types.SettingFeeCollector)
	if errors.Is(err, types.ErrNotFound) {
		return k.cfg.FeeCollector, nil
	}
	if err != nil {
		return "", err
	}
	s, ok := got.(*types.Setting)
	if !ok {
		return "", types.ErrInvalidData
	}
	return s.Value, nil
}
