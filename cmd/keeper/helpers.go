// Shared helpers for keeper CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/heirloom/internal/sqlite"
	"github.com/mesh-intelligence/heirloom/pkg/custody"
	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// attachKeeper resolves the data directory, attaches a SQLite backend,
// and builds a Keeper over it and the simulated ledger. The caller must
// defer backend.Detach().
func attachKeeper() (*sqlite.Backend, *custody.Keeper, *sqlite.Ledger, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := loadedConfig.custody
	cfg.Backend = types.BackendSQLite
	cfg.DataDir = dataDir

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("attach backend: %w", err)
	}

	ledger, err := backend.Ledger()
	if err != nil {
		backend.Detach()
		return nil, nil, nil, fmt.Errorf("open ledger: %w", err)
	}

	keeper := custody.NewKeeper(backend, ledger, cfg)
	if flagNow != "" {
		at, err := time.Parse(time.RFC3339, flagNow)
		if err != nil {
			backend.Detach()
			return nil, nil, nil, fmt.Errorf("parse --now: %w", err)
		}
		keeper.SetClock(func() time.Time { return at })
	}
	return backend, keeper, ledger, nil
}

// parseShares turns repeated addr:share flags into a share table.
func parseShares(raw []string) ([]types.ShareEntry, error) {
	shares := make([]types.ShareEntry, 0, len(raw))
	for _, s := range raw {
		addr, num, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("successor %q: want address:share", s)
		}
		share, err := strconv.ParseUint(num, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("successor %q: %w", s, err)
		}
		shares = append(shares, types.ShareEntry{Address: addr, Share: uint32(share)})
	}
	return shares, nil
}

// cutDeed splits a collection:token-id argument.
func cutDeed(raw string) (collection, tokenID string, ok bool) {
	return strings.Cut(raw, ":")
}

// printResult writes v as JSON when --json is set, otherwise calls plain
// to produce human-readable output.
func printResult(v any, plain func()) {
	if flagJSON {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(exitSysError)
		}
		fmt.Println(string(out))
		return
	}
	plain()
}

// fail prints a prefixed error and exits with the user-error code.
func fail(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(exitUserError)
}

// failSys prints a prefixed error and exits with the system-error code.
func failSys(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(exitSysError)
}
