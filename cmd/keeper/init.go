// Init command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize keeper storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve config directory (flag > env > default) and ensure it
		// exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			failSys("init", err)
		}
		if err := ensureConfigDir(configDir); err != nil {
			failSys("init", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			failSys("init", err)
		}

		// Attach backend (creates data directory via SQLite Attach).
		backend, _, _, err := attachKeeper()
		if err != nil {
			failSys("init", err)
		}
		defer backend.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			failSys("init", err)
		}

		fmt.Println("Keeper initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
