// Root command for the keeper CLI.
package main

import (
	"github.com/mesh-intelligence/heirloom/internal/paths"
	"github.com/mesh-intelligence/heirloom/pkg/heirloom"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagNow       string
)

// loadedConfig holds the config assembled from config.yaml by
// PersistentPreRunE so all subcommands can use it.
var loadedConfig configValues

var rootCmd = &cobra.Command{
	Use:     "keeper",
	Short:   "Keeper manages time-locked property custody with succession",
	Version: heirloom.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		loadedConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.heirloom)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.heirloom-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "override the keeper clock (RFC3339)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(heartbeatCmd)
	rootCmd.AddCommand(successorsCmd)
	rootCmd.AddCommand(guardiansCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(withdrawCmd)
	rootCmd.AddCommand(withdrawDeedsCmd)
	rootCmd.AddCommand(withdrawBundlesCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(fundCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(feeCollectorCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > HEIRLOOM_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, loadedConfig.dataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > HEIRLOOM_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
