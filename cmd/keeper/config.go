// Config loading for the keeper CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend           = "backend"
	cfgKeyDataDir           = "data_dir"
	cfgKeyMinLockDays       = "min_lock_days"
	cfgKeyContingencyDays   = "contingency_days"
	cfgKeyConfirmationDays  = "confirmation_days"
	cfgKeyFeeBasisPoints    = "fee_basis_points"
	cfgKeyMaxGuardians      = "max_guardians"
	cfgKeyMaxSuccessors     = "max_successors"
	cfgKeyMaxWithdrawAssets = "max_withdraw_assets"
	cfgKeyAdmin             = "admin"
	cfgKeyFeeCollector      = "fee_collector"

	defaultBackend = "sqlite"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Keeper CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Custody parameters (days; 0 selects the built-in default)
# min_lock_days: 360
# contingency_days: 360
# confirmation_days: 30

# Fee in parts per 10000 of the first-withdrawal balance
# fee_basis_points: 100

# Bounds (max_successors 0 disables the limit)
# max_guardians: 64
# max_successors: 16
# max_withdraw_assets: 16

# Administrative identities
# admin:
# fee_collector:
`

// configValues carries the parsed config.yaml fields through to the
// subcommands.
type configValues struct {
	dataDir string
	custody types.Config
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (configValues, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return configValues{}, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return configValues{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return configValues{}, fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml is not an error.
	}

	cfg := configValues{
		dataDir: v.GetString(cfgKeyDataDir),
		custody: types.Config{
			Backend:           v.GetString(cfgKeyBackend),
			MinLockDays:       v.GetInt(cfgKeyMinLockDays),
			ContingencyDays:   v.GetInt(cfgKeyContingencyDays),
			ConfirmationDays:  v.GetInt(cfgKeyConfirmationDays),
			FeeBasisPoints:    v.GetUint64(cfgKeyFeeBasisPoints),
			MaxGuardians:      v.GetInt(cfgKeyMaxGuardians),
			MaxSuccessors:     v.GetInt(cfgKeyMaxSuccessors),
			MaxWithdrawAssets: v.GetInt(cfgKeyMaxWithdrawAssets),
			Admin:             v.GetString(cfgKeyAdmin),
			FeeCollector:      v.GetString(cfgKeyFeeCollector),
		},
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
