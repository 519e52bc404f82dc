package types

import (
	"errors"
	"time"
)

// Config holds backend selection and the custody parameters for a Vault.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Custody timing parameters, in days. Zero selects the default.
	MinLockDays      int `json:"min_lock_days" yaml:"min_lock_days"`
	ContingencyDays  int `json:"contingency_days" yaml:"contingency_days"`
	ConfirmationDays int `json:"confirmation_days" yaml:"confirmation_days"`

	// FeeBasisPoints is the one-time fee taken from a fungible balance on
	// first withdrawal, in parts per 10000 of the balance.
	FeeBasisPoints uint64 `json:"fee_basis_points" yaml:"fee_basis_points"`

	// MaxGuardians bounds the guardian slot count; it may not exceed
	// TallyCapacity. MaxSuccessors bounds the share table (0 disables the
	// limit). MaxWithdrawAssets bounds the asset list of one withdrawal call.
	MaxGuardians      int `json:"max_guardians" yaml:"max_guardians"`
	MaxSuccessors     int `json:"max_successors" yaml:"max_successors"`
	MaxWithdrawAssets int `json:"max_withdraw_assets" yaml:"max_withdraw_assets"`

	// Admin may change the fee collector. FeeCollector receives fees until
	// the admin stores a replacement in settings.
	Admin        string `json:"admin" yaml:"admin"`
	FeeCollector string `json:"fee_collector" yaml:"fee_collector"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Parameter defaults.
const (
	DefaultMinLockDays       = 360
	DefaultContingencyDays   = 360
	DefaultConfirmationDays  = 30
	DefaultFeeBasisPoints    = 100
	DefaultMaxGuardians      = 64
	DefaultMaxSuccessors     = 16
	DefaultMaxWithdrawAssets = 16
)

// Config validation errors.
var (
	ErrBackendEmpty     = errors.New("backend must not be empty")
	ErrBackendUnknown   = errors.New("unknown backend")
	ErrFeeTooHigh       = errors.New("fee basis points must be below 10000")
	ErrGuardianCapacity = errors.New("max guardians exceeds tally capacity")
	ErrNegativeDuration = errors.New("durations must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.FeeBasisPoints >= ShareScale {
		return ErrFeeTooHigh
	}
	if c.MaxGuardians > TallyCapacity {
		return ErrGuardianCapacity
	}
	if c.MinLockDays < 0 || c.ContingencyDays < 0 || c.ConfirmationDays < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// WithDefaults returns a copy of the Config with zero-valued custody
// parameters replaced by the package defaults.
func (c Config) WithDefaults() Config {
	if c.MinLockDays == 0 {
		c.MinLockDays = DefaultMinLockDays
	}
	if c.ContingencyDays == 0 {
		c.ContingencyDays = DefaultContingencyDays
	}
	if c.ConfirmationDays == 0 {
		c.ConfirmationDays = DefaultConfirmationDays
	}
	if c.FeeBasisPoints == 0 {
		c.FeeBasisPoints = DefaultFeeBasisPoints
	}
	if c.MaxGuardians == 0 {
		c.MaxGuardians = DefaultMaxGuardians
	}
	// MaxSuccessors is left alone: 0 means the share table is unbounded.
	if c.MaxWithdrawAssets == 0 {
		c.MaxWithdrawAssets = DefaultMaxWithdrawAssets
	}
	return c
}

// Schedule returns the lock windows derived from the day counts.
func (c Config) Schedule() Schedule {
	return Schedule{
		MinLock:          time.Duration(c.MinLockDays) * 24 * time.Hour,
		Contingency:      time.Duration(c.ContingencyDays) * 24 * time.Hour,
		ConfirmationLock: time.Duration(c.ConfirmationDays) * 24 * time.Hour,
	}
}
