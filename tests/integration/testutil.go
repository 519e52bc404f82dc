// Package integration provides CLI and lifecycle integration tests for
// the keeper.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/heirloom/internal/sqlite"
	"github.com/mesh-intelligence/heirloom/pkg/custody"
	"github.com/mesh-intelligence/heirloom/pkg/types"
)

var (
	// keeperBin is the path to the built keeper binary.
	keeperBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetKeeperBin sets the path to the keeper binary (called from TestMain).
func SetKeeperBin(path string) {
	keeperBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config and data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build keeper: %v", buildErr)
	}
	if keeperBin == "" {
		t.Fatal("keeper binary not built (keeperBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: sqlite\n" +
		"data_dir: " + dataDir + "\n" +
		"admin: root\n" +
		"fee_collector: treasury\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of a keeper command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunKeeper executes the keeper CLI with the given arguments.
// Returns stdout, stderr, and exit code.
func (e *TestEnv) RunKeeper(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(keeperBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run keeper: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunKeeper executes the keeper CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunKeeper(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunKeeper(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("keeper %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// --- in-process lifecycle harness ---

// day is the unit the lock windows are configured in.
const day = 24 * time.Hour

// testEpoch is the fixed starting instant for in-process tests.
var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// testClock is a mutable fake time source for keeper tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(at time.Time) *testClock {
	return &testClock{now: at}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}

// custodyEnv bundles an attached backend, its ledger, and a keeper on a
// fake clock.
type custodyEnv struct {
	backend *sqlite.Backend
	keeper  *custody.Keeper
	ledger  *sqlite.Ledger
	clock   *testClock
}

// newCustodyEnv attaches a SQLite backend in a temp directory and builds
// a keeper over it. Zero-valued custody parameters take the package
// defaults.
func newCustodyEnv(t *testing.T, cfg types.Config) *custodyEnv {
	t.Helper()

	cfg.Backend = types.BackendSQLite
	cfg.DataDir = t.TempDir()

	backend := sqlite.NewBackend()
	require.NoError(t, backend.Attach(cfg))
	t.Cleanup(func() { backend.Detach() })

	ledger, err := backend.Ledger()
	require.NoError(t, err)

	keeper := custody.NewKeeper(backend, ledger, cfg)
	clock := newTestClock(testEpoch)
	keeper.SetClock(clock.Now)

	return &custodyEnv{backend: backend, keeper: keeper, ledger: ledger, clock: clock}
}

// soleHeir returns a one-successor set holding the full share scale.
func soleHeir(addr string) types.SuccessorSet {
	return types.SuccessorSet{
		Shares: []types.ShareEntry{{Address: addr, Share: types.ShareScale}},
	}
}

// state asserts the derived state of owner's property.
func (e *custodyEnv) state(t *testing.T, owner string) types.State {
	t.Helper()
	s, err := e.keeper.State(owner)
	require.NoError(t, err)
	return s
}

// balance reads a ledger balance, failing the test on error.
func (e *custodyEnv) balance(t *testing.T, owner, asset string) uint64 {
	t.Helper()
	amount, err := e.ledger.BalanceOf(owner, asset)
	require.NoError(t, err)
	return amount
}
