// CLI integration tests for keeper: init, the property lifecycle driven
// through the --now clock override, and the withdrawal flow end to end.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestMain builds the keeper binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "keeper-test-*")
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}
	binPath := filepath.Join(tmpDir, "keeper")
	SetKeeperBin(binPath)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/keeper")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		SetBuildErr(&BuildError{
			Err:    err,
			Output: string(output),
		})
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)

	os.Exit(code)
}

// cliEpoch anchors the --now overrides used by the CLI tests.
var cliEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// nowArg formats an instant for the --now flag.
func nowArg(at time.Time) string {
	return at.Format(time.RFC3339)
}

// statusResult is the JSON shape of `keeper status --json`.
type statusResult struct {
	State string `json:"state"`
}

// balanceResult is the JSON shape of `keeper balance --json`.
type balanceResult struct {
	Owner  string `json:"owner"`
	Asset  string `json:"asset"`
	Amount uint64 `json:"amount"`
}

// payoutResult is the JSON shape of one `keeper withdraw --json` entry.
type payoutResult struct {
	Asset   string `json:"asset"`
	Amount  uint64 `json:"amount"`
	Skipped bool   `json:"skipped"`
}

func TestCLI_InitCreatesStorage(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunKeeper("init")
	if !strings.Contains(result.Stdout, "Keeper initialized successfully") {
		t.Errorf("unexpected init output: %s", result.Stdout)
	}

	if _, err := os.Stat(filepath.Join(env.DataDir, "heirloom.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestCLI_CreateAndStatus(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunKeeper("init")

	env.MustRunKeeper("create", "--now", nowArg(cliEpoch),
		"--owner", "alice", "--successor", "bob:10000")

	// Unknown owners report not_exist with a clean exit.
	result := env.MustRunKeeper("status", "--json", "--now", nowArg(cliEpoch), "--owner", "ghost")
	if got := ParseJSON[statusResult](t, result.Stdout); got.State != "not_exist" {
		t.Errorf("expected not_exist, got %q", got.State)
	}

	result = env.MustRunKeeper("status", "--json", "--now", nowArg(cliEpoch), "--owner", "alice")
	if got := ParseJSON[statusResult](t, result.Stdout); got.State != "owner_active" {
		t.Errorf("expected owner_active, got %q", got.State)
	}

	// Default lock is 360 days; one day past that the no-guardian
	// property is claimable.
	after := cliEpoch.Add(361 * 24 * time.Hour)
	result = env.MustRunKeeper("status", "--json", "--now", nowArg(after), "--owner", "alice")
	if got := ParseJSON[statusResult](t, result.Stdout); got.State != "unlocked" {
		t.Errorf("expected unlocked, got %q", got.State)
	}
}

func TestCLI_GuardianVoteFlow(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunKeeper("init")

	env.MustRunKeeper("create", "--now", nowArg(cliEpoch),
		"--owner", "alice", "--successor", "bob:10000",
		"--guardian", "gwen", "--guardian", "gil", "--quorum", "2")

	lapsed := cliEpoch.Add(361 * 24 * time.Hour)
	result := env.MustRunKeeper("status", "--json", "--now", nowArg(lapsed), "--owner", "alice")
	if got := ParseJSON[statusResult](t, result.Stdout); got.State != "vote_active" {
		t.Errorf("expected vote_active, got %q", got.State)
	}

	env.MustRunKeeper("vote", "--now", nowArg(lapsed), "--owner", "alice", "--voter", "gwen")
	result = env.MustRunKeeper("vote", "--now", nowArg(lapsed), "--owner", "alice", "--voter", "gil")
	if !strings.Contains(result.Stdout, "Vote recorded: 2/2") {
		t.Errorf("unexpected vote output: %s", result.Stdout)
	}

	// Quorum starts the 30-day confirmation delay.
	waiting := lapsed.Add(24 * time.Hour)
	result = env.MustRunKeeper("status", "--json", "--now", nowArg(waiting), "--owner", "alice")
	if got := ParseJSON[statusResult](t, result.Stdout); got.State != "confirmation_waiting" {
		t.Errorf("expected confirmation_waiting, got %q", got.State)
	}

	done := lapsed.Add(31 * 24 * time.Hour)
	result = env.MustRunKeeper("status", "--json", "--now", nowArg(done), "--owner", "alice")
	if got := ParseJSON[statusResult](t, result.Stdout); got.State != "unlocked" {
		t.Errorf("expected unlocked, got %q", got.State)
	}
}

func TestCLI_WithdrawFlow(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunKeeper("init")

	env.MustRunKeeper("fund", "--owner", "alice", "--asset", "gold", "--amount", "1000000")
	env.MustRunKeeper("create", "--now", nowArg(cliEpoch),
		"--owner", "alice", "--successor", "bob:10000")

	after := cliEpoch.Add(361 * 24 * time.Hour)
	result := env.MustRunKeeper("withdraw", "--json", "--now", nowArg(after),
		"--owner", "alice", "--successor", "bob", "--asset", "gold")
	payouts := ParseJSON[[]payoutResult](t, result.Stdout)
	if len(payouts) != 1 || payouts[0].Amount != 990000 {
		t.Fatalf("unexpected payouts: %+v", payouts)
	}

	result = env.MustRunKeeper("balance", "--json", "--owner", "bob", "--asset", "gold")
	if got := ParseJSON[balanceResult](t, result.Stdout); got.Amount != 990000 {
		t.Errorf("expected bob to hold 990000 gold, got %d", got.Amount)
	}

	// The configured fee collector took one percent.
	result = env.MustRunKeeper("balance", "--json", "--owner", "treasury", "--asset", "gold")
	if got := ParseJSON[balanceResult](t, result.Stdout); got.Amount != 10000 {
		t.Errorf("expected treasury to hold 10000 gold, got %d", got.Amount)
	}

	// A repeat claim is skipped.
	result = env.MustRunKeeper("withdraw", "--json", "--now", nowArg(after),
		"--owner", "alice", "--successor", "bob", "--asset", "gold")
	payouts = ParseJSON[[]payoutResult](t, result.Stdout)
	if len(payouts) != 1 || !payouts[0].Skipped {
		t.Fatalf("expected skipped payout, got %+v", payouts)
	}
}

func TestCLI_UserErrors(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunKeeper("init")

	// Missing required flags exit with the user-error code.
	result := env.RunKeeper("vote", "--owner", "alice")
	if result.ExitCode != 1 {
		t.Errorf("expected exit 1, got %d (stderr: %s)", result.ExitCode, result.Stderr)
	}

	// Shares that do not sum to the full scale are rejected.
	result = env.RunKeeper("create", "--now", nowArg(cliEpoch),
		"--owner", "alice", "--successor", "bob:4000")
	if result.ExitCode != 1 {
		t.Errorf("expected exit 1, got %d (stderr: %s)", result.ExitCode, result.Stderr)
	}
}
