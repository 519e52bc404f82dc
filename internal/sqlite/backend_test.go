// Tests for the SQLite backend lifecycle: attach, detach, table lookup,
// and database reuse across sessions.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// newTestBackend creates a backend attached to a temp directory.
func newTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	b, dir := newTestBackend(t)
	defer b.Detach()

	// Verify database file created
	dbPath := filepath.Join(dir, "heirloom.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("heirloom.db not created")
	}

	// Verify double attach fails
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{
			name:    "empty backend",
			config:  types.Config{Backend: ""},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  types.Config{Backend: "postgres"},
			wantErr: types.ErrBackendUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			tt.config.DataDir = t.TempDir()
			if err := b.Attach(tt.config); err != tt.wantErr {
				t.Errorf("Attach() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b, _ := newTestBackend(t)

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Idempotent
	if err := b.Detach(); err != nil {
		t.Fatalf("second Detach failed: %v", err)
	}

	// Operations after detach fail
	if _, err := b.GetTable(types.TableProperties); err != types.ErrVaultDetached {
		t.Errorf("expected ErrVaultDetached, got %v", err)
	}
	if _, err := b.Ledger(); err != types.ErrVaultDetached {
		t.Errorf("expected ErrVaultDetached from Ledger, got %v", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b, _ := newTestBackend(t)
	defer b.Detach()

	for _, name := range types.StandardTableNames {
		if _, err := b.GetTable(name); err != nil {
			t.Errorf("GetTable(%s): %v", name, err)
		}
	}

	if _, err := b.GetTable("no-such-table"); err != types.ErrTableNotFound {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestBackend_ReattachReusesDatabase(t *testing.T) {
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	tbl, err := b.GetTable(types.TableProperties)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	prop := &types.Property{
		Owner:          "alice",
		ExpirationTime: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Successors: types.SuccessorSet{
			Shares: []types.ShareEntry{{Address: "bob", Share: types.ShareScale}},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := tbl.Set("alice", prop); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	// A second session over the same directory sees the row.
	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatalf("re-Attach: %v", err)
	}
	defer b2.Detach()

	tbl, err = b2.GetTable(types.TableProperties)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	got, err := tbl.Get("alice")
	if err != nil {
		t.Fatalf("Get after reattach: %v", err)
	}
	reloaded := got.(*types.Property)
	if !reloaded.ExpirationTime.Equal(prop.ExpirationTime) {
		t.Errorf("ExpirationTime = %v, want %v", reloaded.ExpirationTime, prop.ExpirationTime)
	}
}
