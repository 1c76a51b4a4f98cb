package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeck/qcdesk-backend/internal/data/db"
	"github.com/opsdeck/qcdesk-backend/internal/data/repos"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

func newSQLiteBackend(t *testing.T) Backend {
	t.Helper()
	t.Setenv("LOCAL_STORE_PATH", filepath.Join(t.TempDir(), "store.db"))
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	gdb, err := db.OpenSQLite(log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormBackend("local", gdb, repos.NewSet(gdb, log), log)
}

func account(email string) *types.Account {
	return &types.Account{
		ID:        uuid.New(),
		Name:      "Ama",
		Role:      types.RoleAgent,
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// A deleted account's email must be reusable: deletes are hard removes, so
// the unique index on email cannot keep holding the old row.
func TestDeletedAccountEmailIsReusable(t *testing.T) {
	backend := newSQLiteBackend(t)
	ctx := context.Background()

	first := account("ama@qcdesk.io")
	if err := backend.UpsertAccount(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := backend.DeleteAccount(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := backend.UpsertAccount(ctx, account("ama@qcdesk.io")); err != nil {
		t.Fatalf("re-creating with a deleted account's email must succeed: %v", err)
	}

	accounts, err := backend.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("want exactly the re-created account, got %d rows", len(accounts))
	}
}
