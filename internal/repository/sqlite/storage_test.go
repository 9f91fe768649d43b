package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// newTestDB returns a fresh in-memory database that is closed when the test
// finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetItem_Missing(t *testing.T) {
	db := newTestDB(t)

	value, ok, err := db.GetItem(context.Background(), "client-a", "token")
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if ok {
		t.Errorf("GetItem() ok = true for missing key (value %q)", value)
	}
}

func TestSetItem_RoundTripAndOverwrite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SetItem(ctx, "client-a", "theme", "light"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := db.SetItem(ctx, "client-a", "theme", "dark"); err != nil {
		t.Fatalf("SetItem() overwrite error = %v", err)
	}

	value, ok, err := db.GetItem(ctx, "client-a", "theme")
	if err != nil || !ok {
		t.Fatalf("GetItem() = %q, %v, %v", value, ok, err)
	}
	if value != "dark" {
		t.Errorf("GetItem() = %q, want %q", value, "dark")
	}
}

func TestClientsAreIsolated(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SetItem(ctx, "client-a", "token", "tok-a"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	if _, ok, _ := db.GetItem(ctx, "client-b", "token"); ok {
		t.Error("client-b can read client-a's token")
	}
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_ = db.SetItem(ctx, "client-a", "token", "tok")
	_ = db.SetItem(ctx, "client-a", "user", `{"id":1}`)

	if err := db.RemoveItem(ctx, "client-a", "token"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	// Removing again is fine.
	if err := db.RemoveItem(ctx, "client-a", "token"); err != nil {
		t.Fatalf("RemoveItem() second call error = %v", err)
	}

	keys, err := db.Keys(ctx, "client-a")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "user" {
		t.Errorf("Keys() = %v, want [user]", keys)
	}
}

func TestMigrate_LocalStorageColumns(t *testing.T) {
	db := newTestDB(t)

	rows, err := db.conn.Query(`SELECT name FROM pragma_table_info('local_storage') ORDER BY cid`)
	if err != nil {
		t.Fatalf("reading table info: %v", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scanning column: %v", err)
		}
		columns = append(columns, name)
	}

	want := []string{"client_id", "key", "value", "created_at", "updated_at"}
	if strings.Join(columns, ",") != strings.Join(want, ",") {
		t.Errorf("columns = %v, want %v", columns, want)
	}

	// Running the migration again must leave the table as it is.
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}

func TestSetItem_OverwriteKeepsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_ = db.SetItem(ctx, "client-a", "theme", "light")
	var first string
	if err := db.conn.QueryRow(`SELECT created_at FROM local_storage WHERE client_id = 'client-a'`).Scan(&first); err != nil {
		t.Fatalf("reading created_at: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	_ = db.SetItem(ctx, "client-a", "theme", "dark")
	var second string
	if err := db.conn.QueryRow(`SELECT created_at FROM local_storage WHERE client_id = 'client-a'`).Scan(&second); err != nil {
		t.Fatalf("reading created_at: %v", err)
	}

	if first != second {
		t.Errorf("created_at changed on overwrite: %q -> %q", first, second)
	}
}

func TestNew_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")
	ctx := context.Background()

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.SetItem(ctx, "client-a", "token", "persisted"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	db.Close()

	// Reopening runs the migrations again; they must be idempotent.
	db, err = New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer db.Close()

	value, ok, err := db.GetItem(ctx, "client-a", "token")
	if err != nil || !ok || value != "persisted" {
		t.Errorf("GetItem() after reopen = %q, %v, %v", value, ok, err)
	}
}
