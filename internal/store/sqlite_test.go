package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *SQLiteRepo {
	t.Helper()
	r, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "streak.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRepo_PutGet(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)

	if err := r.Put(ctx, 42, "alice"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := r.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "alice" {
		t.Fatalf("want alice, got %s", got)
	}

	if err := r.Put(ctx, 42, "bob"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("want ErrAlreadyRegistered, got %v", err)
	}
	if _, err := r.Get(ctx, 999); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("want ErrNotRegistered, got %v", err)
	}
}

func TestSQLiteRepo_AllCount(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)

	for id, name := range map[int64]string{1: "alice", 2: "bob"} {
		if err := r.Put(ctx, id, name); err != nil {
			t.Fatalf("put %d: %v", id, err)
		}
	}

	n, err := r.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("want count 2, got %d (%v)", n, err)
	}
	all, err := r.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all[1] != "alice" || all[2] != "bob" {
		t.Fatalf("unexpected mapping: %v", all)
	}
}
