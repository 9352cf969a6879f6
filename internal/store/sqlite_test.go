package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Put(ctx, "calmish_wellness", `{"mood":4}`); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "calmish_wellness")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"mood":4}` {
		t.Errorf("expected blob back, got %q", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, "k", "v1")
	s.Put(ctx, "k", "v2")

	got, _ := s.Get(ctx, "k")
	if got != "v2" {
		t.Errorf("expected 'v2', got %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, "k", "v")
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting twice is fine.
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Put(ctx, "calmish_user", `{"name":"Ana"}`)
	s.Close()

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, "calmish_user")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != `{"name":"Ana"}` {
		t.Errorf("unexpected blob %q", got)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestStatsFiltersByPrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, "calmish_user", "{}")
	s.Put(ctx, "calmish_wellness", `{"mood":3}`)
	s.Put(ctx, "other_thing", "x")

	st, err := s.Stats(ctx, "calmish_")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalKeys != 2 {
		t.Fatalf("expected 2 keys, got %d", st.TotalKeys)
	}
	if st.Keys[0].Key != "calmish_user" || st.Keys[1].Key != "calmish_wellness" {
		t.Errorf("unexpected keys %+v", st.Keys)
	}
	if st.Keys[1].Bytes != len(`{"mood":3}`) {
		t.Errorf("expected byte count %d, got %d", len(`{"mood":3}`), st.Keys[1].Bytes)
	}
	if st.DBPath == "" {
		t.Error("expected db path")
	}
}
