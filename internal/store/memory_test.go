package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	m.Put(ctx, "k", "v")
	got, err := m.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("expected v, got %q (%v)", got, err)
	}

	m.Delete(ctx, "k")
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreFail(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	quota := errors.New("quota exceeded")

	m.Fail(quota)
	if err := m.Put(ctx, "k", "v"); !errors.Is(err, quota) {
		t.Errorf("expected quota error from put, got %v", err)
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, quota) {
		t.Errorf("expected quota error from get, got %v", err)
	}
	if err := m.Delete(ctx, "k"); !errors.Is(err, quota) {
		t.Errorf("expected quota error from delete, got %v", err)
	}

	m.Fail(nil)
	if err := m.Put(ctx, "k", "v"); err != nil {
		t.Errorf("expected healed store, got %v", err)
	}
	if len(m.Dump()) != 1 {
		t.Errorf("expected 1 key in dump, got %d", len(m.Dump()))
	}
}
