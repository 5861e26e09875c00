package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok := store.Get(ctx, "key")
	if !ok || got != "value" {
		t.Fatalf("expected value, got %q (ok=%v)", got, ok)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "key", "value", 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, ok := store.Get(ctx, "key"); ok {
		t.Fatal("expired entry must not be returned")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "key", "value", time.Minute)
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, "key"); ok {
		t.Fatal("deleted entry must not be returned")
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get(context.Background(), "absent"); ok {
		t.Fatal("missing key must report not found")
	}
}
