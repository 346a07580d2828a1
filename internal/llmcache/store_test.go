package llmcache

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func openTestStore(t *testing.T, clock *fakeClock) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache", "responses.db"), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestKeyDependsOnEveryComponent(t *testing.T) {
	settings := Settings{
		Provider:    "gemini",
		Model:       "gemini-2.0-flash-exp",
		Endpoint:    "https://generativelanguage.googleapis.com/v1beta",
		Temperature: 0.7,
		MaxTokens:   256,
	}
	base := Key(settings, "prompt")
	if base != Key(settings, "prompt") {
		t.Fatal("expected key to be deterministic")
	}

	variants := map[string]func(*Settings){
		"provider":    func(s *Settings) { s.Provider = "groq" },
		"model":       func(s *Settings) { s.Model = "other" },
		"endpoint":    func(s *Settings) { s.Endpoint = "https://proxy.example/v1" },
		"temperature": func(s *Settings) { s.Temperature = 0 },
		"max_tokens":  func(s *Settings) { s.MaxTokens = 512 },
	}
	for name, mutate := range variants {
		changed := settings
		mutate(&changed)
		if Key(changed, "prompt") == base {
			t.Fatalf("expected %s change to produce a distinct key", name)
		}
	}
	if Key(settings, "prompt2") == base {
		t.Fatal("expected prompt change to produce a distinct key")
	}
	if len(base) != 64 {
		t.Fatalf("expected hex sha256, got %q", base)
	}
}

func TestStorePutGetExpire(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	store := openTestStore(t, clock)
	ctx := context.Background()

	key := Key(Settings{Provider: "gemini", Model: "m"}, "p")
	if err := store.Put(ctx, key, "gemini", "m", "warehouse, dark", time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	entry, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected cache hit, ok=%v err=%v", ok, err)
	}
	if entry.Response != "warehouse, dark" || entry.Provider != "gemini" || entry.Model != "m" {
		t.Fatalf("unexpected entry %#v", entry)
	}
	if !entry.ExpiresAt.Equal(clock.Now().Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", entry.ExpiresAt)
	}

	clock.Advance(2 * time.Hour)
	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected expired entry to miss, ok=%v err=%v", ok, err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Entries != 1 || stats.Expired != 1 {
		t.Fatalf("unexpected stats %#v", stats)
	}
	removed, err := store.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned entry, got %d", removed)
	}
}

func TestStorePutOverwrites(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := openTestStore(t, clock)
	ctx := context.Background()

	if err := store.Put(ctx, "k", "p", "m", "first", time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "k", "p", "m", "second", time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	entry, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if entry.Response != "second" {
		t.Fatalf("expected overwrite, got %q", entry.Response)
	}
	removed, err := store.Clear(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("Clear removed=%d err=%v", removed, err)
	}
}

func TestStorePutZeroTTLIsNoop(t *testing.T) {
	store := openTestStore(t, &fakeClock{now: time.Now()})
	ctx := context.Background()
	if err := store.Put(ctx, "k", "p", "m", "value", 0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected zero ttl to skip caching")
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.db")
	clock := &fakeClock{now: time.Now()}
	first, err := Open(path, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := first.Put(context.Background(), "k", "p", "m", "kept", time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	_ = first.Close()

	second, err := Open(path, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()
	entry, ok, err := second.Get(context.Background(), "k")
	if err != nil || !ok || entry.Response != "kept" {
		t.Fatalf("expected persisted entry, got %#v ok=%v err=%v", entry, ok, err)
	}
}

func TestOpenDetectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
