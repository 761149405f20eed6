package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T, ttl time.Duration, maxTurns int, opts ...SQLiteOption) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := OpenSQLite(path, ttl, maxTurns, opts...)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t, time.Hour, 0)
	ctx := context.Background()

	turns := []Turn{
		{Role: RoleHuman, Text: "any good heist movies?"},
		{Role: RoleAssistant, Text: "Heat is a classic."},
	}
	if err := store.Put(ctx, "192.168.1.5", turns); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "192.168.1.5")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 || got[1].Text != "Heat is a classic." {
		t.Fatalf("unexpected history %+v", got)
	}
}

func TestSQLiteStorePutReplacesHistory(t *testing.T) {
	store := newTestSQLiteStore(t, time.Hour, 0)
	ctx := context.Background()

	if err := store.Put(ctx, "k", []Turn{{Role: RoleHuman, Text: "first"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	replacement := []Turn{
		{Role: RoleHuman, Text: "first"},
		{Role: RoleAssistant, Text: "second"},
	}
	if err := store.Put(ctx, "k", replacement); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 || got[1].Text != "second" {
		t.Fatalf("unexpected history %+v", got)
	}
}

func TestSQLiteStoreExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newTestSQLiteStore(t, 30*time.Minute, 0, WithSQLiteClock(func() time.Time { return now }))
	ctx := context.Background()

	if err := store.Put(ctx, "k", []Turn{{Role: RoleHuman, Text: "hi"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	now = now.Add(31 * time.Minute)
	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected expired session to be empty, got %+v", got)
	}
}

func TestSQLiteStoreSweepRemovesStaleSessions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newTestSQLiteStore(t, 30*time.Minute, 0, WithSQLiteClock(func() time.Time { return now }))
	ctx := context.Background()

	if err := store.Put(ctx, "stale", []Turn{{Role: RoleHuman, Text: "old"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	now = now.Add(time.Hour)
	if err := store.Put(ctx, "fresh", []Turn{{Role: RoleHuman, Text: "new"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	removed, err := store.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}
	got, err := store.Get(ctx, "fresh")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("fresh session should survive sweep, got %+v", got)
	}
}

func TestSQLiteStoreTrimsToMaxTurns(t *testing.T) {
	store := newTestSQLiteStore(t, time.Hour, 2)
	ctx := context.Background()

	turns := []Turn{
		{Role: RoleHuman, Text: "one"},
		{Role: RoleAssistant, Text: "two"},
		{Role: RoleHuman, Text: "three"},
	}
	if err := store.Put(ctx, "k", turns); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 || got[0].Text != "two" {
		t.Fatalf("expected most recent turns kept, got %+v", got)
	}
}

func TestSQLiteStoreReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := OpenSQLite(path, time.Hour, 0)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := store.Put(ctx, "k", []Turn{{Role: RoleHuman, Text: "hello"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(path, time.Hour, 0)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "hello" {
		t.Fatalf("history lost across reopen: %+v", got)
	}
}
