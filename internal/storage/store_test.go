package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "flashify.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmptySlotReadsAsEmptyString(t *testing.T) {
	store := openTestStore(t)

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Unexpected error reading an empty slot: %v", err)
	}
	if token != "" {
		t.Errorf("Expected an empty token, got %q", token)
	}
}

func TestSetAndClearToken(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetToken("tok-1"); err != nil {
		t.Fatalf("Failed to set token: %v", err)
	}
	token, err := store.Token()
	if err != nil || token != "tok-1" {
		t.Fatalf("Expected 'tok-1', got %q (err %v)", token, err)
	}

	// A later login replaces the slot in place.
	if err := store.SetToken("tok-2"); err != nil {
		t.Fatalf("Failed to replace token: %v", err)
	}
	token, _ = store.Token()
	if token != "tok-2" {
		t.Errorf("Expected 'tok-2' after replacement, got %q", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Failed to clear token: %v", err)
	}
	token, _ = store.Token()
	if token != "" {
		t.Errorf("Expected an empty slot after clear, got %q", token)
	}

	// Clearing again is harmless.
	if err := store.Clear(); err != nil {
		t.Errorf("Expected clearing an empty slot to succeed, got %v", err)
	}
}

func TestTokenSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flashify.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.SetToken("persisted"); err != nil {
		t.Fatalf("Failed to set token: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	token, err := reopened.Token()
	if err != nil || token != "persisted" {
		t.Errorf("Expected the token to survive a reopen, got %q (err %v)", token, err)
	}
}
