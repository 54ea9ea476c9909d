package highscore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestLoadOrCreatePlayerID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".depthscraper")

	first, err := LoadOrCreatePlayerID(dir)
	if err != nil {
		t.Fatalf("LoadOrCreatePlayerID() failed: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("ID %q is not a UUID: %v", first, err)
	}

	second, err := LoadOrCreatePlayerID(dir)
	if err != nil {
		t.Fatalf("LoadOrCreatePlayerID() failed: %v", err)
	}
	if first != second {
		t.Errorf("ID should persist, got %q then %q", first, second)
	}
}

func TestLoadOrCreatePlayerIDReplacesGarbage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, playerIDFile), []byte("not-a-uuid"), 0o600); err != nil {
		t.Fatal(err)
	}

	id, err := LoadOrCreatePlayerID(dir)
	if err != nil {
		t.Fatalf("LoadOrCreatePlayerID() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("ID %q is not a UUID", id)
	}
}

func TestPlayerIDForName(t *testing.T) {
	a := PlayerIDForName("ada")
	if a != PlayerIDForName("  ada ") {
		t.Error("Name-derived IDs should ignore surrounding spaces")
	}
	if a == PlayerIDForName("bob") {
		t.Error("Different names should yield different IDs")
	}
	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("ID %q is not a UUID: %v", a, err)
	}
	if parsed.Version() != 5 {
		t.Errorf("Version = %d, expected 5", parsed.Version())
	}
}
