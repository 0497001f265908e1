package chatroom

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadHistory(t *testing.T) {
	room := NewRoom(1)
	alice := testUser(1, "alice")

	for _, text := range []string{"hello", "how are you"} {
		if _, err := room.SendMessage(alice, text); err != nil {
			t.Fatalf("SendMessage(%q): %v", text, err)
		}
	}

	path := filepath.Join(t.TempDir(), "room-1.txt")
	if err := room.SaveHistory(path); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}

	lines, err := room.LoadHistory(path)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}

	want := []string{"alice : khoor", "alice : krz duh brx"}
	if len(lines) != len(want) {
		t.Fatalf("loaded %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i, line := range lines {
		if line != want[i] {
			t.Errorf("line %d = %q, want %q", i, line, want[i])
		}
	}
}

func TestSaveHistoryEmptyRoom(t *testing.T) {
	room := NewRoom(2)

	path := filepath.Join(t.TempDir(), "room-2.txt")
	if err := room.SaveHistory(path); err != nil {
		t.Fatalf("SaveHistory on empty room: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(content) != 0 {
		t.Fatalf("empty room snapshot has content: %q", content)
	}

	lines, err := room.LoadHistory(path)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("loaded %d lines from empty snapshot, want 0", len(lines))
	}
}

func TestLoadHistoryDoesNotMutateLiveHistory(t *testing.T) {
	room := NewRoom(3)
	alice := testUser(1, "alice")

	if _, err := room.SendMessage(alice, "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	path := filepath.Join(t.TempDir(), "room-3.txt")
	if err := room.SaveHistory(path); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}

	if _, err := room.LoadHistory(path); err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}

	// Loaded lines are for display; the live history keeps its own entries.
	if got := len(room.History()); got != 1 {
		t.Fatalf("history after load = %d entries, want 1", got)
	}
}

func TestLoadHistoryMissingFile(t *testing.T) {
	room := NewRoom(4)

	if _, err := room.LoadHistory(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("LoadHistory on missing file returned nil error")
	}
}
