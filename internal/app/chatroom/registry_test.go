package chatroom

import (
	"errors"
	"testing"

	"shiftchat/internal/app/ident"
)

func TestGenerateIDSequential(t *testing.T) {
	reg := NewRegistry(ident.NewAllocator())

	first := reg.GenerateID()
	second := reg.GenerateID()
	if first != 1 || second != 2 {
		t.Fatalf("GenerateID sequence = %d, %d, want 1, 2", first, second)
	}
}

func TestAddParticipantToRoomSetsCurrent(t *testing.T) {
	reg := NewRegistry(ident.NewAllocator())
	room := NewRoom(reg.GenerateID())
	alice := testUser(1, "alice")

	if err := reg.AddParticipantToRoom(alice, room); err != nil {
		t.Fatalf("AddParticipantToRoom: %v", err)
	}

	if reg.Current() != room {
		t.Fatal("current room not set after join")
	}
	if got := len(room.Participants()); got != 1 {
		t.Fatalf("participants = %d, want 1", got)
	}
}

func TestAddParticipantToRoomNilArguments(t *testing.T) {
	reg := NewRegistry(ident.NewAllocator())
	room := NewRoom(1)
	alice := testUser(1, "alice")

	if err := reg.AddParticipantToRoom(nil, room); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil user error = %v, want ErrInvalidArgument", err)
	}
	if err := reg.AddParticipantToRoom(alice, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil room error = %v, want ErrInvalidArgument", err)
	}
	if err := reg.RemoveParticipantFromRoom(nil, room); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil user remove error = %v, want ErrInvalidArgument", err)
	}

	// Rejected calls leave the registry untouched.
	if got := len(reg.All()); got != 0 {
		t.Fatalf("catalog entries after rejected calls = %d, want 0", got)
	}
	if reg.Current() != nil {
		t.Fatal("current room set by a rejected call")
	}
	if got := len(room.Participants()); got != 0 {
		t.Fatalf("participants after rejected calls = %d, want 0", got)
	}
}

func TestRemoveParticipantClearsCurrent(t *testing.T) {
	reg := NewRegistry(ident.NewAllocator())
	room := NewRoom(reg.GenerateID())
	alice := testUser(1, "alice")
	bob := testUser(2, "bob")

	if err := reg.AddParticipantToRoom(alice, room); err != nil {
		t.Fatalf("add alice: %v", err)
	}
	if err := reg.AddParticipantToRoom(bob, room); err != nil {
		t.Fatalf("add bob: %v", err)
	}

	if err := reg.RemoveParticipantFromRoom(alice, room); err != nil {
		t.Fatalf("remove alice: %v", err)
	}

	// The current pointer clears on any removal, even with participants left.
	if reg.Current() != nil {
		t.Fatal("current room not cleared after participant removal")
	}
	if got := len(room.Participants()); got != 1 {
		t.Fatalf("participants after remove = %d, want 1", got)
	}
}

func TestCatalogAccumulatesOnAddAndRemove(t *testing.T) {
	reg := NewRegistry(ident.NewAllocator())
	room := NewRoom(reg.GenerateID())
	alice := testUser(1, "alice")

	if err := reg.AddParticipantToRoom(alice, room); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := reg.RemoveParticipantFromRoom(alice, room); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// Both operations append to the catalog; entries are never deduplicated.
	if got := len(reg.All()); got != 2 {
		t.Fatalf("catalog entries = %d, want 2", got)
	}
}
