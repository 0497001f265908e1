package store

import (
	"context"
	"errors"
	"testing"
)

func TestStoreUserAssignsSequentialIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	alice, err := s.StoreUser(ctx, "Alice", "alice", "s1")
	if err != nil {
		t.Fatalf("StoreUser alice: %v", err)
	}
	bob, err := s.StoreUser(ctx, "Bob", "bob", "s2")
	if err != nil {
		t.Fatalf("StoreUser bob: %v", err)
	}

	if alice.ID != 1 || bob.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", alice.ID, bob.ID)
	}
}

func TestStoreUserDuplicateUsername(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.StoreUser(ctx, "Alice", "alice", "s1"); err != nil {
		t.Fatalf("StoreUser: %v", err)
	}
	if _, err := s.StoreUser(ctx, "Imposter", "alice", "s2"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate StoreUser error = %v, want ErrAlreadyExists", err)
	}
}

func TestUserByCredentialsExactMatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.StoreUser(ctx, "Alice", "alice", "secret"); err != nil {
		t.Fatalf("StoreUser: %v", err)
	}

	u, err := s.UserByCredentials(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("UserByCredentials: %v", err)
	}
	if u.Name != "Alice" {
		t.Fatalf("name = %q, want %q", u.Name, "Alice")
	}

	if _, err := s.UserByCredentials(ctx, "alice", "SECRET"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("case-mismatched secret error = %v, want ErrNotFound", err)
	}
}

func TestCreateRoomAddsCreatorMembership(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	alice, err := s.StoreUser(ctx, "Alice", "alice", "secret")
	if err != nil {
		t.Fatalf("StoreUser: %v", err)
	}

	roomID, err := s.CreateRoom(ctx, "general", alice.ID)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if got := s.MembershipCount(alice.ID, roomID); got != 1 {
		t.Fatalf("creator membership count = %d, want 1", got)
	}

	rec, err := s.RoomByID(ctx, roomID)
	if err != nil {
		t.Fatalf("RoomByID: %v", err)
	}
	if rec.Name != "general" {
		t.Fatalf("room name = %q, want %q", rec.Name, "general")
	}
}

func TestRoomLookups(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	alice, err := s.StoreUser(ctx, "Alice", "alice", "secret")
	if err != nil {
		t.Fatalf("StoreUser: %v", err)
	}
	firstID, err := s.CreateRoom(ctx, "general", alice.ID)
	if err != nil {
		t.Fatalf("CreateRoom general: %v", err)
	}
	secondID, err := s.CreateRoom(ctx, "random", alice.ID)
	if err != nil {
		t.Fatalf("CreateRoom random: %v", err)
	}

	rec, err := s.RoomByName(ctx, "random")
	if err != nil {
		t.Fatalf("RoomByName: %v", err)
	}
	if rec.ID != secondID {
		t.Fatalf("RoomByName id = %d, want %d", rec.ID, secondID)
	}

	if _, err := s.RoomByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown RoomByID error = %v, want ErrNotFound", err)
	}
	if _, err := s.RoomByName(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown RoomByName error = %v, want ErrNotFound", err)
	}

	rooms, err := s.Rooms(ctx)
	if err != nil {
		t.Fatalf("Rooms: %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != firstID || rooms[1].ID != secondID {
		t.Fatalf("Rooms = %v, want ids %d then %d", rooms, firstID, secondID)
	}
}

func TestRemoveMembershipAbsentPair(t *testing.T) {
	s := NewMemoryStore()

	if err := s.RemoveMembership(context.Background(), 7, 7); err != nil {
		t.Fatalf("RemoveMembership on absent pair: %v", err)
	}
}
