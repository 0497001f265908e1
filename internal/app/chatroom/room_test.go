package chatroom

import (
	"errors"
	"testing"

	"shiftchat/internal/app/user"
)

func testUser(id int64, name string) *user.User {
	return user.NewRegistered(id, name, name, "secret")
}

func TestAddParticipantSetSemantics(t *testing.T) {
	room := NewRoom(1)
	alice := testUser(1, "alice")

	room.AddParticipant(alice)
	room.AddParticipant(alice)

	if got := len(room.Participants()); got != 1 {
		t.Fatalf("participants after duplicate add = %d, want 1", got)
	}
}

func TestAddParticipantNilIsNoOp(t *testing.T) {
	room := NewRoom(1)
	room.AddParticipant(nil)

	if got := len(room.Participants()); got != 0 {
		t.Fatalf("participants after nil add = %d, want 0", got)
	}
}

func TestRemoveParticipant(t *testing.T) {
	room := NewRoom(1)
	alice := testUser(1, "alice")
	bob := testUser(2, "bob")

	room.AddParticipant(alice)
	room.AddParticipant(bob)
	room.RemoveParticipant(alice)

	participants := room.Participants()
	if len(participants) != 1 || participants[0] != bob {
		t.Fatalf("participants after remove = %v, want only bob", participants)
	}

	// Removing an absent user is a no-op.
	room.RemoveParticipant(alice)
	if got := len(room.Participants()); got != 1 {
		t.Fatalf("participants after absent remove = %d, want 1", got)
	}
}

func TestSendMessageEncodesAndRecords(t *testing.T) {
	room := NewRoom(1)
	alice := testUser(1, "alice")
	room.AddParticipant(alice)

	ciphertext, err := room.SendMessage(alice, "hello")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if ciphertext != "khoor" {
		t.Fatalf("ciphertext = %q, want %q", ciphertext, "khoor")
	}

	history := room.History()
	if len(history) != 1 || history[0] != "alice : khoor" {
		t.Fatalf("history = %v, want [%q]", history, "alice : khoor")
	}

	sent := alice.SentMessages()
	if len(sent) != 1 || sent[0] != "hello" {
		t.Fatalf("sent messages = %v, want [%q]", sent, "hello")
	}
}

func TestSendMessageEmptyRejected(t *testing.T) {
	room := NewRoom(1)
	alice := testUser(1, "alice")

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := room.SendMessage(alice, text); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("SendMessage(%q) error = %v, want ErrInvalidArgument", text, err)
		}
	}

	if got := len(room.History()); got != 0 {
		t.Fatalf("history after rejected sends = %d entries, want 0", got)
	}
}

func TestReceiveMessageDecodesAndRecords(t *testing.T) {
	room := NewRoom(1)
	bob := testUser(2, "bob")
	room.AddParticipant(bob)

	if err := room.ReceiveMessage(bob, "khoor"); err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}

	history := room.History()
	if len(history) != 1 || history[0] != "bob : hello" {
		t.Fatalf("history = %v, want [%q]", history, "bob : hello")
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	room := NewRoom(1)
	alice := testUser(1, "alice")

	if _, err := room.SendMessage(alice, "first"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	history := room.History()
	history[0] = "tampered"

	if got := room.History()[0]; got == "tampered" {
		t.Fatal("History() exposed internal slice")
	}
}

func TestEntryFormat(t *testing.T) {
	if got := Entry("alice", "khoor"); got != "alice : khoor" {
		t.Fatalf("Entry = %q, want %q", got, "alice : khoor")
	}
}
