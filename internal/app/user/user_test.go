package user

import (
	"sync"
	"testing"
)

func TestNewRegistered(t *testing.T) {
	u := NewRegistered(1, "Alice", "alice", "secret")

	if !u.Registered() {
		t.Fatal("registered user reports Registered() == false")
	}
	if u.Username() != "alice" {
		t.Fatalf("username = %q, want %q", u.Username(), "alice")
	}
	if u.Online {
		t.Fatal("new user should start offline")
	}
}

func TestGuestHasNoCredentials(t *testing.T) {
	guest := &User{ID: 2, Name: "guest"}

	if guest.Registered() {
		t.Fatal("guest reports Registered() == true")
	}
	if guest.Username() != "" {
		t.Fatalf("guest username = %q, want empty", guest.Username())
	}
}

func TestRecordSentOrderPreserved(t *testing.T) {
	u := NewRegistered(1, "Alice", "alice", "secret")

	u.RecordSent("first")
	u.RecordSent("second")

	sent := u.SentMessages()
	if len(sent) != 2 || sent[0] != "first" || sent[1] != "second" {
		t.Fatalf("sent = %v, want [first second]", sent)
	}

	// The returned slice is a copy.
	sent[0] = "tampered"
	if u.SentMessages()[0] != "first" {
		t.Fatal("SentMessages exposed internal slice")
	}
}

func TestRecordSentConcurrent(t *testing.T) {
	u := NewRegistered(1, "Alice", "alice", "secret")

	const messages = 100
	var wg sync.WaitGroup
	for i := 0; i < messages; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u.RecordSent("m")
		}()
	}
	wg.Wait()

	if got := len(u.SentMessages()); got != messages {
		t.Fatalf("sent count = %d, want %d", got, messages)
	}
}
