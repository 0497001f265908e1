package session

import (
	"context"
	"errors"
	"testing"

	"shiftchat/internal/app/store"
)

func TestRegisterSetsCurrent(t *testing.T) {
	d := NewDirectory(store.NewMemoryStore())

	u, err := d.Register(context.Background(), "Alice", "alice", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if u.Online {
		t.Fatal("freshly registered user should start offline")
	}
	if d.Current() != u {
		t.Fatal("current user not set after registration")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	d := NewDirectory(store.NewMemoryStore())

	if _, err := d.Register(context.Background(), "Alice", "alice", "secret"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := d.Register(context.Background(), "Other", "alice", "different")
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("duplicate Register error = %v, want ErrAlreadyExists", err)
	}
}

func TestLoginFlipsOnline(t *testing.T) {
	st := store.NewMemoryStore()
	d := NewDirectory(st)

	if _, err := d.Register(context.Background(), "Alice", "alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := d.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !u.Online {
		t.Fatal("user not online after login")
	}
	if !d.IsOnline("alice") {
		t.Fatal("online map not updated after login")
	}

	stored, err := st.UserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	if !stored.Online {
		t.Fatal("online flag not persisted to store")
	}
}

func TestLoginWrongSecret(t *testing.T) {
	d := NewDirectory(store.NewMemoryStore())

	if _, err := d.Register(context.Background(), "Alice", "alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := d.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := d.Login(context.Background(), "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestSecondLoginReplacesCurrent(t *testing.T) {
	d := NewDirectory(store.NewMemoryStore())

	if _, err := d.Register(context.Background(), "Alice", "alice", "s1"); err != nil {
		t.Fatalf("Register alice: %v", err)
	}
	if _, err := d.Register(context.Background(), "Bob", "bob", "s2"); err != nil {
		t.Fatalf("Register bob: %v", err)
	}

	alice, err := d.Login(context.Background(), "alice", "s1")
	if err != nil {
		t.Fatalf("Login alice: %v", err)
	}
	if d.Current() != alice {
		t.Fatal("current user is not alice after her login")
	}

	bob, err := d.Login(context.Background(), "bob", "s2")
	if err != nil {
		t.Fatalf("Login bob: %v", err)
	}
	if d.Current() != bob {
		t.Fatal("second login did not replace the current user")
	}
}

func TestLogoutFlipsOfflineKeepsCurrent(t *testing.T) {
	st := store.NewMemoryStore()
	d := NewDirectory(st)

	if _, err := d.Register(context.Background(), "Alice", "alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u, err := d.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := d.Logout(context.Background(), u); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if u.Online {
		t.Fatal("user still online after logout")
	}
	if d.IsOnline("alice") {
		t.Fatal("online map still reports alice online")
	}

	stored, err := st.UserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	if stored.Online {
		t.Fatal("offline flag not persisted to store")
	}

	// The current pointer only moves on login.
	if d.Current() != u {
		t.Fatal("logout cleared the current user")
	}
}

func TestLogoutNilUser(t *testing.T) {
	d := NewDirectory(store.NewMemoryStore())

	if err := d.Logout(context.Background(), nil); err != nil {
		t.Fatalf("Logout(nil): %v", err)
	}
}
