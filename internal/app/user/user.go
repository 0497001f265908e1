/*
Package user contains core data structures related to user identity.

It defines the basic representation of a chat participant (the User struct)
and the richer registered variant carrying login credentials. The registered
capabilities are modeled as an optional Credentials field on a single composite
record rather than an inheritance hierarchy.
*/
package user

import "sync"

// User represents the basic identity information of a chat participant.
type User struct {

	// ID is the unique numeric identifier for the user.
	ID int64 `json:"id"`

	// Name is the display name shown next to recorded messages.
	Name string `json:"name"`

	// Online reports whether the user currently has an active session.
	// A freshly created user is offline.
	Online bool `json:"online"`

	// Credentials is set only for registered users; nil means guest.
	Credentials *Credentials `json:"-"`

	// mu protects sent below.
	mu sync.Mutex

	// sent is a local, append-only cache of message bodies this user has
	// sent during the session. It is not authoritative.
	sent []string
}

// Credentials carries the login identity of a registered user.
type Credentials struct {
	// Username is the unique handle used to sign in.
	Username string

	// Secret is the credential matched exactly by the store on login.
	Secret string
}

// NewRegistered builds a registered user with the given identity and credentials.
func NewRegistered(id int64, name, username, secret string) *User {
	return &User{
		ID:   id,
		Name: name,
		Credentials: &Credentials{
			Username: username,
			Secret:   secret,
		},
	}
}

// Registered reports whether the user carries login credentials.
func (u *User) Registered() bool {
	return u.Credentials != nil
}

// Username returns the login handle, or "" for guests.
func (u *User) Username() string {
	if u.Credentials == nil {
		return ""
	}
	return u.Credentials.Username
}

// RecordSent appends a message body to the user's local sent cache.
func (u *User) RecordSent(message string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.sent = append(u.sent, message)
}

// SentMessages returns a copy of the user's sent-message cache.
func (u *User) SentMessages() []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]string, len(u.sent))
	copy(out, u.sent)
	return out
}
