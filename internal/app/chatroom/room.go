/*
Package chatroom contains the core logic for chat rooms: participant tracking,
the ordered message history, and the encode-on-send / decode-on-receive message
pipeline.

This file defines the Room struct, the entity owning a single room's
participant list and history. History entries are recorded in the fixed
"<name> : <text>" line format so they round-trip through the history file
unchanged.
*/
package chatroom

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"shiftchat/internal/app/cipher"
	"shiftchat/internal/app/user"
	"shiftchat/internal/pkg/logx"
)

// ErrInvalidArgument reports a nil user, nil room, or empty message passed to
// an operation that requires one. It indicates a caller bug, not an
// environmental fault.
var ErrInvalidArgument = errors.New("invalid argument")

// Room represents a single chat room with its participants and ordered,
// append-only message history.
type Room struct {
	// id is assigned once at creation and never changes.
	id int64

	// mu protects name, participants, and history.
	mu sync.RWMutex

	// name is mutable until the room is first persisted.
	name string

	// participants has set semantics: a user id appears at most once.
	participants []*user.User

	// history holds "<name> : <text>" entries in arrival order. It is never
	// reordered or truncated.
	history []string

	// structured logger with room context.
	logger zerolog.Logger
}

// NewRoom creates a Room with the given id. The name can be set later, up to
// the point the room is persisted.
func NewRoom(id int64) *Room {
	roomLogger := logx.Logger().With().
		Int64("room_id", id).
		Logger()

	return &Room{
		id:     id,
		logger: roomLogger,
	}
}

// ID returns the room's immutable identifier.
func (r *Room) ID() int64 {
	return r.id
}

// Name returns the room's display name.
func (r *Room) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.name
}

// SetName updates the room's display name.
func (r *Room) SetName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.name = name
}

// AddParticipant adds a user to the room. Adding a user whose id is already
// present is a no-op, as is adding nil.
func (r *Room) AddParticipant(u *user.User) {
	if u == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.participants {
		if p.ID == u.ID {
			return
		}
	}

	r.participants = append(r.participants, u)
}

// RemoveParticipant removes the first participant with a matching id. Removing
// an absent user or nil is a no-op.
func (r *Room) RemoveParticipant(u *user.User) {
	if u == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.participants {
		if p.ID == u.ID {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return
		}
	}
}

// Participants returns a copy of the current participant list.
func (r *Room) Participants() []*user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*user.User, len(r.participants))
	copy(out, r.participants)
	return out
}

// SendMessage encodes plaintext with the fixed shift, records the result in
// the history under the sender's name, and returns the ciphertext.
// The participant list is not touched.
func (r *Room) SendMessage(sender *user.User, plaintext string) (string, error) {
	if sender == nil || strings.TrimSpace(plaintext) == "" {
		return "", fmt.Errorf("send message: %w", ErrInvalidArgument)
	}

	ciphertext := cipher.Encode(plaintext, cipher.DefaultShift)

	r.mu.Lock()
	r.history = append(r.history, Entry(sender.Name, ciphertext))
	r.mu.Unlock()

	sender.RecordSent(plaintext)

	r.logger.Debug().
		Int64("sender_id", sender.ID).
		Msg("Message recorded.")

	return ciphertext, nil
}

// ReceiveMessage decodes ciphertext with the fixed shift and records the
// plaintext in the history under the receiver's name.
func (r *Room) ReceiveMessage(receiver *user.User, ciphertext string) error {
	if receiver == nil || strings.TrimSpace(ciphertext) == "" {
		return fmt.Errorf("receive message: %w", ErrInvalidArgument)
	}

	plaintext := cipher.Decode(ciphertext, cipher.DefaultShift)

	r.mu.Lock()
	r.history = append(r.history, Entry(receiver.Name, plaintext))
	r.mu.Unlock()

	r.logger.Debug().
		Int64("receiver_id", receiver.ID).
		Msg("Message decoded and recorded.")

	return nil
}

// History returns a copy of the room's message history.
func (r *Room) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

// Entry formats a history line the way it is recorded and persisted.
func Entry(name, text string) string {
	return name + " : " + text
}
