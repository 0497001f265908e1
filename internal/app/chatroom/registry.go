/*
Package chatroom contains the core logic for chat rooms: participant tracking,
the ordered message history, and the encode-on-send / decode-on-receive message
pipeline.

This file defines the Registry, the in-process catalog of rooms known to the
running session together with the session's single "current room" pointer.
*/
package chatroom

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"shiftchat/internal/app/ident"
	"shiftchat/internal/app/user"
	"shiftchat/internal/pkg/logx"
)

// Registry tracks the rooms seen by the running process and the current room
// of the active session. The catalog accumulates: every join and leave appends
// the affected room, without deduplication.
type Registry struct {
	// mu protects rooms and current.
	mu sync.RWMutex

	alloc *ident.Allocator

	rooms []*Room

	// current is the active session's room pointer; nil means none.
	current *Room

	logger zerolog.Logger
}

// NewRegistry constructs a Registry drawing room ids from alloc.
func NewRegistry(alloc *ident.Allocator) *Registry {
	registryLogger := logx.Logger().With().Str("component", "Registry").Logger()

	return &Registry{
		alloc:  alloc,
		logger: registryLogger,
	}
}

// GenerateID returns a fresh session-scoped room identifier.
func (g *Registry) GenerateID() int64 {
	return g.alloc.Next()
}

// SetCurrent sets the session's current-room pointer.
func (g *Registry) SetCurrent(r *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.current = r
}

// Current returns the session's current room, or nil if none is set.
func (g *Registry) Current() *Room {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.current
}

// All returns a copy of the accumulated room catalog.
func (g *Registry) All() []*Room {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Room, len(g.rooms))
	copy(out, g.rooms)
	return out
}

// AddParticipantToRoom adds the user to the room, appends the room to the
// catalog, and makes it the session's current room. Nil arguments fail loudly
// and leave the registry untouched.
func (g *Registry) AddParticipantToRoom(u *user.User, r *Room) error {
	if u == nil || r == nil {
		return fmt.Errorf("add participant: user and room must be non-nil: %w", ErrInvalidArgument)
	}

	r.AddParticipant(u)

	g.mu.Lock()
	g.rooms = append(g.rooms, r)
	g.current = r
	g.mu.Unlock()

	g.logger.Info().
		Int64("user_id", u.ID).
		Int64("room_id", r.ID()).
		Msg("Participant added. Room is now current.")

	return nil
}

// RemoveParticipantFromRoom removes the user from the room, appends the room
// to the catalog, and clears the session's current-room pointer. The pointer
// is cleared even when other participants remain in the room. Nil arguments
// fail loudly and leave the registry untouched.
func (g *Registry) RemoveParticipantFromRoom(u *user.User, r *Room) error {
	if u == nil || r == nil {
		return fmt.Errorf("remove participant: user and room must be non-nil: %w", ErrInvalidArgument)
	}

	r.RemoveParticipant(u)

	g.mu.Lock()
	g.rooms = append(g.rooms, r)
	g.current = nil
	g.mu.Unlock()

	g.logger.Info().
		Int64("user_id", u.ID).
		Int64("room_id", r.ID()).
		Msg("Participant removed. Current room cleared.")

	return nil
}
