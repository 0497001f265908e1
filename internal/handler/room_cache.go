package handler

import (
	"context"
	"sync"

	"shiftchat/internal/app/chatroom"
	"shiftchat/internal/app/store"
)

// RoomCache maps persisted room ids to the room entities materialized in this
// process. A room seen for the first time is fetched from the store and given
// an in-memory entity; later requests reuse it, so participants and history
// accumulate on a single instance.
type RoomCache struct {
	mu    sync.Mutex
	st    store.Store
	rooms map[int64]*chatroom.Room
}

// NewRoomCache constructs an empty cache over the given store.
func NewRoomCache(st store.Store) *RoomCache {
	return &RoomCache{
		st:    st,
		rooms: make(map[int64]*chatroom.Room),
	}
}

// Put registers a freshly created room entity.
func (c *RoomCache) Put(room *chatroom.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms[room.ID()] = room
}

// Get returns the cached entity for id, or nil.
func (c *RoomCache) Get(id int64) *chatroom.Room {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rooms[id]
}

// Materialize returns the entity for id, resolving it through the store when
// the process has not seen the room yet. store.ErrNotFound passes through for
// unknown rooms.
func (c *RoomCache) Materialize(ctx context.Context, id int64) (*chatroom.Room, error) {
	c.mu.Lock()
	if room, ok := c.rooms[id]; ok {
		c.mu.Unlock()
		return room, nil
	}
	c.mu.Unlock()

	// Store lookup happens outside the cache lock; a racing request may
	// materialize the same room, in which case the first entity wins.
	rec, err := c.st.RoomByID(ctx, id)
	if err != nil {
		return nil, err
	}

	room := chatroom.NewRoom(rec.ID)
	room.SetName(rec.Name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.rooms[id]; ok {
		return existing, nil
	}
	c.rooms[id] = room

	return room, nil
}
