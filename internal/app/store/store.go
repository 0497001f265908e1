/*
Package store defines the narrow boundary to the durable store and its
implementations.

The rest of the application only ever reaches persistence through the Store
interface; the concrete driver (Postgres, or the in-memory store used in
development and tests) stays behind it.
*/
package store

import (
	"context"
	"errors"

	"shiftchat/internal/app/user"
)

// ErrNotFound is returned by lookups that find nothing. It is an explicit
// absent value, not a store failure.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned by StoreUser when the username is taken.
var ErrAlreadyExists = errors.New("already exists")

// RoomRecord is the persisted form of a chat room.
type RoomRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Store is the transactional boundary to the durable store. All operations
// are synchronous; failures are reported through the returned error.
type Store interface {
	// StoreUser persists a new registered user and returns it with the
	// store-assigned id.
	StoreUser(ctx context.Context, name, username, secret string) (*user.User, error)

	// UserByCredentials looks a user up by exact username and secret match.
	// Returns ErrNotFound when no such user exists.
	UserByCredentials(ctx context.Context, username, secret string) (*user.User, error)

	// UserByUsername looks a user up by username alone.
	// Returns ErrNotFound when no such user exists.
	UserByUsername(ctx context.Context, username string) (*user.User, error)

	// UpdateOnlineStatus flips the persisted online flag for the user.
	UpdateOnlineStatus(ctx context.Context, userID int64, online bool) error

	// CreateRoom persists a new room and the creator's membership in the same
	// operation, returning the store-assigned room id.
	CreateRoom(ctx context.Context, name string, creatorID int64) (int64, error)

	// RoomByID returns the room with the given id, or ErrNotFound.
	RoomByID(ctx context.Context, id int64) (*RoomRecord, error)

	// RoomByName returns the room with the given name, or ErrNotFound.
	RoomByName(ctx context.Context, name string) (*RoomRecord, error)

	// Rooms returns every persisted room.
	Rooms(ctx context.Context) ([]RoomRecord, error)

	// InsertMembership associates the user with the room at most once.
	// Repeating the call for an existing pair succeeds without effect.
	InsertMembership(ctx context.Context, userID, roomID int64) error

	// RemoveMembership deletes the association; absent pairs are a no-op.
	RemoveMembership(ctx context.Context, userID, roomID int64) error
}
