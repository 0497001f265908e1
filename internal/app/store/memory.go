package store

import (
	"context"
	"sync"

	"shiftchat/internal/app/user"
)

type membershipKey struct {
	userID int64
	roomID int64
}

type userRecord struct {
	id       int64
	name     string
	username string
	secret   string
	online   bool
}

func (rec *userRecord) toUser() *user.User {
	u := user.NewRegistered(rec.id, rec.name, rec.username, rec.secret)
	u.Online = rec.online
	return u
}

// MemoryStore is a mutex-guarded in-memory Store. It backs tests and the
// development fallback when no database is configured. Membership rows are
// kept as a plain list; InsertMembership checks for the pair before appending,
// and the store's single mutex stands in for the transaction the Postgres
// store uses.
type MemoryStore struct {
	mu          sync.Mutex
	users       map[int64]*userRecord
	byUsername  map[string]*userRecord
	rooms       map[int64]RoomRecord
	memberships []membershipKey
	nextUserID  int64
	nextRoomID  int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]*userRecord),
		byUsername: make(map[string]*userRecord),
		rooms:      make(map[int64]RoomRecord),
	}
}

func (s *MemoryStore) StoreUser(_ context.Context, name, username, secret string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[username]; taken {
		return nil, ErrAlreadyExists
	}

	s.nextUserID++
	rec := &userRecord{
		id:       s.nextUserID,
		name:     name,
		username: username,
		secret:   secret,
	}
	s.users[rec.id] = rec
	s.byUsername[username] = rec

	return user.NewRegistered(rec.id, name, username, secret), nil
}

func (s *MemoryStore) UserByCredentials(_ context.Context, username, secret string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byUsername[username]
	if !ok || rec.secret != secret {
		return nil, ErrNotFound
	}

	return rec.toUser(), nil
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}

	return rec.toUser(), nil
}

func (s *MemoryStore) UpdateOnlineStatus(_ context.Context, userID int64, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	rec.online = online

	return nil
}

func (s *MemoryStore) CreateRoom(_ context.Context, name string, creatorID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRoomID++
	id := s.nextRoomID
	s.rooms[id] = RoomRecord{ID: id, Name: name}
	s.insertMembershipLocked(creatorID, id)

	return id, nil
}

func (s *MemoryStore) RoomByID(_ context.Context, id int64) (*RoomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &rec, nil
}

func (s *MemoryStore) RoomByName(_ context.Context, name string) (*RoomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.rooms {
		if rec.Name == name {
			out := rec
			return &out, nil
		}
	}

	return nil, ErrNotFound
}

func (s *MemoryStore) Rooms(_ context.Context) ([]RoomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RoomRecord, 0, len(s.rooms))
	for id := int64(1); id <= s.nextRoomID; id++ {
		if rec, ok := s.rooms[id]; ok {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (s *MemoryStore) InsertMembership(_ context.Context, userID, roomID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertMembershipLocked(userID, roomID)

	return nil
}

func (s *MemoryStore) insertMembershipLocked(userID, roomID int64) {
	key := membershipKey{userID: userID, roomID: roomID}
	for _, existing := range s.memberships {
		if existing == key {
			return
		}
	}
	s.memberships = append(s.memberships, key)
}

func (s *MemoryStore) RemoveMembership(_ context.Context, userID, roomID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := membershipKey{userID: userID, roomID: roomID}
	for i, existing := range s.memberships {
		if existing == key {
			s.memberships = append(s.memberships[:i], s.memberships[i+1:]...)
			return nil
		}
	}

	return nil
}

// MembershipCount reports how many membership rows exist for the pair.
// Tests use it to pin exactly-once membership under repeated joins.
func (s *MemoryStore) MembershipCount(userID, roomID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := membershipKey{userID: userID, roomID: roomID}
	count := 0
	for _, existing := range s.memberships {
		if existing == key {
			count++
		}
	}

	return count
}
