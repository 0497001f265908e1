/*
Package session tracks the logged-in user of the active session and the
username to online-flag map.

Exactly one current user exists per Directory at a time; a second login
silently replaces the pointer. Credential verification is delegated to the
durable store via an exact username+secret match.
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"shiftchat/internal/app/store"
	"shiftchat/internal/app/user"
	"shiftchat/internal/pkg/logx"
)

// ErrInvalidCredentials is returned by Login when no user matches the given
// username and secret.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Directory owns the session's current-user pointer and the online map.
type Directory struct {
	st store.Store

	// mu protects current and online.
	mu sync.RWMutex

	current *user.User

	// online maps username to online flag for users seen this session.
	online map[string]bool

	logger zerolog.Logger
}

// NewDirectory constructs a Directory over the given store.
func NewDirectory(st store.Store) *Directory {
	directoryLogger := logx.Logger().With().Str("component", "SessionDirectory").Logger()

	return &Directory{
		st:     st,
		online: make(map[string]bool),
		logger: directoryLogger,
	}
}

// Register persists a new user and makes it the session's current user.
// The new user starts offline, matching the freshly-created state.
func (d *Directory) Register(ctx context.Context, name, username, secret string) (*user.User, error) {
	u, err := d.st.StoreUser(ctx, name, username, secret)
	if err != nil {
		d.logger.Error().Err(err).Str("username", username).Msg("Registration failed.")
		return nil, fmt.Errorf("register %q: %w", username, err)
	}

	d.mu.Lock()
	d.current = u
	d.mu.Unlock()

	d.logger.Info().Int64("user_id", u.ID).Str("username", username).Msg("User registered.")

	return u, nil
}

// Login verifies credentials against the store, flips the user online in both
// the session map and the store, and makes the user current. A failed lookup
// returns ErrInvalidCredentials; a store failure is surfaced as-is.
func (d *Directory) Login(ctx context.Context, username, secret string) (*user.User, error) {
	u, err := d.st.UserByCredentials(ctx, username, secret)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			d.logger.Warn().Str("username", username).Msg("Login rejected: no matching credentials.")
			return nil, ErrInvalidCredentials
		}
		d.logger.Error().Err(err).Str("username", username).Msg("Login failed: store error.")
		return nil, fmt.Errorf("login %q: %w", username, err)
	}

	u.Online = true

	if err := d.st.UpdateOnlineStatus(ctx, u.ID, true); err != nil {
		d.logger.Error().Err(err).Int64("user_id", u.ID).Msg("Failed to persist online flag.")
		return nil, fmt.Errorf("login %q: %w", username, err)
	}

	d.mu.Lock()
	d.online[username] = true
	// A second login replaces the session's current user; sessions do not stack.
	d.current = u
	d.mu.Unlock()

	d.logger.Info().Int64("user_id", u.ID).Str("username", username).Msg("User logged in.")

	return u, nil
}

// Logout flips the user offline in the session map and the store. The
// current-user pointer is left untouched; only a subsequent login moves it.
func (d *Directory) Logout(ctx context.Context, u *user.User) error {
	if u == nil {
		return nil
	}

	u.Online = false

	d.mu.Lock()
	d.online[u.Username()] = false
	d.mu.Unlock()

	if err := d.st.UpdateOnlineStatus(ctx, u.ID, false); err != nil {
		d.logger.Error().Err(err).Int64("user_id", u.ID).Msg("Failed to persist offline flag.")
		return fmt.Errorf("logout: %w", err)
	}

	d.logger.Info().Int64("user_id", u.ID).Msg("User logged out.")

	return nil
}

// IsOnline reports the session's view of the user's online flag.
func (d *Directory) IsOnline(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.online[username]
}

// Current returns the session's current user, or nil if nobody is logged in.
func (d *Directory) Current() *user.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.current
}
