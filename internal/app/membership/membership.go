/*
Package membership guarantees that a user is associated with a room in the
durable store at most once, even under concurrent joins.

The Postgres store already wraps its check-then-insert in a transaction; the
Coordinator adds per-(user, room) serialization on top, so stores without
transactions (such as the in-memory store) get the same exactly-once outcome.
*/
package membership

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"shiftchat/internal/app/store"
	"shiftchat/internal/pkg/logx"
)

// ErrInvalidArgument reports a non-positive user or room id. It indicates a
// caller bug, not an environmental fault.
var ErrInvalidArgument = errors.New("invalid membership argument")

// stripeCount sizes the lock table. Joins for different pairs proceed in
// parallel; joins for the same pair hash to the same stripe.
const stripeCount = 64

type pairKey struct {
	userID int64
	roomID int64
}

// Coordinator serializes membership writes per (user, room) pair and reports
// store failures to the caller as non-fatal errors.
type Coordinator struct {
	store   store.Store
	stripes [stripeCount]sync.Mutex
	logger  zerolog.Logger
}

// NewCoordinator constructs a Coordinator over the given store.
func NewCoordinator(st store.Store) *Coordinator {
	coordinatorLogger := logx.Logger().With().Str("component", "MembershipCoordinator").Logger()

	return &Coordinator{
		store:  st,
		logger: coordinatorLogger,
	}
}

func (c *Coordinator) stripe(userID, roomID int64) *sync.Mutex {
	key := pairKey{userID: userID, roomID: roomID}
	h := uint64(key.userID)*0x9e3779b97f4a7c15 ^ uint64(key.roomID)
	return &c.stripes[h%stripeCount]
}

// Join persists the user-room association exactly once. Calling Join again for
// an existing pair succeeds without creating a second row. A store failure
// means the operation did not happen; the caller may retry.
func (c *Coordinator) Join(ctx context.Context, userID, roomID int64) error {
	if userID <= 0 || roomID <= 0 {
		return fmt.Errorf("join user %d to room %d: %w", userID, roomID, ErrInvalidArgument)
	}

	mu := c.stripe(userID, roomID)
	mu.Lock()
	defer mu.Unlock()

	if err := c.store.InsertMembership(ctx, userID, roomID); err != nil {
		c.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("room_id", roomID).
			Msg("Membership insert failed.")
		return fmt.Errorf("join room: %w", err)
	}

	c.logger.Info().
		Int64("user_id", userID).
		Int64("room_id", roomID).
		Msg("Membership persisted.")

	return nil
}

// Leave removes the association from the store. Removing an absent pair is a
// no-op at the store level.
func (c *Coordinator) Leave(ctx context.Context, userID, roomID int64) error {
	if userID <= 0 || roomID <= 0 {
		return fmt.Errorf("remove user %d from room %d: %w", userID, roomID, ErrInvalidArgument)
	}

	mu := c.stripe(userID, roomID)
	mu.Lock()
	defer mu.Unlock()

	if err := c.store.RemoveMembership(ctx, userID, roomID); err != nil {
		c.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("room_id", roomID).
			Msg("Membership removal failed.")
		return fmt.Errorf("leave room: %w", err)
	}

	return nil
}
