package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shiftchat/internal/app/db"
	"shiftchat/internal/app/user"
	"shiftchat/internal/pkg/logx"
)

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an initialized connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) StoreUser(ctx context.Context, name, username, secret string) (*user.User, error) {
	const q = `INSERT INTO users (name, username, secret) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	if err := s.pool.QueryRow(ctx, q, name, username, secret).Scan(&id); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("store user: %w", err)
	}

	return user.NewRegistered(id, name, username, secret), nil
}

func (s *PostgresStore) UserByCredentials(ctx context.Context, username, secret string) (*user.User, error) {
	const q = `SELECT id, name, username, secret, online FROM users WHERE username = $1 AND secret = $2`

	return s.scanUser(s.pool.QueryRow(ctx, q, username, secret))
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*user.User, error) {
	const q = `SELECT id, name, username, secret, online FROM users WHERE username = $1`

	return s.scanUser(s.pool.QueryRow(ctx, q, username))
}

func (s *PostgresStore) scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                     int64
		name, username, secret string
		online                 bool
	)

	if err := row.Scan(&id, &name, &username, &secret, &online); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	u := user.NewRegistered(id, name, username, secret)
	u.Online = online
	return u, nil
}

func (s *PostgresStore) UpdateOnlineStatus(ctx context.Context, userID int64, online bool) error {
	const q = `UPDATE users SET online = $1 WHERE id = $2`

	if _, err := s.pool.Exec(ctx, q, online, userID); err != nil {
		return fmt.Errorf("update online status: %w", err)
	}

	return nil
}

// CreateRoom inserts the room and the creator's membership within one
// transaction, so a half-created room is never observable.
func (s *PostgresStore) CreateRoom(ctx context.Context, name string, creatorID int64) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("create room: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var roomID int64
	if err := tx.QueryRow(ctx, `INSERT INTO rooms (name) VALUES ($1) RETURNING id`, name).Scan(&roomID); err != nil {
		return 0, fmt.Errorf("create room: insert: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO room_members (user_id, room_id) VALUES ($1, $2)`, creatorID, roomID); err != nil {
		return 0, fmt.Errorf("create room: creator membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("create room: commit: %w", err)
	}

	return roomID, nil
}

func (s *PostgresStore) RoomByID(ctx context.Context, id int64) (*RoomRecord, error) {
	const q = `SELECT id, name FROM rooms WHERE id = $1`

	return scanRoom(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresStore) RoomByName(ctx context.Context, name string) (*RoomRecord, error) {
	const q = `SELECT id, name FROM rooms WHERE name = $1`

	return scanRoom(s.pool.QueryRow(ctx, q, name))
}

func scanRoom(row pgx.Row) (*RoomRecord, error) {
	var rec RoomRecord

	if err := row.Scan(&rec.ID, &rec.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch room: %w", err)
	}

	return &rec, nil
}

func (s *PostgresStore) Rooms(ctx context.Context) ([]RoomRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	defer rows.Close()

	var out []RoomRecord
	for rows.Next() {
		var rec RoomRecord
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}

	return out, nil
}

// InsertMembership runs the check-then-insert inside a single transaction and
// rolls back on any failure, so no partial membership is ever observable. The
// schema's UNIQUE(user_id, room_id) constraint backs this up: a concurrent
// insert racing past the check surfaces as a unique violation, which is
// treated as the membership already existing.
func (s *PostgresStore) InsertMembership(ctx context.Context, userID, roomID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("insert membership: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM room_members WHERE user_id = $1 AND room_id = $2)`,
		userID, roomID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("insert membership: check: %w", err)
	}

	if !exists {
		_, err = tx.Exec(ctx,
			`INSERT INTO room_members (user_id, room_id) VALUES ($1, $2)`, userID, roomID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("Membership already present, treating insert as success.",
					"user_id", userID, "room_id", roomID)
				return nil
			}
			return fmt.Errorf("insert membership: insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("insert membership: commit: %w", err)
	}

	return nil
}

func (s *PostgresStore) RemoveMembership(ctx context.Context, userID, roomID int64) error {
	const q = `DELETE FROM room_members WHERE user_id = $1 AND room_id = $2`

	if _, err := s.pool.Exec(ctx, q, userID, roomID); err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}

	return nil
}
