package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint
// (e.g. (project_id, target_version) or (user_id, group_id)).
var ErrDuplicate = errors.New("duplicate")

// ErrInvalidState is returned when a guarded update finds the row in a
// state the transition is not legal from.
var ErrInvalidState = errors.New("invalid state")

// ErrLastAdmin is returned when a membership mutation would leave a group
// without any JOINED admin.
var ErrLastAdmin = errors.New("last admin")

// ErrFanout is returned when inserting the changelog rows of an event fails.
// The enclosing transaction is rolled back, so the triggering mutation is
// rolled back with it.
var ErrFanout = errors.New("changelog fanout failed")

// isUniqueViolation は PostgreSQL の一意制約違反 (23505) かどうかを判定する
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
