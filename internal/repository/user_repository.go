package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/event-reservation/internal/model"
)

// ErrUserNotFound is returned when no user exists for the requested
// identifier.
var ErrUserNotFound = errors.New("user not found")

// UserRepo reads user summaries for reservation detail views and the
// admin dashboard. Account creation and credentials live behind the
// upstream identity provider, so this repository is read-only.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// GetSummary returns the user's public summary or ErrUserNotFound.
func (r *UserRepo) GetSummary(ctx context.Context, id string) (*model.UserSummary, error) {
	const q = `SELECT id, email, first_name, last_name FROM users WHERE id = ?`
	var u model.UserSummary
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Count returns the total number of registered users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
