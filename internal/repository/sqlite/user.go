package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/jsundman/bloglist/internal/apperror"
	"github.com/jsundman/bloglist/internal/model"
	"github.com/jsundman/bloglist/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user.
//
// There is no pre-check for an existing username: the INSERT runs and
// the UNIQUE constraint decides. A violation is translated to a conflict
// error naming the taken username.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, name, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return apperror.UsernameTaken(user.Username)
		}
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	if user.Blogs == nil {
		user.Blogs = []model.BlogRef{}
	}

	return nil
}

// GetUserByID retrieves a user and projects their owned blogs in creation
// order. Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, username, name, password_hash, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	blogs, err := db.blogRefsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Blogs = blogs

	return user, nil
}

// GetUserByUsername retrieves a user by their unique username, password hash
// included. Only the authentication path should call this.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT id, username, name, password_hash, created_at, updated_at
		 FROM users WHERE username = ?`,
		username,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user by username %q: %w", username, err)
	}

	user.Blogs = []model.BlogRef{}
	return user, nil
}

// ListUsers returns all users in registration order, each with their owned
// blogs projected. The blogs are fetched in one query and grouped in
// memory rather than issuing one query per user.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, name, password_hash, created_at, updated_at
		 FROM users ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	index := map[string]int{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Name, &u.PasswordHash,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		u.Blogs = []model.BlogRef{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	blogRows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, author, url, user_id
		 FROM blogs ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs for users: %w", err)
	}
	defer blogRows.Close()

	for blogRows.Next() {
		var ref model.BlogRef
		var userID string
		if err := blogRows.Scan(&ref.ID, &ref.Title, &ref.Author, &ref.URL, &userID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog ref row: %w", err)
		}
		if i, ok := index[userID]; ok {
			users[i].Blogs = append(users[i].Blogs, ref)
		}
	}
	if err := blogRows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog refs: %w", err)
	}

	return users, nil
}

// blogRefsByUser returns the id/title/author/url projection of one user's
// blogs in creation order.
func (db *DB) blogRefsByUser(ctx context.Context, userID string) ([]model.BlogRef, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, author, url
		 FROM blogs WHERE user_id = ?
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs of user %s: %w", userID, err)
	}
	defer rows.Close()

	refs := []model.BlogRef{}
	for rows.Next() {
		var ref model.BlogRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Author, &ref.URL); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog ref row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog refs: %w", err)
	}

	return refs, nil
}

func (db *DB) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Name, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given column ("table.column"). The driver surfaces constraint
// violations as errors whose text names the constraint, e.g.
// "constraint failed: UNIQUE constraint failed: users.username".
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
