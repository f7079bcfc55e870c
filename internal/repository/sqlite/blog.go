package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/jsundman/bloglist/internal/apperror"
	"github.com/jsundman/bloglist/internal/model"
	"github.com/jsundman/bloglist/internal/repository"
)

// compile-time check that *DB implements repository.BlogRepository
var _ repository.BlogRepository = (*DB)(nil)

// Create inserts a new blog. The caller must have set UserID; everything
// else about ownership is derived from that single column, so this one
// INSERT is the whole mutation.
func (db *DB) Create(ctx context.Context, blog *model.Blog) error {
	now := time.Now()
	blog.ID = xid.New().String()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, author, url, likes, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UserID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	return nil
}

// GetByID retrieves a single blog with its owner projected.
// Returns apperror.ErrNotFound if the blog doesn't exist.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var (
		b     model.Blog
		owner model.UserRef
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id,
		        b.created_at, b.updated_at,
		        u.id, u.username, u.name
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 WHERE b.id = ?`,
		id,
	).Scan(
		&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID,
		&b.CreatedAt, &b.UpdatedAt,
		&owner.ID, &owner.Username, &owner.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}

	b.User = &owner
	return &b, nil
}

// List returns all blogs in creation order, each with its owner projected.
// xid values sort by creation time, so the id is a stable tiebreaker for
// rows created within the same timestamp.
func (db *DB) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id,
		        b.created_at, b.updated_at,
		        u.id, u.username, u.name
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at, b.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		var (
			b     model.Blog
			owner model.UserRef
		)
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID,
			&b.CreatedAt, &b.UpdatedAt,
			&owner.ID, &owner.Username, &owner.Name,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		b.User = &owner
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// Update replaces the mutable fields of a blog. user_id is not in the
// SET list: ownership is immutable.
func (db *DB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE blogs
		 SET title = ?, author = ?, url = ?, likes = ?, updated_at = ?
		 WHERE id = ?`,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %s: %w", blog.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", blog.ID)
	}

	return nil
}

// Delete removes a blog by its ID. Like create, this is a single row write:
// the owner's blog list is derived, so nothing else needs repairing.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}
