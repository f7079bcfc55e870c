// Package repository defines the storage interfaces consumed by the
// service layer. Implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/jsundman/bloglist/internal/model"
)

type UserRepository interface {
	// CreateUser persists a new user. Returns a conflict error if the
	// username is already taken; the constraint lives in the store, so
	// concurrent registrations race safely.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByID returns the user with owned blogs projected in
	// creation order.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByUsername returns the user including the password hash,
	// for credential verification only.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// ListUsers returns all users, each with owned blogs projected.
	ListUsers(ctx context.Context) ([]model.User, error)
}

type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	// GetByID returns the blog with its owner projected.
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	// List returns all blogs in creation order, owners projected.
	List(ctx context.Context) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id string) error
}
