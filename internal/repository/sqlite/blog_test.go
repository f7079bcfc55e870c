package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/jsundman/bloglist/internal/apperror"
	"github.com/jsundman/bloglist/internal/model"
)

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	blog := &model.Blog{
		Title:  "Life",
		Author: "alice",
		URL:    "http://x",
		Likes:  42,
		UserID: user.ID,
	}
	if err := db.Create(context.Background(), blog); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if blog.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if blog.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestGetByID_ProjectsOwner(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	blog := createTestBlog(t, db, user.ID, "Life", 42)

	got, err := db.GetByID(context.Background(), blog.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.UserID != user.ID {
		t.Errorf("GetByID() UserID = %q, want %q", got.UserID, user.ID)
	}
	if got.User == nil {
		t.Fatal("GetByID() did not project the owner")
	}
	if got.User.Username != "alice" || got.User.ID != user.ID {
		t.Errorf("GetByID() owner projection = %+v", got.User)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestList_CreationOrder(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	first := createTestBlog(t, db, user.ID, "first", 1)
	second := createTestBlog(t, db, user.ID, "second", 2)
	third := createTestBlog(t, db, user.ID, "third", 3)

	blogs, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != 3 {
		t.Fatalf("List() returned %d blogs, want 3", len(blogs))
	}

	wantOrder := []string{first.ID, second.ID, third.ID}
	for i, want := range wantOrder {
		if blogs[i].ID != want {
			t.Errorf("List()[%d].ID = %q, want %q", i, blogs[i].ID, want)
		}
	}
	if blogs[0].User == nil || blogs[0].User.Username != "alice" {
		t.Errorf("List() did not project owners: %+v", blogs[0].User)
	}
}

func TestList_Empty(t *testing.T) {
	db := newTestDB(t)

	blogs, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(blogs) != 0 {
		t.Errorf("List() returned %d blogs, want 0", len(blogs))
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")
	blog := createTestBlog(t, db, user.ID, "Life", 42)

	blog.Title = "Afterlife"
	blog.Likes = 43
	if err := db.Update(ctx, blog); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := db.GetByID(ctx, blog.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Afterlife" || got.Likes != 43 {
		t.Errorf("Update() not persisted: title=%q likes=%d", got.Title, got.Likes)
	}
	// Ownership must survive any update.
	if got.UserID != user.ID {
		t.Errorf("Update() changed owner: %q", got.UserID)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	blog := &model.Blog{ID: "no-such-id", Title: "x", URL: "y"}
	err := db.Update(context.Background(), blog)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")
	blog := createTestBlog(t, db, user.ID, "Life", 42)

	if err := db.Delete(ctx, blog.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := db.GetByID(ctx, blog.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	// The owner's projected blog list is derived from the blogs table,
	// so the deleted blog must be gone from it too.
	owner, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	for _, ref := range owner.Blogs {
		if ref.ID == blog.ID {
			t.Errorf("owner's blog list still contains deleted blog %s", blog.ID)
		}
	}
}

func TestDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Delete(context.Background(), "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
