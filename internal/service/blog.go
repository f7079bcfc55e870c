package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsundman/bloglist/internal/apperror"
	"github.com/jsundman/bloglist/internal/model"
	"github.com/jsundman/bloglist/internal/repository"
)

// BlogService handles the ownership-enforced blog operations.
type BlogService struct {
	blogs  repository.BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a BlogService.
func NewBlogService(blogs repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		blogs:  blogs,
		logger: logger,
	}
}

// BlogFields carries the caller-supplied fields of a blog. Likes is a
// pointer so "absent or null" is distinguishable from an explicit 0; both
// normalize to 0 on create.
type BlogFields struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// Create validates the fields and persists a new blog owned by userID.
//
// The owner is whoever the validated token asserted, never a field of the
// request body, so a blog always has exactly one owner from the moment it
// exists, and that owner appears in the user's blog list by virtue of the
// derived index (one row write, nothing to reconcile).
func (s *BlogService) Create(ctx context.Context, userID string, fields BlogFields) (*model.Blog, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("token missing")
	}

	title := strings.TrimSpace(fields.Title)
	url := strings.TrimSpace(fields.URL)
	if title == "" || url == "" {
		return nil, apperror.ValidationFailed("title", "Title and URL required")
	}

	likes := 0
	if fields.Likes != nil {
		likes = *fields.Likes
	}
	if likes < 0 {
		return nil, apperror.ValidationFailed("likes", "likes must not be negative")
	}

	blog := &model.Blog{
		Title:  title,
		Author: strings.TrimSpace(fields.Author),
		URL:    url,
		Likes:  likes,
		UserID: userID,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID),
		slog.String("userID", userID),
	)

	// Re-read so the response carries the projected owner.
	return s.blogs.GetByID(ctx, blog.ID)
}

// Update replaces the mutable fields of a blog: title, author, url, likes.
// The same field rules as Create apply, so a blog can never end up stored
// without a title or URL. Ownership never changes. Returns
// apperror.ErrNotFound for an unknown ID.
func (s *BlogService) Update(ctx context.Context, id string, fields BlogFields) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}

	title := strings.TrimSpace(fields.Title)
	url := strings.TrimSpace(fields.URL)
	if title == "" || url == "" {
		return nil, apperror.ValidationFailed("title", "Title and URL required")
	}

	likes := 0
	if fields.Likes != nil {
		likes = *fields.Likes
	}
	if likes < 0 {
		return nil, apperror.ValidationFailed("likes", "likes must not be negative")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	blog.Title = title
	blog.Author = strings.TrimSpace(fields.Author)
	blog.URL = url
	blog.Likes = likes

	if err := s.blogs.Update(ctx, blog); err != nil {
		s.logger.Error("failed to update blog",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("blog updated", slog.String("id", blog.ID))

	return blog, nil
}

// Delete removes a blog, but only for its owner.
//
// Order of checks is fixed: existence first, ownership second. Deleting a
// nonexistent blog is NotFound for everyone; deleting someone else's
// existing blog is Forbidden.
func (s *BlogService) Delete(ctx context.Context, userID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "blog ID is required")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID == "" || blog.UserID != userID {
		return apperror.Forbidden("only the owner may delete a blog")
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted",
		slog.String("id", id),
		slog.String("userID", userID),
	)
	return nil
}

// GetByID retrieves a blog by its ID.
// Returns apperror.ErrNotFound if the blog doesn't exist.
func (s *BlogService) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}

	return s.blogs.GetByID(ctx, id)
}

// List returns all blogs in creation order with projected owners.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}
