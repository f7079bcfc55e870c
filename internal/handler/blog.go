package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jsundman/bloglist/internal/auth"
	"github.com/jsundman/bloglist/internal/service"
	"github.com/jsundman/bloglist/internal/stats"
)

// BlogHandler serves the blog CRUD endpoints and the stats report.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// blogRequest is the request body for create and update. Likes stays a
// pointer so an absent or null value is distinguishable from 0.
type blogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

func (b blogRequest) fields() service.BlogFields {
	return service.BlogFields{
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
	}
}

// HandleList returns all blogs in creation order, owners projected.
//
// HTTP: GET /api/blogs
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

// HandleGetByID returns a single blog.
//
// HTTP: GET /api/blogs/{id}
func (h *BlogHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleCreate saves a new blog owned by the authenticated caller.
//
// HTTP: POST /api/blogs (requires a valid bearer token)
// Responds 201 with the created blog, owner projected.
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Create(r.Context(), userID, req.fields())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

// HandleUpdate replaces the mutable fields of a blog.
//
// HTTP: PUT /api/blogs/{id}
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Update(r.Context(), r.PathValue("id"), req.fields())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleDelete removes a blog owned by the authenticated caller.
//
// HTTP: DELETE /api/blogs/{id} (requires a valid bearer token)
// Responds 204 on success, 404 for an unknown blog, 403 when the caller
// isn't the owner.
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.blogs.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// favoriteBlog is the projection of the most-liked blog in the stats
// response.
type favoriteBlog struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// statsResponse aggregates the four statistics over the full collection.
// The maximum-based entries are pointers so an empty collection serializes
// them as null rather than fabricating an empty-string author.
type statsResponse struct {
	TotalLikes int                `json:"totalLikes"`
	Favorite   *favoriteBlog      `json:"favoriteBlog"`
	MostBlogs  *stats.AuthorCount `json:"authorWithMostBlogs"`
	MostLikes  *stats.AuthorLikes `json:"authorWithMostLikes"`
}

// HandleStats reports aggregate statistics over the whole collection.
//
// HTTP: GET /api/blogs/stats
// The aggregation itself is pure; this handler just fetches the collection
// and feeds it through.
func (h *BlogHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := statsResponse{TotalLikes: stats.TotalLikes(blogs)}

	if favorite, ok := stats.FavoriteBlog(blogs); ok {
		resp.Favorite = &favoriteBlog{
			Title:  favorite.Title,
			Author: favorite.Author,
			Likes:  favorite.Likes,
		}
	}
	if mostBlogs, ok := stats.AuthorWithMostBlogs(blogs); ok {
		resp.MostBlogs = &mostBlogs
	}
	if mostLikes, ok := stats.AuthorWithMostLikes(blogs); ok {
		resp.MostLikes = &mostLikes
	}

	writeJSON(w, http.StatusOK, resp)
}
