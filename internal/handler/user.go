package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jsundman/bloglist/internal/service"
)

// UserHandler serves registration and user lookups.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// registerRequest is the POST /api/users body. Username and Password may
// legitimately arrive as JSON null; the service treats null and "" alike.
type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HandleRegister creates a new user.
//
// HTTP: POST /api/users
// Responds 201 with the created user (blogs empty, no credential data),
// 400 for short username/password, 409 for a taken username.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleList returns all users with their blogs projected.
//
// HTTP: GET /api/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleGetByID returns a single user with their blogs projected.
//
// HTTP: GET /api/users/{id}
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
