package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jsundman/bloglist/internal/service"
)

// LoginHandler exchanges credentials for a bearer token.
type LoginHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewLoginHandler creates a LoginHandler.
func NewLoginHandler(users *service.UserService, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{users: users, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the token plus the display fields a client needs
// right after login. The client presents the token verbatim as
// "Authorization: Bearer <token>" on every authenticated call.
type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// HandleLogin authenticates a user and issues a token.
//
// HTTP: POST /api/login
// Responds 200 with {token, username, name}, or 401 with a message that
// does not reveal whether the username or the password was wrong.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	result, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    result.Token,
		Username: result.User.Username,
		Name:     result.User.Name,
	})
}
