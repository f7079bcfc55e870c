// Package service contains the business logic layer: validation, identity
// rules, and ownership enforcement. Handlers parse HTTP and delegate here;
// repositories persist whatever this layer decided.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/jsundman/bloglist/internal/apperror"
	"github.com/jsundman/bloglist/internal/auth"
	"github.com/jsundman/bloglist/internal/model"
	"github.com/jsundman/bloglist/internal/repository"
)

// MinCredentialLength is the minimum number of characters for both
// usernames and passwords.
const MinCredentialLength = 3

// UserService handles registration, login, and user lookups.
type UserService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService with all required dependencies.
func NewUserService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the authenticated user with the issued token so the
// login handler can respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register validates the credentials, hashes the password, and persists a
// new user with no owned blogs.
//
// Username uniqueness is NOT pre-checked here: the insert runs and the
// storage layer's unique constraint decides, so two concurrent
// registrations of the same username yield exactly one success and one
// conflict error. The returned user never carries the password hash
// outward (the model hides it from serialization).
func (s *UserService) Register(ctx context.Context, username, name, password string) (*model.User, error) {
	// Character count, not byte count: a two-rune multibyte username is
	// still too short.
	if utf8.RuneCountInString(username) < MinCredentialLength {
		return nil, apperror.ValidationFailed("username",
			"Username is required and must be at least 3 characters long")
	}
	if utf8.RuneCountInString(password) < MinCredentialLength {
		return nil, apperror.ValidationFailed("password",
			"Password is required and must be at least 3 characters long")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/user: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/user: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Authenticate verifies the credentials and issues a token for the user.
//
// An unknown username and a wrong password produce the exact same error,
// so a caller probing the login endpoint cannot tell which usernames
// exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/user: looking up %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/user: issuing token for %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// GetByID returns a user with their owned blogs projected.
// Returns apperror.ErrNotFound for an unknown ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// List returns all users with their owned blogs projected.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service/user: listing users: %w", err)
	}
	return users, nil
}

// ValidateToken validates a token string and returns the userID it
// asserts. Thin delegation so callers only import the service package.
func (s *UserService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/user: %w", err)
	}
	return userID, nil
}
