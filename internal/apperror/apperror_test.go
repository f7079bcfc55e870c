package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("blog", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title", "title and url are required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "UsernameTaken wraps ErrConflict",
			err:       UsernameTaken("root"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "InvalidCredentials wraps ErrUnauthorized",
			err:       InvalidCredentials(),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden("only the owner may delete a blog"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("blog", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Forbidden does NOT match ErrNotFound",
			err:       Forbidden("only the owner may delete a blog"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("blog", "abc123"),
			wantMessage: "blog not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("username", "Username is required and must be at least 3 characters long"),
			wantMessage: "Username is required and must be at least 3 characters long",
		},
		{
			name:        "UsernameTaken names the contested username",
			err:         UsernameTaken("mluukkai"),
			wantMessage: "Username 'mluukkai' is already taken",
		},
		{
			name:        "InvalidCredentials never names a cause",
			err:         InvalidCredentials(),
			wantMessage: "invalid username or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("blog", "abc123")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("password", "Password is required and must be at least 3 characters long")
	if err.Field != "password" {
		t.Errorf("Field = %q, want %q", err.Field, "password")
	}
}
