// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account capable of logging in and owning blogs.
//
// PasswordHash is tagged `json:"-"` so it can never leak through any JSON
// response, no matter which handler serializes the struct.
//
// Blogs holds the user's owned blogs in creation order. It is not stored on
// the user row: it is derived from the blogs table's user_id index at read
// time, so it cannot drift out of sync with Blog.UserID.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique, case-sensitive, min length 3
	Name         string    `json:"name"      db:"name"`     // display name, may be empty
	PasswordHash string    `json:"-"         db:"password_hash"`
	Blogs        []BlogRef `json:"blogs"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// BlogRef is the projection of a blog embedded in user responses:
// enough to render a list entry, nothing more.
type BlogRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}
