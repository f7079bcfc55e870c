package model

import "time"

// Blog represents a single saved blog entry.
//
// UserID references the owning user and is set exactly once, at creation.
// Ownership cannot be transferred: Update never touches it.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"-"`
	User      *UserRef  `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRef is the projection of the owning user embedded in blog responses.
// It never carries credential data.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
