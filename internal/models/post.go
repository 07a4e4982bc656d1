package models

import "time"

// Post is an article written by an author. Content is sanitized HTML.
// A post is publicly visible only while Published is true; its owning
// author can always see it.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostSummary is the list-view projection of a post: no full content,
// just a tag-stripped preview and the author's byline.
type PostSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ContentPreview string    `json:"contentPreview"`
	Author         string    `json:"author"`
	Published      bool      `json:"published"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PostDetail is a post joined with its author's public identity.
type PostDetail struct {
	Post
	PostAuthor PublicUser `json:"author"`
}

// PublicUser is the subset of a user safe to embed in public payloads.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
