package models

import "time"

// Comment is a reader's response to a published post. Content is sanitized
// HTML, bounded well below post content.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentDetail is a comment joined with its writer's public identity.
type CommentDetail struct {
	Comment
	User PublicUser `json:"user"`
}
