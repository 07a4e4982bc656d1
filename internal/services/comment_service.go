package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/inkwell-blog/inkwell-be/internal/models"
	"github.com/inkwell-blog/inkwell-be/internal/policy"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	ListForPost(postID string, limit, offset int) ([]models.CommentDetail, error)
	Create(actor models.User, postID string, in *validate.CommentInput) (models.Comment, error)
	Update(actor models.User, postID, commentID string, in *validate.CommentInput) (models.Comment, error)
	Delete(actor models.User, postID, commentID string) (models.Comment, error)
}

// CommentService provides business logic for comments. Mutations validate
// the payload first, then check the parent post before the comment, and the
// comment before ownership, so a bad payload answers 400 and missing
// resources answer "not found" rather than "forbidden".
type CommentService struct {
	db        *sql.DB
	sanitizer *validate.Sanitizer
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB, sanitizer *validate.Sanitizer) *CommentService {
	return &CommentService{db: db, sanitizer: sanitizer}
}

const commentColumns = "id, content, user_id, post_id, created_at, updated_at"

func scanComment(scanner interface{ Scan(...interface{}) error }) (models.Comment, error) {
	var comment models.Comment
	err := scanner.Scan(&comment.ID, &comment.Content, &comment.UserID,
		&comment.PostID, &comment.CreatedAt, &comment.UpdatedAt)
	return comment, err
}

// getPublishedPost loads the parent post only if it is currently published.
// Unpublishing a post keeps existing comments but blocks new activity on
// them.
func (s *CommentService) getPublishedPost(postID string) (models.Post, error) {
	row := s.db.QueryRow("SELECT "+postColumns+" FROM posts WHERE id = ? AND published = 1", postID)
	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, apperr.NewNotFound("Post not found.")
		}
		return models.Post{}, apperr.NewInternal("failed to load post: %v", err)
	}
	return post, nil
}

func (s *CommentService) getComment(commentID string) (models.Comment, error) {
	row := s.db.QueryRow("SELECT "+commentColumns+" FROM comments WHERE id = ?", commentID)
	comment, err := scanComment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Comment{}, apperr.NewNotFound("Comment not found.")
		}
		return models.Comment{}, apperr.NewInternal("failed to load comment: %v", err)
	}
	return comment, nil
}

// ListForPost returns a post's comments, newest-updated first, each with
// the commenter's public identity.
func (s *CommentService) ListForPost(postID string, limit, offset int) ([]models.CommentDetail, error) {
	var exists string
	if err := s.db.QueryRow("SELECT id FROM posts WHERE id = ?", postID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NewNotFound("No post found that matches. Please try again.")
		}
		return nil, apperr.NewInternal("failed to load post: %v", err)
	}

	limit, offset = clampPage(limit, offset)
	const query = `
		SELECT c.id, c.content, c.user_id, c.post_id, c.created_at, c.updated_at,
		       u.id, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.updated_at DESC
		LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, postID, limit, offset)
	if err != nil {
		return nil, apperr.NewInternal("failed to list comments: %v", err)
	}
	defer rows.Close()

	comments := []models.CommentDetail{}
	for rows.Next() {
		var detail models.CommentDetail
		err := rows.Scan(&detail.ID, &detail.Content, &detail.UserID, &detail.PostID,
			&detail.CreatedAt, &detail.UpdatedAt,
			&detail.User.ID, &detail.User.FirstName, &detail.User.LastName)
		if err != nil {
			return nil, apperr.NewInternal("failed to scan comment: %v", err)
		}
		comments = append(comments, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewInternal("failed to list comments: %v", err)
	}
	return comments, nil
}

// Create adds a comment by the actor to a published post. Any authenticated
// user may comment. Validation runs before the post lookup, so a bad
// payload answers 400 even when the post is missing.
func (s *CommentService) Create(actor models.User, postID string, in *validate.CommentInput) (models.Comment, error) {
	if violations := validate.Comment(in, s.sanitizer); len(violations) > 0 {
		return models.Comment{}, apperr.NewValidation("Failed to create comment due to validation error.", violations)
	}

	post, err := s.getPublishedPost(postID)
	if err != nil {
		return models.Comment{}, err
	}
	if d := policy.Authorize(actor, policy.CreateComment, policy.Resource{Post: &post}); !d.Allowed {
		return models.Comment{}, apperr.NewAuthorization("You are not authorized to perform this action.")
	}

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        uuid.New().String(),
		Content:   in.Content,
		UserID:    actor.ID,
		PostID:    postID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Exec(
		"INSERT INTO comments(id, content, user_id, post_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		comment.ID, comment.Content, comment.UserID, comment.PostID, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return models.Comment{}, apperr.NewInternal("failed to create comment: %v", err)
	}
	return comment, nil
}

// Update rewrites a comment's content. Only the comment's own writer may
// edit it, and only while the parent post is published.
func (s *CommentService) Update(actor models.User, postID, commentID string, in *validate.CommentInput) (models.Comment, error) {
	if violations := validate.Comment(in, s.sanitizer); len(violations) > 0 {
		return models.Comment{}, apperr.NewValidation("Failed to update comment due to validation error.", violations)
	}

	if _, err := s.getPublishedPost(postID); err != nil {
		return models.Comment{}, err
	}
	comment, err := s.getComment(commentID)
	if err != nil {
		return models.Comment{}, err
	}
	// The comment must actually hang off the post named in the URL;
	// otherwise the published gate above ran against the wrong post.
	if comment.PostID != postID {
		return models.Comment{}, apperr.NewNotFound("Comment not found.")
	}
	if d := policy.Authorize(actor, policy.UpdateComment, policy.Resource{Comment: &comment}); !d.Allowed {
		return models.Comment{}, apperr.NewAuthorization("This comment doesn't belong to you.")
	}

	now := time.Now().UTC()
	_, err = s.db.Exec("UPDATE comments SET content = ?, updated_at = ? WHERE id = ?", in.Content, now, commentID)
	if err != nil {
		return models.Comment{}, apperr.NewInternal("failed to update comment: %v", err)
	}

	comment.Content = in.Content
	comment.UpdatedAt = now
	return comment, nil
}

// Delete removes a comment. Allowed for the comment's writer and for the
// owner of the parent post, who moderates their own page.
func (s *CommentService) Delete(actor models.User, postID, commentID string) (models.Comment, error) {
	post, err := s.getPublishedPost(postID)
	if err != nil {
		return models.Comment{}, err
	}
	comment, err := s.getComment(commentID)
	if err != nil {
		return models.Comment{}, err
	}
	// Authorization must run against the comment's real parent post. A
	// comment reached through some other post's URL would otherwise let
	// that post's owner moderate comments that aren't on their page.
	if comment.PostID != postID {
		return models.Comment{}, apperr.NewNotFound("Comment not found.")
	}
	if d := policy.Authorize(actor, policy.DeleteComment, policy.Resource{Post: &post, Comment: &comment}); !d.Allowed {
		return models.Comment{}, apperr.NewAuthorization("You're not authorized to delete this comment because you didn't create it and you don't own the post.")
	}

	if _, err := s.db.Exec("DELETE FROM comments WHERE id = ?", commentID); err != nil {
		return models.Comment{}, apperr.NewInternal("failed to delete comment: %v", err)
	}
	return comment, nil
}
