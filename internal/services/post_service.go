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

// Pagination defaults for list endpoints.
const (
	DefaultLimit  = 10
	DefaultOffset = 0
	previewLen    = 200
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	ListPublished(limit, offset int) ([]models.PostSummary, error)
	GetPublished(postID string) (models.PostDetail, error)
	ListByAuthor(actor models.User, limit, offset int) ([]models.PostSummary, error)
	GetOwn(actor models.User, postID string) (models.PostDetail, error)
	Create(actor models.User, in *validate.PostInput) (models.Post, error)
	Update(actor models.User, postID string, in *validate.PostInput) (models.Post, error)
	TogglePublish(actor models.User, postID string) (models.Post, error)
	Delete(actor models.User, postID string) (models.Post, error)
}

// PostService provides business logic for post management. Every mutation
// runs the same sequence: payload validation, existence check, ownership
// policy, then exactly one write.
type PostService struct {
	db        *sql.DB
	sanitizer *validate.Sanitizer
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB, sanitizer *validate.Sanitizer) *PostService {
	return &PostService{db: db, sanitizer: sanitizer}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = DefaultOffset
	}
	return limit, offset
}

func scanPost(scanner interface{ Scan(...interface{}) error }) (models.Post, error) {
	var post models.Post
	var published int
	err := scanner.Scan(&post.ID, &post.Title, &post.Content, &published,
		&post.AuthorID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return models.Post{}, err
	}
	post.Published = published != 0
	return post, nil
}

const postColumns = "id, title, content, published, author_id, created_at, updated_at"

func (s *PostService) getPost(postID string) (models.Post, error) {
	row := s.db.QueryRow("SELECT "+postColumns+" FROM posts WHERE id = ?", postID)
	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, apperr.NewNotFound("Post not found.")
		}
		return models.Post{}, apperr.NewInternal("failed to load post: %v", err)
	}
	return post, nil
}

func (s *PostService) listSummaries(query string, args ...interface{}) ([]models.PostSummary, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperr.NewInternal("failed to list posts: %v", err)
	}
	defer rows.Close()

	summaries := []models.PostSummary{}
	for rows.Next() {
		var sum models.PostSummary
		var content string
		var author models.User
		var published int
		if err := rows.Scan(&sum.ID, &sum.Title, &content, &published, &sum.UpdatedAt, &author.FirstName, &author.LastName); err != nil {
			return nil, apperr.NewInternal("failed to scan post: %v", err)
		}
		sum.Published = published != 0
		sum.ContentPreview = s.sanitizer.Preview(content, previewLen)
		sum.Author = author.DisplayName()
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewInternal("failed to list posts: %v", err)
	}
	return summaries, nil
}

// ListPublished returns published posts for public reading, newest-updated
// first, with tag-stripped content previews instead of full bodies.
func (s *PostService) ListPublished(limit, offset int) ([]models.PostSummary, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
		SELECT p.id, p.title, p.content, p.published, p.updated_at, u.first_name, u.last_name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.published = 1
		ORDER BY p.updated_at DESC
		LIMIT ? OFFSET ?`
	return s.listSummaries(query, limit, offset)
}

// GetPublished returns a single published post with its author's public
// identity. Unpublished posts read as not found.
func (s *PostService) GetPublished(postID string) (models.PostDetail, error) {
	const query = `
		SELECT p.id, p.title, p.content, p.published, p.author_id, p.created_at, p.updated_at,
		       u.id, u.first_name, u.last_name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = ? AND p.published = 1`
	row := s.db.QueryRow(query, postID)

	var detail models.PostDetail
	var published int
	err := row.Scan(&detail.ID, &detail.Title, &detail.Content, &published,
		&detail.AuthorID, &detail.CreatedAt, &detail.UpdatedAt,
		&detail.PostAuthor.ID, &detail.PostAuthor.FirstName, &detail.PostAuthor.LastName)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.PostDetail{}, apperr.NewNotFound("No post found that matches. Please try again.")
		}
		return models.PostDetail{}, apperr.NewInternal("failed to load post: %v", err)
	}
	detail.Published = published != 0
	return detail, nil
}

// ListByAuthor returns the actor's own posts regardless of published state.
// Scoping happens in the query, not by filtering afterwards.
func (s *PostService) ListByAuthor(actor models.User, limit, offset int) ([]models.PostSummary, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
		SELECT p.id, p.title, p.content, p.published, p.updated_at, u.first_name, u.last_name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = ?
		ORDER BY p.updated_at DESC
		LIMIT ? OFFSET ?`
	return s.listSummaries(query, actor.ID, limit, offset)
}

// GetOwn returns one of the actor's posts in any publish state. Posts owned
// by someone else read as not found, same as missing ones.
func (s *PostService) GetOwn(actor models.User, postID string) (models.PostDetail, error) {
	const query = `
		SELECT p.id, p.title, p.content, p.published, p.author_id, p.created_at, p.updated_at,
		       u.id, u.first_name, u.last_name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = ? AND p.author_id = ?`
	row := s.db.QueryRow(query, postID, actor.ID)

	var detail models.PostDetail
	var published int
	err := row.Scan(&detail.ID, &detail.Title, &detail.Content, &published,
		&detail.AuthorID, &detail.CreatedAt, &detail.UpdatedAt,
		&detail.PostAuthor.ID, &detail.PostAuthor.FirstName, &detail.PostAuthor.LastName)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.PostDetail{}, apperr.NewNotFound("No post found that matches. Please try again.")
		}
		return models.PostDetail{}, apperr.NewInternal("failed to load post: %v", err)
	}
	detail.Published = published != 0
	return detail, nil
}

// Create makes a new post owned by the actor. Only accounts with the author
// flag may create posts.
func (s *PostService) Create(actor models.User, in *validate.PostInput) (models.Post, error) {
	if d := policy.Authorize(actor, policy.CreatePost, policy.Resource{}); !d.Allowed {
		return models.Post{}, denyToError(d, "create")
	}

	if violations := validate.Post(in, s.sanitizer); len(violations) > 0 {
		return models.Post{}, apperr.NewValidation("Failed to create post due to validation error.", violations)
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
		AuthorID:  actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(
		"INSERT INTO posts(id, title, content, published, author_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		post.ID, post.Title, post.Content, boolToInt(post.Published), post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return models.Post{}, apperr.NewInternal("failed to create post: %v", err)
	}
	return post, nil
}

// Update replaces a post's title, content and published state. A bad
// payload answers 400 before any lookup; after that the post must exist
// (404 before any ownership answer) and belong to the actor.
func (s *PostService) Update(actor models.User, postID string, in *validate.PostInput) (models.Post, error) {
	if violations := validate.Post(in, s.sanitizer); len(violations) > 0 {
		return models.Post{}, apperr.NewValidation("Failed to update post due to validation error.", violations)
	}

	post, err := s.getPost(postID)
	if err != nil {
		return models.Post{}, err
	}
	if d := policy.Authorize(actor, policy.UpdatePost, policy.Resource{Post: &post}); !d.Allowed {
		return models.Post{}, denyToError(d, "edit")
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(
		"UPDATE posts SET title = ?, content = ?, published = ?, updated_at = ? WHERE id = ?",
		in.Title, in.Content, boolToInt(in.Published), now, postID,
	)
	if err != nil {
		return models.Post{}, apperr.NewInternal("failed to update post: %v", err)
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Published = in.Published
	post.UpdatedAt = now
	return post, nil
}

// TogglePublish flips a post between draft and published, the only two
// states a post has.
func (s *PostService) TogglePublish(actor models.User, postID string) (models.Post, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return models.Post{}, err
	}
	if d := policy.Authorize(actor, policy.TogglePublishPost, policy.Resource{Post: &post}); !d.Allowed {
		return models.Post{}, denyToError(d, "publish")
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(
		"UPDATE posts SET published = ?, updated_at = ? WHERE id = ?",
		boolToInt(!post.Published), now, postID,
	)
	if err != nil {
		return models.Post{}, apperr.NewInternal("failed to update post: %v", err)
	}

	post.Published = !post.Published
	post.UpdatedAt = now
	return post, nil
}

// Delete removes a post and, through the schema's cascade, its comments.
// Deletion is terminal from either publish state.
func (s *PostService) Delete(actor models.User, postID string) (models.Post, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return models.Post{}, err
	}
	if d := policy.Authorize(actor, policy.DeletePost, policy.Resource{Post: &post}); !d.Allowed {
		return models.Post{}, denyToError(d, "delete")
	}

	if _, err := s.db.Exec("DELETE FROM posts WHERE id = ?", postID); err != nil {
		return models.Post{}, apperr.NewInternal("failed to delete post: %v", err)
	}
	return post, nil
}

// denyToError maps a policy denial onto the error taxonomy with the
// caller-facing message for the attempted verb.
func denyToError(d policy.Decision, verb string) error {
	switch d.Reason {
	case policy.NotAnAuthor:
		return apperr.NewAuthorization("You are not authorized to " + verb + " posts. Contact the blog administrator to be made an author.")
	case policy.NotOwner:
		return apperr.NewAuthorization("This post doesn't belong to you.")
	}
	return apperr.NewAuthorization("You are not authorized to perform this action.")
}
