package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequiresAuthorFlag(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	reader := signupUser(t, users, "reader@example.com", false)
	_, err := posts.Create(reader, &validate.PostInput{Title: "Nope"})
	requireKind(t, err, apperr.Authorization)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count))
	assert.Zero(t, count, "denied create must not leave a row behind")
}

func TestCreatePostSanitizesContent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	author := signupUser(t, users, "ann@example.com", true)
	post, err := posts.Create(author, &validate.PostInput{
		Title:   "Hi",
		Content: `<p>fine</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.NotContains(t, post.Content, "script")

	var stored string
	require.NoError(t, db.QueryRow("SELECT content FROM posts WHERE id = ?", post.ID).Scan(&stored))
	assert.NotContains(t, stored, "script", "sanitization happens before storage")
}

func TestUpdatePostOwnership(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	bob := signupUser(t, users, "bob@example.com", true)
	post := createPost(t, posts, ann, "Original", false)

	// A missing post is 404 before any ownership answer.
	_, err := posts.Update(bob, "no-such-id", &validate.PostInput{Title: "X"})
	requireKind(t, err, apperr.NotFound)

	_, err = posts.Update(bob, post.ID, &validate.PostInput{Title: "Hijacked"})
	requireKind(t, err, apperr.Authorization)

	updated, err := posts.Update(ann, post.ID, &validate.PostInput{Title: "Edited", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.True(t, updated.Published)
}

func TestUpdatePostValidationPrecedesLookups(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	bob := signupUser(t, users, "bob@example.com", true)
	post := createPost(t, posts, ann, "Original", false)

	tooLong := strings.Repeat("x", validate.MaxTitleLen+1)

	// A bad payload answers 400 even when the post does not exist...
	_, err := posts.Update(bob, "no-such-id", &validate.PostInput{Title: tooLong})
	requireKind(t, err, apperr.Validation)

	// ...and even when it belongs to someone else.
	_, err = posts.Update(bob, post.ID, &validate.PostInput{Title: tooLong})
	requireKind(t, err, apperr.Validation)

	var stored string
	require.NoError(t, db.QueryRow("SELECT title FROM posts WHERE id = ?", post.ID).Scan(&stored))
	assert.Equal(t, "Original", stored)
}

func TestTogglePublish(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	bob := signupUser(t, users, "bob@example.com", true)
	post := createPost(t, posts, ann, "Draft", false)

	_, err := posts.TogglePublish(bob, post.ID)
	requireKind(t, err, apperr.Authorization)

	toggled, err := posts.TogglePublish(ann, post.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Published)

	toggled, err = posts.TogglePublish(ann, post.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Published, "toggle flips back to draft")
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	bob := signupUser(t, users, "bob@example.com", true)
	post := createPost(t, posts, ann, "Doomed", true)

	_, err := posts.Delete(bob, post.ID)
	requireKind(t, err, apperr.Authorization)

	_, err = posts.Delete(ann, post.ID)
	require.NoError(t, err)

	_, err = posts.GetOwn(ann, post.ID)
	requireKind(t, err, apperr.NotFound)
}

func TestListPublishedPagination(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		post := createPost(t, posts, ann, fmt.Sprintf("Post %d", i), true)
		touchPost(t, db, post.ID, base.Add(time.Duration(i)*time.Hour))
	}
	// A draft must never surface in the public list.
	draft := createPost(t, posts, ann, "Draft", false)
	touchPost(t, db, draft.ID, base.Add(10*time.Hour))

	page, err := posts.ListPublished(2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Post 4", page[0].Title, "most recently updated first")
	assert.Equal(t, "Post 3", page[1].Title)

	page, err = posts.ListPublished(2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Post 0", page[0].Title)

	// Defaults: limit 10, offset 0.
	page, err = posts.ListPublished(0, -1)
	require.NoError(t, err)
	assert.Len(t, page, 5)
}

func TestListPublishedPreviews(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	createPost(t, posts, ann, "Styled", true)

	page, err := posts.ListPublished(10, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.NotContains(t, page[0].ContentPreview, "<p>", "previews are plain text")
	assert.Equal(t, "Ann Lee", page[0].Author)
}

func TestAuthorScoping(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	bob := signupUser(t, users, "bob@example.com", true)
	annPost := createPost(t, posts, ann, "Ann draft", false)
	createPost(t, posts, bob, "Bob post", true)

	// The dashboard list is scoped in the query: only the actor's posts,
	// drafts included.
	page, err := posts.ListByAuthor(ann, 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Ann draft", page[0].Title)

	// Own drafts are readable; other people's posts read as not found.
	detail, err := posts.GetOwn(ann, annPost.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann draft", detail.Title)

	_, err = posts.GetOwn(bob, annPost.ID)
	requireKind(t, err, apperr.NotFound)
}

func TestGetPublishedHidesDrafts(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db, validate.NewSanitizer())

	ann := signupUser(t, users, "ann@example.com", true)
	draft := createPost(t, posts, ann, "Draft", false)
	published := createPost(t, posts, ann, "Live", true)

	_, err := posts.GetPublished(draft.ID)
	requireKind(t, err, apperr.NotFound)

	detail, err := posts.GetPublished(published.ID)
	require.NoError(t, err)
	assert.Equal(t, "Live", detail.Title)
	assert.Equal(t, "Ann", detail.PostAuthor.FirstName)
}
