package services

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/inkwell-blog/inkwell-be/internal/database"
	"github.com/inkwell-blog/inkwell-be/internal/models"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	require.Equal(t, kind, appErr.Kind, "unexpected error kind: %v", err)
	return appErr
}

func signupUser(t *testing.T, users *UserService, email string, author bool) models.User {
	t.Helper()
	user, err := users.Signup(&validate.SignupInput{
		Email:           email,
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Ann",
		LastName:        "Lee",
		Author:          author,
	})
	require.NoError(t, err)
	return user
}

func createPost(t *testing.T, posts *PostService, author models.User, title string, published bool) models.Post {
	t.Helper()
	post, err := posts.Create(author, &validate.PostInput{
		Title:     title,
		Content:   "<p>content of " + title + "</p>",
		Published: published,
	})
	require.NoError(t, err)
	return post
}

// touchPost pushes a post's updated_at to a fixed instant so ordering tests
// do not depend on insert timing.
func touchPost(t *testing.T, db *sql.DB, postID string, at time.Time) {
	t.Helper()
	_, err := db.Exec("UPDATE posts SET updated_at = ? WHERE id = ?", at, postID)
	require.NoError(t, err)
}

func touchComment(t *testing.T, db *sql.DB, commentID string, at time.Time) {
	t.Helper()
	_, err := db.Exec("UPDATE comments SET updated_at = ? WHERE id = ?", at, commentID)
	require.NoError(t, err)
}
