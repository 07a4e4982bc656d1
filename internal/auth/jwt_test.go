package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/inkwell-blog/inkwell-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{
	ID:        "5",
	Email:     "ann@example.com",
	FirstName: "Ann",
	LastName:  "Lee",
	Author:    true,
}

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Issue(testUser)
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "5", claims.UserID)
	assert.Equal(t, "Ann", claims.Name)
	assert.True(t, claims.Author)
}

func TestVerifyExpiry(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	m := NewManager("test-secret")
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(testUser)
	require.NoError(t, err)

	// Tokens live exactly 30 days from issuance.
	m.now = func() time.Time { return issuedAt.Add(29 * 24 * time.Hour) }
	_, err = m.Verify(token)
	assert.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(31 * 24 * time.Hour) }
	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret")

	_, err := m.Verify("not.a.token")
	assert.Error(t, err)

	_, err = m.Verify("")
	assert.Error(t, err)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	token, err := NewManager("one-secret").Issue(testUser)
	require.NoError(t, err)

	_, err = NewManager("another-secret").Verify(token)
	assert.Error(t, err)
}

type staticResolver struct {
	user models.User
	err  error
}

func (r staticResolver) GetUserByEmail(string) (models.User, error) { return r.user, r.err }

func TestMiddlewareResolverErrors(t *testing.T) {
	m := NewManager("test-secret")
	token, err := m.Issue(testUser)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, testUser.ID, actor.ID)
		w.WriteHeader(http.StatusOK)
	})

	serve := func(resolver UserResolver) int {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		m.Middleware(resolver)(next).ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve(staticResolver{user: testUser}))

	// A deleted account reads as a failed verification.
	code := serve(staticResolver{err: apperr.NewNotFound("User not found.")})
	assert.Equal(t, http.StatusUnauthorized, code)

	// A store failure must not masquerade as a logout.
	code = serve(staticResolver{err: apperr.NewInternal("failed to load user: %v", errors.New("disk I/O error"))})
	assert.Equal(t, http.StatusInternalServerError, code)
}
