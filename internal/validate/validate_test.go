package validate

import (
	"strings"
	"testing"

	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func messages(vs []apperr.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Msg
	}
	return out
}

func TestLogin(t *testing.T) {
	in := &LoginInput{Email: "  ann@example.com  ", Password: " secret "}
	assert.Empty(t, Login(in))
	assert.Equal(t, "ann@example.com", in.Email, "input is trimmed")
	assert.Equal(t, "secret", in.Password)

	in = &LoginInput{Email: "not-an-email", Password: "ab"}
	got := messages(Login(in))
	assert.Contains(t, got, "Must input a valid email.")
	assert.Contains(t, got, "Password must be 5 to 64 characters long.")
}

func TestSignupCollectsAllViolations(t *testing.T) {
	in := &SignupInput{
		Email:           "nope",
		Password:        "abc",
		ConfirmPassword: "different",
		FirstName:       "Ann3",
		LastName:        "",
	}
	got := messages(Signup(in))
	assert.Contains(t, got, "Must input a valid email.")
	assert.Contains(t, got, "Password must be 5 to 64 characters long.")
	assert.Contains(t, got, "Passwords must match.")
	assert.Contains(t, got, "First name must only include letters.")
	assert.Contains(t, got, "You must include your last name.")
}

func TestSignupValid(t *testing.T) {
	in := &SignupInput{
		Email:           "ann@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Ann",
		LastName:        "Lee",
		Author:          true,
	}
	assert.Empty(t, Signup(in))
}

func TestSignupNameBounds(t *testing.T) {
	in := &SignupInput{
		Email:           "ann@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       strings.Repeat("a", 51),
		LastName:        strings.Repeat("b", 61),
	}
	got := messages(Signup(in))
	assert.Contains(t, got, "First name cannot exceed 50 characters.")
	assert.Contains(t, got, "Last name cannot exceed 60 characters.")
}

func TestProfilePasswordAsymmetry(t *testing.T) {
	base := func() *ProfileInput {
		return &ProfileInput{Email: "ann@example.com", FirstName: "Ann", LastName: "Lee"}
	}

	// No password change requested: both fields empty is fine.
	assert.Empty(t, Profile(base()))

	// Password set with matching confirmation is fine.
	in := base()
	in.Password = "newsecret"
	in.ConfirmPassword = "newsecret"
	assert.Empty(t, Profile(in))

	// Password set without matching confirmation is a violation.
	in = base()
	in.Password = "newsecret"
	in.ConfirmPassword = "other"
	assert.Contains(t, messages(Profile(in)), "Passwords must match.")

	// Confirmation without a password is the other direction.
	in = base()
	in.ConfirmPassword = "newsecret"
	assert.Contains(t, messages(Profile(in)),
		"Confirm password must be empty when not changing your password.")
}

func TestPostSanitizesRichText(t *testing.T) {
	s := NewSanitizer()
	in := &PostInput{
		Title:   "Hello <script>alert(1)</script>",
		Content: `<p onclick="evil()">body</p><script>alert(2)</script>`,
	}
	assert.Empty(t, Post(in, s))
	assert.NotContains(t, in.Title, "<script>")
	assert.NotContains(t, in.Content, "script")
	assert.NotContains(t, in.Content, "onclick")
	assert.Contains(t, in.Content, "<p>body</p>", "benign markup survives")
}

func TestPostLengthBounds(t *testing.T) {
	s := NewSanitizer()
	in := &PostInput{
		Title:   strings.Repeat("t", MaxTitleLen+1),
		Content: strings.Repeat("c", MaxPostContentLen+1),
	}
	got := messages(Post(in, s))
	assert.Contains(t, got, "Max title length is 255 characters.")
	assert.Contains(t, got, "Maximum article length is 65535 characters.")
}

func TestComment(t *testing.T) {
	s := NewSanitizer()

	in := &CommentInput{Content: "   "}
	assert.Contains(t, messages(Comment(in, s)), "Your comment must not be empty.")

	in = &CommentInput{Content: strings.Repeat("x", MaxCommentLen+1)}
	assert.Contains(t, messages(Comment(in, s)), "Maximum comment length is 1000 characters.")

	in = &CommentInput{Content: `nice <img src=x onerror=evil()> post`}
	assert.Empty(t, Comment(in, s))
	assert.NotContains(t, in.Content, "onerror")
}

func TestPreview(t *testing.T) {
	s := NewSanitizer()

	got := s.Preview("<p>Hello &amp; welcome</p>", 200)
	assert.Equal(t, "Hello & welcome", got)

	long := "<p>" + strings.Repeat("a", 300) + "</p>"
	got = s.Preview(long, 200)
	assert.NotContains(t, got, "<p>")
	assert.LessOrEqual(t, len(got), 200)
}
