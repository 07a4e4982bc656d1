// Package validate holds the per-endpoint validation rule sets. Checks are
// independent: every rule runs and all violations are returned together, so
// a client sees the complete list in one response. Inputs are trimmed and
// rich-text fields sanitized in place as a side effect of validation.
package validate

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/inkwell-blog/inkwell-be/internal/apperr"
)

// Field length bounds.
const (
	MaxEmailLen       = 255
	MinPasswordLen    = 5
	MaxPasswordLen    = 64
	MaxFirstNameLen   = 50
	MaxLastNameLen    = 60
	MaxTitleLen       = 255
	MaxPostContentLen = 65535
	MaxCommentLen     = 1000
)

// LoginInput is the credential pair submitted to POST /login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput is the payload for account creation.
type SignupInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Author          bool   `json:"author"`
}

// ProfileInput is the payload for profile updates. Password is optional;
// when empty no password change is requested and ConfirmPassword must also
// be empty.
type ProfileInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// CommentInput is the payload for creating or updating a comment.
type CommentInput struct {
	Content string `json:"content"`
}

type collector struct {
	violations []apperr.Violation
}

func (c *collector) add(field, msg string) {
	c.violations = append(c.violations, apperr.Violation{Field: field, Msg: msg})
}

func (c *collector) result() []apperr.Violation { return c.violations }

// Login validates a credential pair.
func Login(in *LoginInput) []apperr.Violation {
	var c collector
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	checkEmail(&c, in.Email)
	checkPassword(&c, in.Password)
	return c.result()
}

// Signup validates an account-creation payload. Email uniqueness needs the
// store and is checked by the user service, which appends its own violation.
func Signup(in *SignupInput) []apperr.Violation {
	var c collector
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	in.ConfirmPassword = strings.TrimSpace(in.ConfirmPassword)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	checkEmail(&c, in.Email)
	checkPassword(&c, in.Password)
	if in.ConfirmPassword != in.Password {
		c.add("confirmPassword", "Passwords must match.")
	}
	checkNames(&c, in.FirstName, in.LastName)
	return c.result()
}

// Profile validates a profile-update payload. The password pair is
// asymmetric: setting a password requires a matching confirmation, and a
// confirmation without a password is itself a violation.
func Profile(in *ProfileInput) []apperr.Violation {
	var c collector
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	in.ConfirmPassword = strings.TrimSpace(in.ConfirmPassword)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	checkEmail(&c, in.Email)
	if in.Password != "" {
		checkPassword(&c, in.Password)
		if in.ConfirmPassword != in.Password {
			c.add("confirmPassword", "Passwords must match.")
		}
	} else if in.ConfirmPassword != "" {
		c.add("confirmPassword", "Confirm password must be empty when not changing your password.")
	}
	checkNames(&c, in.FirstName, in.LastName)
	return c.result()
}

// Post validates and sanitizes a post payload. Length bounds apply to the
// submitted markup; sanitization runs after so stored content is always
// clean.
func Post(in *PostInput, s *Sanitizer) []apperr.Violation {
	var c collector
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	if len(in.Title) > MaxTitleLen {
		c.add("title", "Max title length is 255 characters.")
	}
	if len(in.Content) > MaxPostContentLen {
		c.add("content", "Maximum article length is 65535 characters.")
	}
	in.Title = s.RichText(in.Title)
	in.Content = s.RichText(in.Content)
	return c.result()
}

// Comment validates and sanitizes a comment payload.
func Comment(in *CommentInput, s *Sanitizer) []apperr.Violation {
	var c collector
	in.Content = strings.TrimSpace(in.Content)

	if in.Content == "" {
		c.add("content", "Your comment must not be empty.")
	}
	if len(in.Content) > MaxCommentLen {
		c.add("content", "Maximum comment length is 1000 characters.")
	}
	in.Content = s.RichText(in.Content)
	return c.result()
}

func checkEmail(c *collector, email string) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		c.add("email", "Must input a valid email.")
	}
	if len(email) > MaxEmailLen {
		c.add("email", "Email must be 255 characters or less.")
	}
}

func checkPassword(c *collector, password string) {
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		c.add("password", "Password must be 5 to 64 characters long.")
	}
}

func checkNames(c *collector, firstName, lastName string) {
	if firstName == "" {
		c.add("firstName", "You must include your first name.")
	}
	if len(firstName) > MaxFirstNameLen {
		c.add("firstName", "First name cannot exceed 50 characters.")
	}
	if firstName != "" && !isAlpha(firstName) {
		c.add("firstName", "First name must only include letters.")
	}
	if lastName == "" {
		c.add("lastName", "You must include your last name.")
	}
	if len(lastName) > MaxLastNameLen {
		c.add("lastName", "Last name cannot exceed 60 characters.")
	}
	if lastName != "" && !isAlpha(lastName) {
		c.add("lastName", "Last name must only include letters.")
	}
}

// isAlpha reports whether s consists solely of letters. Names take the
// stricter rule: no digits, punctuation or markup of any kind.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
