package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/inkwell-blog/inkwell-be/internal/models"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Signup(in *validate.SignupInput) (models.User, error)
	Authenticate(in *validate.LoginInput) (models.User, error)
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	UpdateProfile(actor models.User, in *validate.ProfileInput) (models.User, error)
}

// UserService provides signup, login and profile management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, email, password_hash, first_name, last_name, author, created_at, updated_at"

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	var author int
	err := scanner.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &author, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	user.Author = author != 0
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.NewNotFound("User not found.")
		}
		return models.User{}, apperr.NewInternal("failed to load user: %v", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash. This is the lookup token verification performs on every
// protected request.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.NewNotFound("User not found.")
		}
		return models.User{}, apperr.NewInternal("failed to load user: %v", err)
	}
	return user, nil
}

// Signup validates the payload, rejects emails already in use and creates
// the account with a bcrypt-hashed password.
func (s *UserService) Signup(in *validate.SignupInput) (models.User, error) {
	violations := validate.Signup(in)

	if in.Email != "" {
		var existing string
		err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", in.Email).Scan(&existing)
		switch {
		case err == nil:
			violations = append(violations, apperr.Violation{Field: "email", Msg: "Email already in use."})
		case err != sql.ErrNoRows:
			return models.User{}, apperr.NewInternal("failed to check email: %v", err)
		}
	}

	if len(violations) > 0 {
		return models.User{}, apperr.NewValidation("Failed to create user.", violations)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperr.NewInternal("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Author:       in.Author,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.db.Exec(
		"INSERT INTO users(id, email, password_hash, first_name, last_name, author, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, boolToInt(user.Author), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, apperr.NewInternal("failed to create user: %v", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a credential pair. Unknown email and wrong password
// produce the same response; the distinction is only logged upstream.
func (s *UserService) Authenticate(in *validate.LoginInput) (models.User, error) {
	if violations := validate.Login(in); len(violations) > 0 {
		return models.User{}, apperr.NewValidation("Failed to log in.", violations)
	}

	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", in.Email)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.NewAuthentication("That email and password combination does not exist.")
		}
		return models.User{}, apperr.NewInternal("failed to load user: %v", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return models.User{}, apperr.NewAuthentication("That email and password combination does not exist.")
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile validates and applies a profile update for the actor. An
// email matching another user is a conflict; the actor keeping their own
// email is not. When the payload carries a password the stored hash is
// replaced, otherwise it is left untouched.
func (s *UserService) UpdateProfile(actor models.User, in *validate.ProfileInput) (models.User, error) {
	violations := validate.Profile(in)

	if in.Email != "" {
		var existingID string
		err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", in.Email).Scan(&existingID)
		switch {
		case err == nil && existingID != actor.ID:
			violations = append(violations, apperr.Violation{Field: "email", Msg: "Email already in use."})
		case err != nil && err != sql.ErrNoRows:
			return models.User{}, apperr.NewInternal("failed to check email: %v", err)
		}
	}

	if len(violations) > 0 {
		return models.User{}, apperr.NewValidation("Failed to update profile.", violations)
	}

	now := time.Now().UTC()
	if in.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, apperr.NewInternal("failed to hash password: %v", err)
		}
		_, err = s.db.Exec(
			"UPDATE users SET email = ?, first_name = ?, last_name = ?, password_hash = ?, updated_at = ? WHERE id = ?",
			in.Email, in.FirstName, in.LastName, string(hashedPassword), now, actor.ID,
		)
		if err != nil {
			return models.User{}, apperr.NewInternal("failed to update profile: %v", err)
		}
	} else {
		_, err := s.db.Exec(
			"UPDATE users SET email = ?, first_name = ?, last_name = ?, updated_at = ? WHERE id = ?",
			in.Email, in.FirstName, in.LastName, now, actor.ID,
		)
		if err != nil {
			return models.User{}, apperr.NewInternal("failed to update profile: %v", err)
		}
	}

	user, err := s.GetUserByID(actor.ID)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
