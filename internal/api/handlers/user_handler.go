package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/inkwell-blog/inkwell-be/internal/auth"
	"github.com/inkwell-blog/inkwell-be/internal/services"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
	"github.com/rs/zerolog/log"
)

// UserHandler handles signup, login and profile management.
type UserHandler struct {
	errWriter
	service services.UserServiceProvider
	tokens  *auth.Manager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.Manager, production bool) *UserHandler {
	return &UserHandler{errWriter: errWriter{production}, service: service, tokens: tokens}
}

// Login authenticates a credential pair and returns a fresh token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload validate.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	user, err := h.service.Authenticate(&payload)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		h.writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logged in successfully.",
		"token":   token,
	})
}

// Signup creates an account and logs the new user in by returning a token.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload validate.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	user, err := h.service.Signup(&payload)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to create user")
		h.writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "User was created!",
		"token":   token,
	})
}

// GetProfile returns the authenticated user's account.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": actor})
}

// UpdateProfile applies a profile update and reissues the token: claims are
// a snapshot, so edited names or email only reach the token by reissuing.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var payload validate.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	user, err := h.service.UpdateProfile(actor, &payload)
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to update profile")
		h.writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated.",
		"token":   token,
		"user":    user,
	})
}
