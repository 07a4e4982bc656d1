package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-blog/inkwell-be/internal/services"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
	"github.com/rs/zerolog/log"
)

// AuthorPostHandler serves the authenticated authoring dashboard. All reads
// are scoped to the actor's own posts regardless of publish state; all
// mutations go through the ownership policy inside the service.
type AuthorPostHandler struct {
	errWriter
	service services.PostServiceProvider
}

// NewAuthorPostHandler creates a new AuthorPostHandler.
func NewAuthorPostHandler(service services.PostServiceProvider, production bool) *AuthorPostHandler {
	return &AuthorPostHandler{errWriter: errWriter{production}, service: service}
}

// List returns the actor's own posts, drafts included.
func (h *AuthorPostHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	posts, err := h.service.ListByAuthor(actor, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", actor.ID).Msg("Failed to retrieve author posts")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All posts retrieved.",
		"posts":   posts,
	})
}

// Get returns one of the actor's own posts in any publish state.
func (h *AuthorPostHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetOwn(actor, chi.URLParam(r, "postId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post retrieved.",
		"post":    post,
	})
}

// Create makes a new post owned by the actor.
func (h *AuthorPostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var payload validate.PostInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	post, err := h.service.Create(actor, &payload)
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to create post")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "New post created.",
		"post":    post,
	})
}

// Update replaces the title, content and published state of an owned post.
func (h *AuthorPostHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var payload validate.PostInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	post, err := h.service.Update(actor, chi.URLParam(r, "postId"), &payload)
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to update post")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated.",
		"post":    post,
	})
}

// TogglePublish flips an owned post between draft and published.
func (h *AuthorPostHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	post, err := h.service.TogglePublish(actor, chi.URLParam(r, "postId"))
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to toggle publish state")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated.",
		"post":    post,
	})
}

// Delete removes an owned post permanently.
func (h *AuthorPostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	post, err := h.service.Delete(actor, chi.URLParam(r, "postId"))
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to delete post")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post deleted.",
		"post":    post,
	})
}
