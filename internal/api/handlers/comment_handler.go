package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-blog/inkwell-be/internal/services"
	"github.com/inkwell-blog/inkwell-be/internal/validate"
	"github.com/rs/zerolog/log"
)

// CommentHandler handles the comment endpoints nested under a post.
type CommentHandler struct {
	errWriter
	service services.CommentServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service services.CommentServiceProvider, production bool) *CommentHandler {
	return &CommentHandler{errWriter: errWriter{production}, service: service}
}

// List returns a post's comments, newest-updated first. Public.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	comments, err := h.service.ListForPost(chi.URLParam(r, "postId"), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Comments retrieved.",
		"comments": comments,
	})
}

// Create adds the actor's comment to a published post.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var payload validate.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	comment, err := h.service.Create(actor, chi.URLParam(r, "postId"), &payload)
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to create comment")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "New comment created.",
		"comment": comment,
	})
}

// Update rewrites the actor's own comment.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var payload validate.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	comment, err := h.service.Update(actor, chi.URLParam(r, "postId"), chi.URLParam(r, "commentId"), &payload)
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to update comment")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Comment updated.",
		"comment": comment,
	})
}

// Delete removes a comment, allowed for its writer or the post's owner.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	comment, err := h.service.Delete(actor, chi.URLParam(r, "postId"), chi.URLParam(r, "commentId"))
	if err != nil {
		log.Warn().Err(err).Str("user_id", actor.ID).Msg("Failed to delete comment")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Comment deleted.",
		"comment": comment,
	})
}
