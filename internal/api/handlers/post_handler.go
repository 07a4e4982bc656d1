package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-blog/inkwell-be/internal/services"
	"github.com/rs/zerolog/log"
)

// PostHandler serves the public, unauthenticated reading surface: only
// published posts are ever visible here.
type PostHandler struct {
	errWriter
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider, production bool) *PostHandler {
	return &PostHandler{errWriter: errWriter{production}, service: service}
}

// List returns published posts with content previews, newest-updated first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	posts, err := h.service.ListPublished(limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve posts")
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "All posts retrieved.",
		"posts":   posts,
	})
}

// Get returns a single published post with its full content.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	post, err := h.service.GetPublished(postID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post retrieved.",
		"post":    post,
	})
}
