package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/inkwell-blog/inkwell-be/internal/auth"
	"github.com/inkwell-blog/inkwell-be/internal/models"
	"github.com/rs/zerolog/log"
)

// errWriter maps service errors onto HTTP responses. Embedded by every
// handler so all endpoints speak the same error dialect.
type errWriter struct {
	production bool
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError translates the error taxonomy into statuses and bodies.
// Validation failures carry the full violation list; internal failures echo
// their cause only outside production.
func (e errWriter) writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.NewInternal("unexpected error: %v", err)
	}

	switch appErr.Kind {
	case apperr.Validation, apperr.Conflict:
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": appErr.Message,
			"errors":  appErr.Violations,
		})
	case apperr.Authentication:
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": appErr.Message})
	case apperr.Authorization:
		respondJSON(w, http.StatusForbidden, map[string]string{"message": appErr.Message})
	case apperr.NotFound:
		respondJSON(w, http.StatusNotFound, map[string]string{"message": appErr.Message})
	default:
		log.Error().Err(appErr).Msg("Internal error")
		msg := appErr.Message
		if e.production {
			msg = "Internal Server Error"
		}
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"errors": []apperr.Violation{{Msg: msg}},
		})
	}
}

// actorFromRequest returns the authenticated user placed in the context by
// the auth middleware. Its absence on a protected route is a server bug,
// not a client error.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		log.Error().Str("path", r.URL.Path).Msg("Could not retrieve actor from context")
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"errors": []apperr.Violation{{Msg: "Internal Server Error"}},
		})
		return models.User{}, false
	}
	return actor, true
}

// pagination reads limit/offset query parameters; unparsable or absent
// values fall back to the service defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
