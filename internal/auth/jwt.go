package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkwell-blog/inkwell-be/internal/apperr"
	"github.com/inkwell-blog/inkwell-be/internal/models"
	"github.com/rs/zerolog/log"
)

// tokenLifetime is fixed at 30 days from issuance.
const tokenLifetime = 30 * 24 * time.Hour

// Claims defines the JWT claims structure. The claim set is a snapshot of
// the user at issuance time; profile edits require reissuing a token.
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"id"`
	Name   string `json:"name"`
	Author bool   `json:"author"`
	jwt.RegisteredClaims
}

// UserResolver looks up the live user record a verified token refers to.
type UserResolver interface {
	GetUserByEmail(email string) (models.User, error)
}

// Manager issues and verifies bearer tokens. The signing secret is injected
// at construction and read-only afterwards.
type Manager struct {
	secret []byte
	now    func() time.Time
}

// NewManager creates a token Manager with the given signing secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), now: time.Now}
}

// Issue creates a signed token for a user, expiring 30 days from now.
func (m *Manager) Issue(user models.User) (string, error) {
	claims := &Claims{
		Email:  user.Email,
		UserID: user.ID,
		Name:   user.FirstName,
		Author: user.Author,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(m.now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(m.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string, checking signature and
// expiry. Expired and malformed tokens fail alike.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// actorKey is the context key for the authenticated user.
type contextKey string

const actorKey = contextKey("actor")

// ActorFromContext returns the authenticated user stored by Middleware.
func ActorFromContext(ctx context.Context) (models.User, bool) {
	actor, ok := ctx.Value(actorKey).(models.User)
	return actor, ok
}

// WithActor stores an authenticated user in the context. Exposed for tests
// that exercise handlers without the middleware.
func WithActor(ctx context.Context, actor models.User) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// Middleware protects routes with bearer-token authentication. After
// signature and expiry checks it re-resolves the user by email, so the id
// and author flag are always current and a removed account is rejected
// immediately. That costs one store lookup per verified request; accepted
// in exchange for never acting on stale claims.
func (m *Manager) Middleware(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			if tokenStr == "" {
				unauthorized(w)
				return
			}

			claims, err := m.Verify(tokenStr)
			if err != nil {
				log.Warn().Err(err).Msg("Token verification failed")
				unauthorized(w)
				return
			}

			// A token whose subject no longer exists is a verification
			// failure. A store failure is not: that answers 500, never a
			// silent logout.
			actor, err := resolver.GetUserByEmail(claims.Email)
			if err != nil {
				var appErr *apperr.Error
				if errors.As(err, &appErr) && appErr.Kind == apperr.NotFound {
					log.Warn().Str("email", claims.Email).Msg("Token subject no longer resolves to a user")
					unauthorized(w)
					return
				}
				log.Error().Err(err).Str("email", claims.Email).Msg("Failed to resolve token subject")
				internalError(w)
				return
			}

			ctx := WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Not authenticated."})
}

func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []apperr.Violation{{Msg: "Internal Server Error"}},
	})
}
