package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/inkwell-blog/inkwell-be/internal/api/handlers"
	"github.com/inkwell-blog/inkwell-be/internal/auth"
	"github.com/inkwell-blog/inkwell-be/internal/config"
	"github.com/inkwell-blog/inkwell-be/internal/services"
)

// NewRouter creates and configures a new Chi router. Public reading and
// account creation need no token; everything else sits behind the bearer
// middleware, which re-resolves the actor through the user service.
func NewRouter(
	cfg *config.Config,
	tokens *auth.Manager,
	userService services.UserServiceProvider,
	postService services.PostServiceProvider,
	commentService services.CommentServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	production := cfg.IsProduction()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens, production)
	postHandler := handlers.NewPostHandler(postService, production)
	authorPostHandler := handlers.NewAuthorPostHandler(postService, production)
	commentHandler := handlers.NewCommentHandler(commentService, production)

	// Public routes: login, signup and the published reading surface.
	r.Post("/login", userHandler.Login)
	r.Post("/user", userHandler.Signup)
	r.Get("/post", postHandler.List)
	r.Get("/post/{postId}", postHandler.Get)
	r.Get("/post/{postId}/comment", commentHandler.List)

	// Protected routes: everything here sees a fresh actor in the context.
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware(userService))

		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)

		r.Route("/author/post", func(r chi.Router) {
			r.Get("/", authorPostHandler.List)
			r.Post("/", authorPostHandler.Create)
			r.Route("/{postId}", func(r chi.Router) {
				r.Get("/", authorPostHandler.Get)
				r.Put("/", authorPostHandler.Update)
				r.Patch("/", authorPostHandler.TogglePublish)
				r.Delete("/", authorPostHandler.Delete)
			})
		})

		r.Post("/post/{postId}/comment", commentHandler.Create)
		r.Put("/post/{postId}/comment/{commentId}", commentHandler.Update)
		r.Delete("/post/{postId}/comment/{commentId}", commentHandler.Delete)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"This route does not exist."}`))
	})

	return r
}
