package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkwell-app/inkwell-be/internal/api/handlers"
	"github.com/inkwell-app/inkwell-be/internal/auth"
	"github.com/inkwell-app/inkwell-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	issuer *auth.Issuer,
	users services.UserServiceProvider,
	posts services.PostServiceProvider,
	comments services.CommentServiceProvider,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The SPA sends the session cookie cross-origin, so credentials must
	// be allowed for its configured origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(users, issuer)
	postHandler := handlers.NewPostHandler(posts)
	commentHandler := handlers.NewCommentHandler(comments)

	protected := issuer.Middleware()

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(protected).Get("/profile", authHandler.Profile)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.GetAll)
			r.With(protected).Post("/", postHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", postHandler.Get)
				r.With(protected).Put("/", postHandler.Update)
				r.With(protected).Delete("/", postHandler.Delete)
			})
		})

		r.Route("/{postId}/comments", func(r chi.Router) {
			r.Get("/", commentHandler.List)
			r.With(protected).Post("/", commentHandler.Create)
			r.With(protected).Delete("/{commentId}", commentHandler.Delete)
		})
	})

	return r
}
