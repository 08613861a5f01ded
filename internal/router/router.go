// Package router wires handlers and middleware into the HTTP mux.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isodigm/blogcms/internal/middleware"
	"github.com/isodigm/blogcms/internal/middleware/metrics"
	"github.com/isodigm/blogcms/internal/setup"
)

// New configures all routes. Three tiers: public, authenticated, admin.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.SecurityHeaders(false))

	h := deps.Handler
	requireAuth := middleware.RequireAuth(deps.Jwt, deps.Storage)
	requireAdmin := middleware.RequireAdmin(deps.Jwt, deps.Storage)
	optionalAuth := middleware.OptionalAuth(deps.Jwt, deps.Storage)

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	// Auth
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Get("/verify-email", h.VerifyEmail)
	r.Post("/resend-verification", h.ResendVerification)
	r.With(requireAuth).Get("/me", h.Me)
	r.With(requireAdmin).Post("/register_user", h.RegisterUser)

	// Public blog surface
	r.Route("/api/blog", func(r chi.Router) {
		r.Get("/posts", h.ListPosts)
		r.Get("/posts/{slug:[a-z0-9-]+}", h.GetPostBySlug)
		r.Get("/posts/{id:[0-9]+}/comments", h.ListComments)
		r.With(optionalAuth).Post("/posts/{id:[0-9]+}/comments", h.CreateComment)
		r.Get("/categories", h.ListCategories)

		// Admin blog surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)

			r.Get("/posts", h.ListAllPosts)
			r.Post("/posts", h.CreatePost)
			r.Get("/posts/{id:[0-9]+}", h.GetPost)
			r.Put("/posts/{id:[0-9]+}", h.UpdatePost)
			r.Delete("/posts/{id:[0-9]+}", h.DeletePost)

			r.Get("/posts/{id:[0-9]+}/comments", h.ListAllComments)
			r.Get("/comments/pending", h.ListPendingComments)
			r.Put("/comments/{id:[0-9]+}/approve", h.ApproveComment)
			r.Put("/comments/{id:[0-9]+}/reject", h.RejectComment)
			r.Delete("/comments/{id:[0-9]+}", h.DeleteComment)

			r.Post("/categories", h.CreateCategory)
			r.Put("/categories/{id:[0-9]+}", h.UpdateCategory)
			r.Delete("/categories/{id:[0-9]+}", h.DeleteCategory)
		})
	})

	// Site settings
	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/", h.GetSettings)
		r.With(requireAdmin).Put("/", h.UpdateSettings)
	})

	// Preflight requests must not 404.
	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
