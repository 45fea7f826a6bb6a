// Package router sets up all HTTP routes and middleware chains for the
// promptstash API. Routes split into public and authenticated groups;
// token parsing runs globally so public endpoints can attribute
// activity to signed-in callers.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"promptstash/internal/auth"
	"promptstash/internal/handlers"
	"promptstash/internal/middleware"
)

// Auth endpoints share one rate-limit budget per client IP.
const (
	authRateLimit  = 20
	authRateWindow = time.Minute
)

// New creates and returns the configured chi router with all middleware
// and route groups wired up.
func New(tokens *auth.TokenService, authH *handlers.Auth, prompts *handlers.Prompts, categories *handlers.Categories, stats *handlers.Stats, tags *handlers.Tags) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(auth.Authenticate(tokens))

	r.Get("/health", healthHandler)

	// Identity flows. Rate limited to slow down credential guessing.
	r.Route("/auth", func(r chi.Router) {
		limiter := middleware.NewRateLimiter(authRateLimit, authRateWindow)
		r.Use(limiter.Middleware)

		r.Post("/signup", authH.Signup)
		r.Post("/signin", authH.Signin)
		r.Post("/send-verification", authH.SendVerification)
		r.Post("/verify-code", authH.VerifyCode)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/me", authH.Me)
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Public catalog surface.
		r.Get("/prompts", prompts.List)
		r.Get("/prompts/{id}", prompts.Get)
		r.Post("/prompts/{id}/use", prompts.Use)
		r.Get("/prompts/{id}/comments", prompts.ListComments)
		r.Get("/categories", categories.List)
		r.Get("/search", prompts.Search)
		r.Get("/tags", tags.List)
		r.Get("/stats", stats.Global)
		r.Get("/stats/activity", stats.Activity)

		// Mutations require a signed-in caller.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Post("/prompts", prompts.Create)
			r.Put("/prompts/{id}", prompts.Update)
			r.Delete("/prompts/{id}", prompts.Delete)
			r.Post("/prompts/{id}/review", prompts.Review)
			r.Post("/prompts/{id}/comments", prompts.CreateComment)

			r.Post("/categories", categories.Create)
			r.Put("/categories/{id}", categories.Update)
			r.Delete("/categories/{id}", categories.Delete)

			r.Get("/stats/user", stats.User)
		})
	})

	// Unmatched routes get a JSON 404 instead of chi's plain text.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
