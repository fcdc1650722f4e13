/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the web frontend
  5. RequireAuth (data routes only): bearer token -> user id

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Token middleware and account endpoints
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Everything else is scoped to the authenticated user
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)

			r.Route("/worklog", func(r chi.Router) {
				r.Get("/", h.ListWorkLog)
				r.Get("/day/{date}", h.GetDayView)
				r.Get("/report/{year}", h.GetYearReport)
				r.Put("/{date}", h.UpsertWorkLog)
				r.Delete("/{date}", h.DeleteWorkLog)
			})

			r.Route("/carryover", func(r chi.Router) {
				r.Get("/{year}", h.GetCarryOver)
				r.Put("/{year}", h.PutCarryOver)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/{year}/balance", h.GetLeaveBalance)
				r.Put("/{year}/balance", h.PutLeaveBalance)
				r.Get("/{year}/entries", h.ListLeaveEntries)
				r.Post("/{year}/entries", h.AddLeaveEntry)
				r.Get("/{year}/stats", h.GetLeaveStats)
				r.Delete("/entries/{id}", h.DeleteLeaveEntry)
			})
		})
	})

	return r
}
