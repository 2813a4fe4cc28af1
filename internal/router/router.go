package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/accountd-dev/accountd/internal/middleware"
	"github.com/accountd-dev/accountd/internal/middleware/metrics"
	"github.com/accountd-dev/accountd/internal/setup"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// JSON API only, no scripts/styles needed
	csp := "default-src 'none'; frame-ancestors 'none'"
	r.Use(middleware.SecurityHeaders(deps.Config.Public.SecureCookies, csp))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)

		r.Route("/user", func(r chi.Router) {
			r.Post("/", h.CreateUser)
			r.Post("/resend-code", h.ResendCode)
			r.Post("/authenticate", h.Authenticate)
			r.Get("/authenticate/renew", h.Renew)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/code-validation", h.CodeValidation)

			r.Group(func(r chi.Router) {
				r.Use(authMw.NeedAuth())
				r.Get("/", h.Me)
			})
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
