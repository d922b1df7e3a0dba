package rest

import (
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/checklist"
	"github.com/frahmantamala/workforce-ops/internal/dashboard"
	"github.com/frahmantamala/workforce-ops/internal/issue"
	"github.com/frahmantamala/workforce-ops/internal/notification"
	"github.com/frahmantamala/workforce-ops/internal/performance"
	"github.com/frahmantamala/workforce-ops/internal/transport/middleware"
	"github.com/frahmantamala/workforce-ops/internal/transport/swagger"
	"github.com/frahmantamala/workforce-ops/internal/user"
)

type Handlers struct {
	Health       *HealthHandler
	Auth         *auth.Handler
	User         *user.Handler
	Checklist    *checklist.Handler
	Issue        *issue.Handler
	Performance  *performance.Handler
	Dashboard    *dashboard.Handler
	Notification *notification.Handler
}

type RouterOptions struct {
	AllowedOrigins []string
	// Spec is optional; without it the docs routes are not mounted.
	Spec *swagger.Spec
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts RouterOptions) {
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)

	if h.Health != nil {
		router.Get("/health", h.Health.Health)
		router.Get("/ping", h.Health.Ping)
	}

	if opts.Spec != nil {
		router.Get(swagger.SpecRoute, opts.Spec.ServeHTTP)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Post("/signup", h.Auth.Signup)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.RefreshToken)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.Auth.AuthMiddleware)
		r.Use(middleware.UserContext)

		r.Get("/profile", h.User.GetProfile)
		r.Get("/dashboard", h.Dashboard.GetDashboard)

		r.Route("/checklist", func(cr chi.Router) {
			cr.Get("/submissions", h.Checklist.ListSubmissions)
			cr.Post("/submit", h.Checklist.Submit)
			cr.Get("/{role}", h.Checklist.GetChecklist)
		})

		r.Route("/issues", func(ir chi.Router) {
			ir.Post("/", h.Issue.CreateIssue)
			ir.Get("/", h.Issue.ListIssues)
		})

		r.Route("/performance/{userId}", func(pr chi.Router) {
			pr.Get("/", h.Performance.GetPerformance)
			pr.Get("/report", h.Performance.GetReport)
		})

		r.Route("/notifications", func(nr chi.Router) {
			nr.Get("/", h.Notification.List)
			nr.Post("/dismiss", h.Notification.DismissAll)
			nr.Post("/{id}/dismiss", h.Notification.Dismiss)
		})

		r.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAdmin)
			ar.Get("/users", h.User.ListUsers)
		})
	})
}
