package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
	"github.com/pribylovaa/go-resource-market/internal/http/handlers"
	"github.com/pribylovaa/go-resource-market/internal/http/middleware"
	"github.com/pribylovaa/go-resource-market/internal/models"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Metrics == nil отключает HTTP-метрики.
	Metrics *middleware.HTTPMetrics
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.Recover(),
	)
	if opts.Metrics != nil {
		root.Use(opts.Metrics.Middleware())
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.Write(w, r, http.StatusNotFound, "not_found", "route not found")
	})
	root.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierrors.Write(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	registerRoutes(root, handlers.New(svc), middleware.RequireAuth(svc))

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.Middleware) {
	r.Get("/health", h.Health)

	// auth
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/token", h.Token)
	r.Delete("/logout", h.Logout)

	// lookups
	r.Get("/categories", h.Lookup(models.LookupCategories))
	r.Get("/statuses", h.Lookup(models.LookupStatuses))
	r.Get("/universities", h.Lookup(models.LookupUniversities))
	r.Get("/courses", h.Lookup(models.LookupCourses))
	r.Get("/roles", h.Lookup(models.LookupRoles))

	// resources (чтение открыто)
	r.Get("/resources", h.ListResources)
	r.Get("/resources/{id}", h.GetResource)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/users/me", h.Me)
		r.Put("/users/{id}/profile", h.UpdateProfile)

		r.Post("/resources", h.CreateResource)
		r.Patch("/resources/{id}", h.UpdateResource)
		r.Delete("/resources/{id}", h.DeleteResource)
		r.Post("/resources/{id}/images/presign", h.ImagePresign)
	})
}
