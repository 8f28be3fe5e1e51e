package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/middleware"
	"github.com/BuzzLyutic/task-auth-api/pkg/respond"
)

type RouterDeps struct {
	Tasks         TaskService
	Auth          AuthService
	Tokens        middleware.TokenValidator
	Users         middleware.UserLookup
	Logger        *zap.Logger
	AuthRateLimit int // запросов в минуту с одного IP
}

func NewRouter(deps RouterDeps) http.Handler {
	v := NewRequestValidator()
	taskHandler := NewTaskHandler(deps.Tasks, v, deps.Logger)
	authHandler := NewAuthHandler(deps.Auth, v, deps.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	r.Route("/api/auth", func(r chi.Router) {
		if deps.AuthRateLimit > 0 {
			r.Use(httprate.LimitByIP(deps.AuthRateLimit, time.Minute))
		}
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Tokens, deps.Users, deps.Logger))
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/status/{status}", taskHandler.ListByStatus)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Patch("/{id}/toggle", taskHandler.Toggle)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r
}
