package httpx

import (
	"log/slog"
	"net/http"

	"github.com/voiceforge/voiceforge/internal/service"
)

// AuthRouterServices holds the services needed by the auth HTTP router.
type AuthRouterServices struct {
	Auth   *service.AuthService
	Logger *slog.Logger
}

// NewAuthRouter creates the router for the authentication service.
func NewAuthRouter(services AuthRouterServices) http.Handler {
	mux := http.NewServeMux()

	h := &AuthHandlers{Svc: services.Auth}
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /validate", h.Validate)
	mux.Handle("GET /health", HealthHandler("auth-service"))
	mux.Handle("HEAD /health", HealthHandler("auth-service"))

	return wrap(mux, services.Logger)
}

// JobRouterServices holds the services needed by the job HTTP router.
type JobRouterServices struct {
	Jobs   *service.JobService
	Logger *slog.Logger
}

// NewJobRouter creates the router for the clone job service. All job routes
// require the gateway identity headers; health does not.
func NewJobRouter(services JobRouterServices) http.Handler {
	mux := http.NewServeMux()

	h := &JobHandlers{Svc: services.Jobs}
	authed := RequireIdentity()
	mux.Handle("POST /clones", authed(http.HandlerFunc(h.CreateJob)))
	mux.Handle("GET /clones", authed(http.HandlerFunc(h.ListJobs)))
	mux.Handle("GET /clones/stats", authed(http.HandlerFunc(h.GetJobStats)))
	mux.Handle("GET /clones/{id}", authed(http.HandlerFunc(h.GetJob)))
	mux.Handle("GET /clones/{id}/status", authed(http.HandlerFunc(h.GetJobStatus)))
	mux.Handle("GET /health", HealthHandler("clone-job-service"))
	mux.Handle("HEAD /health", HealthHandler("clone-job-service"))

	return wrap(mux, services.Logger)
}

// wrap applies the shared middleware chain around a router.
func wrap(h http.Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return Recover(logger)(Logging(logger)(h))
}
