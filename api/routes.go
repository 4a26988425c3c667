package api

import (
	"github.com/gorilla/mux"

	"github.com/quickhiresl/backend/internal/application"
	"github.com/quickhiresl/backend/internal/config"
	"github.com/quickhiresl/backend/internal/matching"
	"github.com/quickhiresl/backend/internal/notify"
	"github.com/quickhiresl/backend/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, repo *sqlite.SQLiteRepo, notifier notify.Notifier) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Services
	matcher := matching.NewService(repo, repo, logger)
	appSvc := application.NewService(repo, repo, repo, notifier, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewUsersHandler(repo)
	jobsHandler := NewJobsHandler(repo, notifier)
	matchingHandler := NewMatchingHandler(matcher)
	applicationsHandler := NewApplicationsHandler(appSvc)
	notificationsHandler := NewNotificationsHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Profile endpoints
	apiV1.HandleFunc("/users/me", usersHandler.GetMe).Methods("GET")
	apiV1.HandleFunc("/users/me/student-details", usersHandler.UpdateStudentDetails).Methods("PATCH")

	// Job endpoints; the matching route must register before the {id} route
	apiV1.HandleFunc("/jobs/matching", matchingHandler.FindMatchingJobs).Methods("GET")
	apiV1.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	apiV1.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiV1.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.GetJob).Methods("GET")
	apiV1.HandleFunc("/jobs/{id:[0-9]+}/status", jobsHandler.UpdateJobStatus).Methods("PATCH")

	// Application endpoints
	apiV1.HandleFunc("/applications", applicationsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/applications/my", applicationsHandler.ListMine).Methods("GET")
	apiV1.HandleFunc("/applications/owner", applicationsHandler.ListForOwner).Methods("GET")
	apiV1.HandleFunc("/applications/job/{jobId:[0-9]+}", applicationsHandler.ListForJob).Methods("GET")
	apiV1.HandleFunc("/applications/{id:[0-9]+}/status", applicationsHandler.UpdateStatus).Methods("PATCH")
	apiV1.HandleFunc("/applications/{id:[0-9]+}/request-completion", applicationsHandler.RequestCompletion).Methods("POST")
	apiV1.HandleFunc("/applications/{id:[0-9]+}/confirm-completion", applicationsHandler.ConfirmCompletion).Methods("POST")
	apiV1.HandleFunc("/applications/{id:[0-9]+}/cancel-completion", applicationsHandler.CancelCompletion).Methods("POST")

	// Notification endpoints
	apiV1.HandleFunc("/notifications", notificationsHandler.List).Methods("GET")
	apiV1.HandleFunc("/notifications/{id:[0-9]+}/read", notificationsHandler.MarkRead).Methods("PATCH")
	apiV1.HandleFunc("/notifications/read-all", notificationsHandler.MarkAllRead).Methods("PATCH")

	return r
}
