package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/server/observability"
	"github.com/gorilla/mux"
)

// taskPrefixes lists the task collection paths. /tarefas is kept for
// clients of the earlier API.
var taskPrefixes = []string{"/tasks", "/tarefas"}

// RegisterRoutes registers all API routes on router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	if s.metrics != nil {
		router.Use(observability.HTTPMetricsMiddleware(s.metrics))
		router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	if s.health != nil {
		router.HandleFunc("/health", s.health.Liveness).Methods(http.MethodGet)
		router.HandleFunc("/health/ready", s.health.Readiness).Methods(http.MethodGet)
	}

	router.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	protected := router.NewRoute().Subrouter()
	protected.Use(s.authMiddleware)

	protected.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	for _, prefix := range taskPrefixes {
		protected.HandleFunc(prefix, s.handleListTasks).Methods(http.MethodGet)
		protected.HandleFunc(prefix, s.handleCreateTask).Methods(http.MethodPost)
		protected.HandleFunc(prefix+"/{id:[0-9]+}", s.handleGetTask).Methods(http.MethodGet)
		protected.HandleFunc(prefix+"/{id:[0-9]+}", s.handleUpdateTask).Methods(http.MethodPut, http.MethodPatch)
		protected.HandleFunc(prefix+"/{id:[0-9]+}", s.handleDeleteTask).Methods(http.MethodDelete)
	}
}
