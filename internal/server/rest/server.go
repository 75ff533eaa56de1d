// Package rest exposes the taskkeeper HTTP API: registration and login,
// owner-scoped task CRUD, health probes and Prometheus metrics.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/observability"
	"github.com/gorilla/mux"
)

// UserService is the account surface the API needs.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// TaskService is the owner-scoped task surface the API needs.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, description string, priority models.Priority) (*models.Task, error)
	List(ctx context.Context, ownerID int64) ([]models.Task, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Task, error)
	Update(ctx context.Context, ownerID, id int64, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// Options configures a Server.
type Options struct {
	Address         string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type Server struct {
	address         string
	corsOrigins     []string
	shutdownTimeout time.Duration

	users   UserService
	tasks   TaskService
	logger  logging.Logger
	metrics *observability.Metrics
	health  *observability.HealthChecker

	handler http.Handler
}

func NewServer(opts Options, l logging.Logger, us UserService, ts TaskService,
	m *observability.Metrics, h *observability.HealthChecker) *Server {

	s := &Server{
		address:         opts.Address,
		corsOrigins:     opts.CORSOrigins,
		shutdownTimeout: opts.ShutdownTimeout,
		users:           us,
		tasks:           ts,
		logger:          l.With("module", "rest_server"),
		metrics:         m,
		health:          h,
	}

	router := mux.NewRouter()
	s.RegisterRoutes(router)

	// outermost first: ids and recovery cover 404/405 responses too
	s.handler = requestIDMiddleware(s.recoveryMiddleware(s.accessLogMiddleware(s.corsMiddleware(router))))

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is canceled,
// then drains in-flight requests for up to the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
