// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/observability"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/rest"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// storageCheckInterval is how often Run pings storage in the background.
const storageCheckInterval = 15 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	server      *rest.Server
	health      *observability.HealthChecker
	metrics     *observability.Metrics

	checkInterval time.Duration
}

// openPostgres is replaced in tests.
var openPostgres = repomanager.OpenPostgres

func NewApp(c *config.Config) (*App, error) {
	return newApp(context.Background(), c, logging.NewJSONLogger(os.Stdout, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	rm, err := newRepositoryManager(ctx, c, metrics)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	us := services.NewUserService(rm, hasher, c)
	ts := services.NewTaskService(rm, c)

	health := observability.NewHealthChecker(rm, c.QueryTimeout)

	srv := rest.NewServer(rest.Options{
		Address:         c.EndpointAddrHTTP,
		CORSOrigins:     c.CORSOrigins,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, us, ts, metrics, health)

	return &App{
		config:        c,
		logger:        logger,
		repomanager:   rm,
		server:        srv,
		health:        health,
		metrics:       metrics,
		checkInterval: storageCheckInterval,
	}, nil
}

func newRepositoryManager(ctx context.Context, c *config.Config, metrics *observability.Metrics) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == config.MemoryDSN {
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := openPostgres(ctx, repomanager.PoolConfig{
		DSN:             c.DatabaseDSN,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxOpenConns,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		PingTimeout:     c.QueryTimeout,
	})
	if err != nil {
		return nil, err
	}

	metrics.RegisterDBStats(db, "taskkeeper")

	return repomanager.NewPostgresRepositoryManager(db)
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

func (app *App) logStorageState(ctx context.Context) func(up bool, err error) {
	return func(up bool, err error) {
		if up {
			app.logger.Info(ctx, "storage reachable")
			return
		}
		app.logger.Warn(ctx, "storage unreachable", "error", err.Error())
	}
}

// Run serves the API and monitors storage until ctx is canceled, a
// termination signal arrives or the server fails, then releases storage.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(gctx)
	})
	g.Go(func() error {
		return app.health.Monitor(gctx, app.checkInterval, app.metrics, app.logStorageState(gctx))
	})

	err := g.Wait()

	if cerr := app.repomanager.Close(); cerr != nil {
		app.logger.Error(context.Background(), "closing storage", "error", cerr.Error())
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
