// Package server assembles the review server: storage backend, document
// store, intake limiter and the gRPC and HTTP front ends, and runs them until
// the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/dmitrijs2005/vendorrisk/internal/server/config"
	"github.com/dmitrijs2005/vendorrisk/internal/server/httpapi"
	"github.com/dmitrijs2005/vendorrisk/internal/server/ratelimit"
	"github.com/dmitrijs2005/vendorrisk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vendorrisk/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/vendorrisk/internal/server/grpc"
)

const intakeWindow = time.Minute

var (
	logOutput    io.Writer = os.Stdout
	sqlOpen                = sql.Open
	signalNotify           = signal.Notify
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	service *services.AssessmentService
	limiter httpapi.Limiter
	closers []io.Closer
}

// NewApp opens the configured backends. With an empty DSN the assessments
// live in process memory.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	app := &App{config: c}
	if err := app.init(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	if err := app.initLogger(); err != nil {
		return err
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager = repomanager.NewInMemoryRepositoryManager()
	)

	if app.config.DatabaseDSN != "" {
		var err error
		db, err = sqlOpen("pgx", app.config.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("db init error: %w", err)
		}
		app.closers = append(app.closers, db)

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("db ping error: %w", err)
		}

		pm := repomanager.NewPostgresRepositoryManager()
		if err := pm.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("db migrations error: %w", err)
		}
		rm = pm
	}

	var docs services.DocumentStore
	if app.config.DocumentStoreEnabled() {
		docs = services.NewS3DocumentStore(app.config)
	}

	app.service = services.NewAssessmentService(db, rm, docs, app.logger)

	if app.config.SeedSampleData {
		if err := app.service.Seed(ctx, assessment.SampleAssessments()); err != nil {
			return fmt.Errorf("seed error: %w", err)
		}
	}

	if app.config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
		app.closers = append(app.closers, client)
		app.limiter = ratelimit.NewRedisLimiter(client, app.config.IntakeRateLimit, intakeWindow, "vendorrisk:intake")
	}

	app.logger.Info(ctx, "backends ready",
		"postgres", db != nil,
		"documents", docs != nil,
		"rate_limit", app.limiter != nil,
	)
	return nil
}

// initLogger writes JSON to stdout and, when configured, mirrors every record
// to a GELF collector.
func (app *App) initLogger() error {
	out := logOutput
	if app.config.GelfAddr != "" {
		gw, err := logging.NewGelfWriter(app.config.GelfAddr, "vendorrisk")
		if err != nil {
			return err
		}
		app.closers = append(app.closers, gw)
		out = io.MultiWriter(out, gw)
	}
	app.logger = logging.NewJSON(out, slog.LevelInfo)
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signalNotify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.service, app.config.RequestTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := httpapi.NewHandler(app.service, app.limiter, app.logger)
	router := httpapi.NewRouter(h, app.logger, app.config.RequestTimeout)

	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or either server
// fails, then releases the backends.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	app.Close()
}

// Close releases backends in reverse order of opening.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		_ = app.closers[i].Close()
	}
	app.closers = nil
}
