// @title Todo API
// @version 1.0
// @description CRUD API for todos with server-side filtering and sorting
// @host localhost:8080
// @BasePath /api
// @schemes http
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	docs "github.com/xyz-asif/todoapp/docs"
	"github.com/xyz-asif/todoapp/internal/config"
	"github.com/xyz-asif/todoapp/internal/database"
	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/pkg/logger"
	"github.com/xyz-asif/todoapp/internal/pkg/ratelimit"
	"github.com/xyz-asif/todoapp/internal/pkg/telemetry"
	"github.com/xyz-asif/todoapp/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat(), os.Stdout))

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = cfg.APIBasePath

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer(ctx, telemetry.Config{
			ServiceName: "todoapp",
			Environment: cfg.AppEnv,
		})
		if err != nil {
			logger.Fatal("Failed to start tracing", "error", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("Tracer shutdown failed", "error", err)
			}
		}()
	}

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var limiter *ratelimit.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = ratelimit.NewWithBurst(cfg.RateLimit, cfg.RateLimitWindow, cfg.RateLimitBurst)
		limiter.StartCleanup(ctx, 5*time.Minute)
	}

	router := routes.NewRouter(cfg, routes.Deps{
		Todos:    todos.NewService(repo),
		Registry: registry,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "store", cfg.StoreDriver, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return
	}
	logger.Info("Server exited")
}

// openStore connects the configured backing store. The returned func
// releases it.
func openStore(ctx context.Context, cfg *config.Config) (todos.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := database.ConnectMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateMySQL(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return todos.NewMySQLRepository(db), func() { _ = db.Close() }, nil

	case config.StoreMongo:
		mdb, err := database.ConnectMongo(ctx, database.MongoConfig{URI: cfg.MongoURI, DBName: cfg.MongoDB})
		if err != nil {
			return nil, nil, err
		}
		repo, err := todos.NewMongoRepository(ctx, mdb.Database)
		if err != nil {
			_ = mdb.Disconnect(context.Background())
			return nil, nil, err
		}
		return repo, func() { _ = mdb.Disconnect(context.Background()) }, nil

	case config.StoreMemory:
		return todos.NewMemoryRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
