package main

import (
	"billiard-live/auth"
	"billiard-live/infrastructure/ws"
	"billiard-live/observability"
	"billiard-live/repositories"
	"billiard-live/runtime"
	"billiard-live/runtime/workers"
	"billiard-live/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server error.
// Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, log, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	ids, err := repositories.NewIDGenerator(db, 100)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = ids.Release() }()

	if log.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		log.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, RecordMapper)
	}

	// 3. Stores and services
	profiles := repositories.NewProfileRepository(db, ids)
	matches := repositories.NewMatchRepository(db, ids, log)
	events := repositories.NewEventRepository(db, ids, log)
	matchService := services.NewMatchService(matches, events, profiles, log)
	authService := services.NewAuthService(auth.NewTokenService(config.JWTSecret, config.AuthTokenDuration), profiles)

	// 4. Observability
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)
	monitoring := observability.NewMonitoringManager(log)

	// 5. Supervision & Hub
	supervisor := workers.NewSupervisor(log, metrics, config.RestartInterval)
	hub := runtime.NewHub(log, supervisor, matchService, config.RoomBufferSize, metrics, monitoring)
	supervisor.Add(workers.NewHeartbeatWorker(log, config.HeartbeatInterval, hub, metrics, monitoring))

	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		supervisor.Run(ctx)
	}()

	// 6. HTTP / websocket server
	handler := ws.NewHandler(log, hub, matchService, authService, ws.Options{
		SessionBufferSize: config.SessionBufferSize,
		WriteTimeout:      config.WriteTimeout,
		PongTimeout:       config.PongTimeout,
		AllowedOrigins:    config.Origins(),
	}, metrics, monitoring)
	router := ws.NewRouter(log, handler, ws.RouterConfig{
		Limiter:        ws.NewIPRateLimiter(rate.Limit(config.RateLimitPerSecond), config.RateLimitBurst),
		Gatherer:       registry,
		Monitoring:     monitoring,
		AllowedOrigins: config.Origins(),
	})

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	code := exitOK
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err = <-errChan:
		code = exitRuntime
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn("HTTP shutdown incomplete", "error", shutdownErr)
	}
	hub.Stop()
	supervisor.Stop()
	<-supervised
	log.Info("Program stopped cleanly")

	return code, err
}

func buildBadgerOpts(config Config, log *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if log.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG).WithBypassLockGuard(true)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

// RecordMapper renders stored records on the debug inspector.
func RecordMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	rec := repositories.Describe(key, val)
	row.Type = rec.Kind
	row.Detail = rec.Detail
	return row
}
