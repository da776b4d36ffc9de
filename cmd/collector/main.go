package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telemetry_demo/internal/config"
	"telemetry_demo/internal/handlers"
	"telemetry_demo/internal/logger"
	"telemetry_demo/internal/repository"
	"telemetry_demo/internal/repository/redisdb"
	"telemetry_demo/internal/server"
	"telemetry_demo/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}).Named("collector")
	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// optional redis mirror
	mirror, closeMirror := openMirror(cfg.Redis, log)
	defer closeMirror()

	// wire dependencies
	repos := repository.NewRepository(mirror)
	services := service.NewService(repos, service.AuthParams{
		Secret: cfg.Auth.TokenSecret,
		TTL:    cfg.Auth.TokenTTL,
	}, log)
	apiHandler := handlers.NewHandler(services, log)

	if services.Authorization.Enabled() {
		log.Infow("fault toggles require a bearer token")
	}

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Collector.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// openMirror connects to Redis when configured. Collector runs without it otherwise.
func openMirror(cfg config.RedisConfig, log *logger.Logger) (repository.Mirror, func()) {
	if cfg.Addr == "" {
		return nil, func() {}
	}
	rdb, err := redisdb.Connect(context.Background(), cfg.Addr, cfg.DB)
	if err != nil {
		log.Fatalw("failed to connect redis", "err", err, "addr", cfg.Addr)
	}
	log.Infow("mirroring to redis", "addr", cfg.Addr, "latest_key", cfg.LatestKey, "events_channel", cfg.EventsChannel)
	return repository.NewRedisMirror(rdb, cfg.LatestKey, cfg.EventsChannel), func() {
		if err := rdb.Close(); err != nil {
			log.Warnw("failed to close redis", "err", err)
		}
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8000"
		}
		log.Infow("collector listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
