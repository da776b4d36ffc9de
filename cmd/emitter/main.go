package main

import (
	"context"
	"os/signal"
	"syscall"

	"telemetry_demo/internal/config"
	"telemetry_demo/internal/emitter"
	"telemetry_demo/internal/logger"
)

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
	}).Named("emitter")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := emitter.NewClient(cfg.Emitter.Server, cfg.Emitter.Timeout)
	e := emitter.New(client, emitter.NewGenerator(), cfg.Emitter.Interval, log)

	log.Infow("emitter started, Ctrl+C to stop",
		"server", cfg.Emitter.Server,
		"interval", cfg.Emitter.Interval,
		"instance_id", client.InstanceID(),
	)
	e.Run(ctx)
	log.Infow("emitter stopped")
}
