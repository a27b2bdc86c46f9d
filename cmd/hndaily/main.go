package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hn_daily/internal/config"
	"hn_daily/internal/db"
	"hn_daily/internal/fetcher"
	"hn_daily/internal/logger"
	"hn_daily/internal/metrics"
	"hn_daily/internal/reporter"
	"hn_daily/internal/worker"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger.Init(os.Stdout)
	rep := reporter.New(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		rep.Fail(err)
		return rep.ExitCode()
	}

	m := metrics.New()

	var recorder worker.RunRecorder
	if cfg.DatabaseURL != "" {
		database, err := db.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Log.Warnf("DB connection error: %v", err)
		} else {
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				logger.Log.Warnf("DB migration error: %v", err)
			} else {
				recorder = database
			}
		}
	}

	wrk := worker.NewWorker(cfg, fetcher.NewFetcher(cfg.Timeout()), recorder, m)
	wrk.HandleRun(ctx, rep)

	if cfg.MetricsTextfile != "" {
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Log.Warnf("Metrics write error: %v", err)
		}
	}

	return rep.ExitCode()
}
