package worker

import (
	"context"
	"time"

	"hn_daily/internal/config"
	"hn_daily/internal/dates"
	"hn_daily/internal/fetcher"
	"hn_daily/internal/logger"
	"hn_daily/internal/metrics"
	"hn_daily/internal/models"
	"hn_daily/internal/outline"
	"hn_daily/internal/writer"
)

// Fetcher downloads a document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RunRecorder stores a summary of each successful run.
type RunRecorder interface {
	SaveRun(ctx context.Context, run models.Run) error
}

// Reporter receives the outcome of a run.
type Reporter interface {
	Info(msg string)
	Fail(v any)
}

type Worker struct {
	cfg      *config.Config
	fetcher  Fetcher
	recorder RunRecorder
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewWorker wires a Worker. recorder may be nil.
func NewWorker(cfg *config.Config, f Fetcher, recorder RunRecorder, m *metrics.Metrics) *Worker {
	if m == nil {
		m = metrics.New()
	}
	return &Worker{
		cfg:      cfg,
		fetcher:  f,
		recorder: recorder,
		metrics:  m,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to pick the digest date.
func (w *Worker) WithClock(now func() time.Time) *Worker {
	w.now = now
	return w
}

// Run fetches yesterday's digest, converts it to an outline note and
// writes it under the target directory.
func (w *Worker) Run(ctx context.Context) (models.Run, error) {
	in := w.cfg.Run()
	date := dates.Yesterday(w.now())
	url := fetcher.BuildURL(w.cfg.BaseURL, in.Lang, date)

	log := logger.Log.WithFields(map[string]interface{}{
		"date": date.String(),
		"lang": in.Lang,
		"url":  url,
	})
	log.Debug("Fetching digest")

	start := time.Now()
	raw, err := w.fetcher.Fetch(ctx, url)
	w.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		log.Errorf("Fetch failed: %v", err)
		return models.Run{}, err
	}

	content := outline.Transform(raw)

	path, err := writer.Write(in.TargetDir, date, content)
	if err != nil {
		log.Errorf("Write failed: %v", err)
		return models.Run{}, err
	}

	run := models.Run{
		Date:       date,
		Lang:       in.Lang,
		URL:        url,
		OutputPath: path,
		Bytes:      len(content),
		FinishedAt: w.now(),
	}
	log.WithFields(map[string]interface{}{
		"path":  path,
		"bytes": run.Bytes,
	}).Info("Digest written")

	if w.recorder != nil {
		if err := w.recorder.SaveRun(ctx, run); err != nil {
			log.Warnf("Save run failed: %v", err)
		}
	}
	return run, nil
}

// HandleRun executes Run and reports the result to rep. A panic during
// the run is reported as a failure rather than crashing the process.
func (w *Worker) HandleRun(ctx context.Context, rep Reporter) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("Run panicked: %v", r)
			w.metrics.Failure()
			rep.Fail(r)
		}
	}()

	run, err := w.Run(ctx)
	if err != nil {
		w.metrics.Failure()
		rep.Fail(err)
		return
	}

	w.metrics.Success(run.Bytes, run.FinishedAt)
	rep.Info("Successfully created file at " + run.OutputPath)
}
