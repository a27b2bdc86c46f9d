package worker_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hn_daily/internal/config"
	"hn_daily/internal/fetcher"
	"hn_daily/internal/metrics"
	"hn_daily/internal/models"
	"hn_daily/internal/reporter"
	"hn_daily/internal/worker"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const document = `---
title: 2024-03-14
---

# Hacker News Daily

## Top

### Show HN: Something
"Short summary"
`

const expected = `type:: [[Hacker News Daily]]
tags:: Hacker News

- ## Top
    - Show HN: Something
        - Short summary`

var fixedNow = time.Date(2024, time.March, 15, 6, 0, 0, 0, time.UTC)

type recorder struct {
	runs []models.Run
	err  error
}

func (r *recorder) SaveRun(_ context.Context, run models.Run) error {
	r.runs = append(r.runs, run)
	return r.err
}

type fetcherFunc func(ctx context.Context, url string) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

func newConfig(t *testing.T, baseURL, lang string) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.BaseURL = baseURL
	cfg.Lang = lang
	cfg.TargetDir = filepath.Join(t.TempDir(), "journals")
	return cfg
}

func TestHandleRun_Success(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(document))
	}))
	defer server.Close()

	cfg := newConfig(t, server.URL, "en")
	rec := &recorder{}
	m := metrics.New()
	var out bytes.Buffer
	rep := reporter.New(&out)

	worker.NewWorker(cfg, fetcher.NewFetcher(5*time.Second), rec, m).
		WithClock(func() time.Time { return fixedNow }).
		HandleRun(context.Background(), rep)

	path := filepath.Join(cfg.TargetDir, "hacker_news_daily___2024-03-14.md")
	require.Equal(t, "/docs/2024/03/14.md", requested)
	require.False(t, rep.Failed())
	require.Equal(t, "Successfully created file at "+path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, expected, string(data))

	require.Len(t, rec.runs, 1)
	require.Equal(t, path, rec.runs[0].OutputPath)
	require.Equal(t, len(expected), rec.runs[0].Bytes)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))
}

func TestRun_TranslatedURL(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("## Hallo"))
	}))
	defer server.Close()

	cfg := newConfig(t, server.URL, "de")
	run, err := worker.NewWorker(cfg, fetcher.NewFetcher(5*time.Second), nil, nil).
		WithClock(func() time.Time { return fixedNow }).
		Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/i18n/de/docusaurus-plugin-content-docs/current/2024/03/14.md", requested)
	require.Equal(t, "de", run.Lang)
	require.Equal(t, server.URL+requested, run.URL)
}

func TestHandleRun_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	cfg := newConfig(t, server.URL, "en")
	rec := &recorder{}
	m := metrics.New()
	var out bytes.Buffer
	rep := reporter.New(&out)

	worker.NewWorker(cfg, fetcher.NewFetcher(5*time.Second), rec, m).
		WithClock(func() time.Time { return fixedNow }).
		HandleRun(context.Background(), rep)

	require.True(t, rep.Failed())
	require.Contains(t, out.String(), "::error::failed to fetch content")
	require.Empty(t, rec.runs)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failure")))

	_, err := os.Stat(cfg.TargetDir)
	require.True(t, os.IsNotExist(err))
}

func TestHandleRun_WriteFailure(t *testing.T) {
	cfg := newConfig(t, "http://unused", "en")
	cfg.TargetDir = filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(cfg.TargetDir, nil, 0o644))

	f := fetcherFunc(func(context.Context, string) (string, error) { return "## ok", nil })
	var out bytes.Buffer
	rep := reporter.New(&out)

	worker.NewWorker(cfg, f, nil, nil).HandleRun(context.Background(), rep)

	require.True(t, rep.Failed())
	require.Contains(t, out.String(), "::error::failed to write output")
}

func TestHandleRun_RecorderErrorIsNotFatal(t *testing.T) {
	cfg := newConfig(t, "http://unused", "en")
	f := fetcherFunc(func(context.Context, string) (string, error) { return "## ok", nil })
	rec := &recorder{err: errors.New("connection refused")}
	var out bytes.Buffer
	rep := reporter.New(&out)

	worker.NewWorker(cfg, f, rec, nil).HandleRun(context.Background(), rep)

	require.False(t, rep.Failed())
	require.Len(t, rec.runs, 1)
}

func TestHandleRun_Panic(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "error value", value: errors.New("disk exploded"), expected: "::error::disk exploded\n"},
		{name: "other value", value: 42, expected: "::error::unknown error occurred\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newConfig(t, "http://unused", "en")
			f := fetcherFunc(func(context.Context, string) (string, error) { panic(tc.value) })
			var out bytes.Buffer
			rep := reporter.New(&out)

			require.NotPanics(t, func() {
				worker.NewWorker(cfg, f, nil, nil).HandleRun(context.Background(), rep)
			})
			require.True(t, rep.Failed())
			require.Equal(t, tc.expected, out.String())
		})
	}
}
