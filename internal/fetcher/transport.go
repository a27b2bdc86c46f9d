package fetcher

import (
	"net/http"
	"time"

	"hn_daily/internal/logger"

	"github.com/sirupsen/logrus"
)

// loggingTransport logs each request made through it.
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	fields := logrus.Fields{
		"method":   req.Method,
		"url":      req.URL.String(),
		"duration": time.Since(start),
	}
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Debug("Request failed")
		return nil, err
	}
	fields["status"] = resp.StatusCode
	logger.Log.WithFields(fields).Debug("Request processed")
	return resp, nil
}
