package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hn_daily/internal/models"
)

// DefaultBaseURL is the raw-content root of the published digest repository.
const DefaultBaseURL = "https://raw.githubusercontent.com/anaclumos/signalkite/refs/heads/main"

// DefaultLang selects the untranslated digest.
const DefaultLang = "en"

const userAgent = "hn-daily/1.0"

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// BuildURL returns the digest URL for lang and date. Any lang other than
// DefaultLang is substituted into the i18n path as is.
func BuildURL(base, lang string, d models.DateInfo) string {
	if lang == DefaultLang {
		return fmt.Sprintf("%s/docs/%s/%s/%s.md", base, d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%s/i18n/%s/docusaurus-plugin-content-docs/current/%s/%s/%s.md",
		base, lang, d.Year, d.Month, d.Day)
}

// Fetcher downloads digest documents with a single attempt per call.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{
		Timeout:   timeout,
		Transport: &loggingTransport{next: http.DefaultTransport},
	}}
}

// Fetch GETs url and returns the body as text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/plain, text/markdown, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch content: %w", &StatusError{URL: url, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	return string(body), nil
}
