package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"hn_daily/internal/fetcher"
	"hn_daily/internal/models"
)

// Environment variables supplied by the workflow runner and the operator.
const (
	EnvTargetDir = "INPUT_TARGETDIR"
	EnvLang      = "INPUT_HACKERNEWSLANG"
	EnvConfig    = "HN_DAILY_CONFIG"
)

const (
	defaultTargetDir    = "."
	defaultFetchTimeout = 30
)

// Config holds the run inputs and optional operator settings.
type Config struct {
	TargetDir       string `json:"target_dir"`
	Lang            string `json:"lang"`
	BaseURL         string `json:"base_url"`
	FetchTimeout    int    `json:"fetch_timeout"`
	MetricsTextfile string `json:"metrics_textfile"`
	DatabaseURL     string `json:"database_url"`
}

// Defaults returns a Config with every default applied.
func Defaults() *Config {
	return &Config{
		TargetDir:    defaultTargetDir,
		Lang:         fetcher.DefaultLang,
		BaseURL:      fetcher.DefaultBaseURL,
		FetchTimeout: defaultFetchTimeout,
	}
}

// Validate checks that BaseURL is an absolute http(s) URL and FetchTimeout
// is at least one second. Lang is not checked.
func (cfg *Config) Validate() error {
	if cfg.FetchTimeout < 1 {
		return errors.New("fetch timeout must be ≥ 1 second")
	}
	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL: %s", cfg.BaseURL)
	}
	return nil
}

// Timeout is FetchTimeout as a duration.
func (cfg *Config) Timeout() time.Duration {
	return time.Duration(cfg.FetchTimeout) * time.Second
}

// Run returns the two run inputs.
func (cfg *Config) Run() models.RunConfig {
	return models.RunConfig{TargetDir: cfg.TargetDir, Lang: cfg.Lang}
}

// LoadConfig reads a JSON file at path over the defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Defaults()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds the Config for a run: the file named by HN_DAILY_CONFIG if
// set, then the runner inputs on top. Blank values fall back to defaults.
func Load(getenv func(string) string) (*Config, error) {
	cfg := Defaults()
	if path := strings.TrimSpace(getenv(EnvConfig)); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("config load error: %w", err)
		}
		cfg = loaded
	}

	if v := input(getenv, EnvTargetDir); v != "" {
		cfg.TargetDir = v
	}
	if v := input(getenv, EnvLang); v != "" {
		cfg.Lang = v
	}

	if strings.TrimSpace(cfg.TargetDir) == "" {
		cfg.TargetDir = defaultTargetDir
	}
	if strings.TrimSpace(cfg.Lang) == "" {
		cfg.Lang = fetcher.DefaultLang
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fetcher.DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func input(getenv func(string) string, name string) string {
	return strings.TrimSpace(getenv(name))
}
