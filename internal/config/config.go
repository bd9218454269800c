// Package config defines process configuration and its loading.
//
// Conventions:
// - New() returns defaults that reproduce the competition sheet layout.
// - Load layers defaults, an optional YAML file and WODBOARD_* env vars.
// - Errors wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // report stamps must not depend on the host zoneinfo
)

// Run modes.
const (
	ModeGenerate = "generate"
	ModeServe    = "serve"
)

// Source formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Mode is "generate" (one run, write files, exit) or "serve".
	Mode string `koanf:"mode"`
	// Addr configures the HTTP listen address in serve mode, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SourceURL is a published spreadsheet URL. Takes precedence over SourceFile.
	SourceURL string `koanf:"source_url"`
	// SourceFile is a local table file.
	SourceFile string `koanf:"source_file"`
	// SourceFormat is csv, xlsx or html.
	SourceFormat string `koanf:"source_format"`
	// SourceSheet selects the worksheet for xlsx sources; empty means the first one.
	SourceSheet string `koanf:"source_sheet"`
	// CacheBust appends cache_bust=<unix time> to SourceURL.
	CacheBust bool `koanf:"cache_bust"`
	// FetchTimeoutMS bounds a remote fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// Sheet layout.
	CategoryColumn     string   `koanf:"category_column"`
	TeamColumn         string   `koanf:"team_column"`
	PassthroughColumns []string `koanf:"passthrough_columns"`
	ResultSuffix       string   `koanf:"result_suffix"`
	TimeToken          string   `koanf:"time_token"`
	CapMarker          string   `koanf:"cap_marker"`
	// DecimalComma accepts "62,5" as 62.5 in count events.
	DecimalComma bool `koanf:"decimal_comma"`

	// Outputs; empty disables the sink.
	OutputHTML   string `koanf:"output_html"`
	OutputXLSX   string `koanf:"output_xlsx"`
	OutputJSON   string `koanf:"output_json"`
	PrintSummary bool   `koanf:"print_summary"`

	// Title is shown on the report.
	Title string `koanf:"title"`
	// Timezone stamps the report's "updated at" line.
	Timezone string `koanf:"timezone"`

	// RefreshIntervalS recomputes the board periodically in serve mode; 0 disables.
	RefreshIntervalS int `koanf:"refresh_interval_s"`
	// Parallelism bounds concurrent category aggregation.
	Parallelism int `koanf:"parallelism"`
	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Mode:                ModeGenerate,
		Addr:                ":9080",
		SourceFormat:        FormatCSV,
		CacheBust:           true,
		FetchTimeoutMS:      30_000,
		CategoryColumn:      "Categoria",
		TeamColumn:          "Time",
		PassthroughColumns:  []string{"Integrantes"},
		ResultSuffix:        "_Resultado",
		TimeToken:           "tempo",
		CapMarker:           "CAP",
		OutputHTML:          "index.html",
		Title:               "Leaderboard",
		Timezone:            "America/Sao_Paulo",
		RefreshIntervalS:    60,
		Parallelism:         1,
		MaxLeaderboardLimit: 500,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// RefreshInterval returns RefreshIntervalS as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalS) * time.Second
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, ErrInvalidConfig)
	}
	return loc, nil
}

// Validate checks field combinations.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeGenerate, ModeServe:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q: %w", ModeGenerate, ModeServe, c.Mode, ErrInvalidConfig)
	}
	switch c.SourceFormat {
	case FormatCSV, FormatXLSX, FormatHTML:
	default:
		return fmt.Errorf("source_format %q: %w", c.SourceFormat, ErrInvalidConfig)
	}
	if strings.TrimSpace(c.SourceURL) == "" && strings.TrimSpace(c.SourceFile) == "" {
		return fmt.Errorf("source_url or source_file must be set: %w", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.CategoryColumn) == "" || strings.TrimSpace(c.TeamColumn) == "" {
		return fmt.Errorf("category_column and team_column must not be empty: %w", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ResultSuffix) == "" {
		return fmt.Errorf("result_suffix must not be empty: %w", ErrInvalidConfig)
	}
	if c.Mode == ModeServe && c.Addr == "" {
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	}
	if c.FetchTimeoutMS <= 0 {
		return fmt.Errorf("fetch_timeout_ms must be positive: %w", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
