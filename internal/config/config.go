package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These favor politeness over speed;
// larger crawls override them via CLI flags.
const (
	// DefaultMaxDepth of 1 archives the start page plus the pages it links
	// to. Documentation crawls that want more reach override this via
	// --max-depth.
	DefaultMaxDepth = 1

	// DefaultMaxConcurrency of 4 keeps the tool polite by default while
	// still overlapping network waits.
	DefaultMaxConcurrency = 4

	// DefaultRateLimit of 0 means fetches start as fast as the worker pool
	// allows. Sites that throttle scrapers need --rate-limit.
	DefaultRateLimit = 0 * time.Second

	// DefaultTimeout is the per-fetch network timeout. 10 seconds is
	// generous for static documentation pages.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies sitemd in HTTP requests. A descriptive
	// User-Agent lets site operators identify archiver traffic in logs.
	DefaultUserAgent = "sitemd/1.0 (+https://github.com/sitemd/sitemd)"

	// DefaultMaxBodySize limits the response body size read per page.
	// 10MB covers any sane documentation page while bounding memory.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// AppName is the application name used for XDG directory paths.
	AppName = "sitemd"
)

// Config holds all options for one crawl run.
// It is populated from CLI flags and passed through the application by
// reference rather than held as global state.
//
// Design decision: We use a single flat struct instead of nested structs
// because the number of options is small. If the configuration grows
// significantly, consider refactoring into sub-structs.
type Config struct {
	// StartURL is the URL the crawl begins from. Must be absolute with an
	// http or https scheme.
	StartURL string

	// OutputDir is the root directory the Markdown tree is written under.
	OutputDir string

	// MaxDepth is the crawl depth bound. 0 fetches only the start URL.
	MaxDepth int

	// MaxConcurrency is the fetch worker pool size. Must be at least 1.
	MaxConcurrency int

	// RateLimit is the minimum interval between fetch starts, enforced
	// globally across all workers. 0 disables spacing.
	RateLimit time.Duration

	// Timeout is the network timeout applied to each individual fetch.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// ConfigFilePath is the path to the YAML config file. If empty, the
	// tool searches the standard locations (see FindConfigFile).
	ConfigFilePath string

	// SiteConfigs holds per-host overrides loaded from the config file.
	SiteConfigs *File

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because several defaults are non-zero, and the constructor documents
// what those defaults are.
func NewConfig() *Config {
	return &Config{
		MaxDepth:       DefaultMaxDepth,
		MaxConcurrency: DefaultMaxConcurrency,
		RateLimit:      DefaultRateLimit,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		MaxBodySize:    DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the XDG config directory for sitemd.
// On Linux: ~/.config/sitemd
// On macOS: ~/Library/Application Support/sitemd
// On Windows: %APPDATA%\sitemd
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after CLI parsing, before the crawl begins, so that
// setup errors fail fast with a clear message.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}
	u, err := url.Parse(c.StartURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidStartURL
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	if c.MaxConcurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
