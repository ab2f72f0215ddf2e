package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitemd/sitemd/internal/config"
	"github.com/sitemd/sitemd/internal/convert"
	"github.com/sitemd/sitemd/internal/crawler"
	"github.com/sitemd/sitemd/internal/model"
	"github.com/sitemd/sitemd/internal/report"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitemd.
// The root command itself performs the crawl; sitemd is a one-shot tool.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemd [flags] <start-url> <output-dir>",
		Short: "Archive a documentation site as a local Markdown tree",
		Long: `sitemd crawls a documentation website starting from a given URL, follows
same-host links up to a bounded depth, converts each fetched page to
Markdown, and writes one file per page under <output-dir>/<host>/
mirroring the URL path. URL fragments are appended to the filename with
an underscore so that anchored pages never overwrite one another.

Examples:
  # Archive a page and everything it links to
  sitemd https://docs.example.com/guide ./archive

  # Deeper crawl, 1.5s between fetch starts, 3 workers
  sitemd --max-depth 2 --rate-limit 1.5 --max-concurrency 3 \
      https://docs.example.com/guide ./archive

Configuration file (.sitemd) example:
  sites:
    docs.example.com:
      depth: 3
      headers:
        Authorization: "Bearer token"
      ignore_patterns:
        - "/changelog/*"`,
		Args:          cobra.ExactArgs(2),
		RunE:          runCrawlCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.Flags().IntP("max-depth", "d", config.DefaultMaxDepth,
		"Maximum crawl depth (0 fetches only the start URL)")
	cmd.Flags().Float64P("rate-limit", "r", 0,
		"Minimum seconds between fetch starts, across all workers")
	cmd.Flags().IntP("max-concurrency", "n", config.DefaultMaxConcurrency,
		"Number of concurrent fetch workers")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Network timeout for each fetch")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header to send")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitemd in current or home directory)")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCrawlCmd executes the crawl.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the crawl on SIGINT/SIGTERM; partially written output is
	// acceptable for an interrupted run.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cmd.OutOrStdout(), cfg, logger)
}

// buildConfig creates a Config from cobra command flags and positional
// arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.StartURL = args[0]
	cfg.OutputDir = args[1]

	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("max-depth")
	if err != nil {
		return nil, err
	}

	rateLimit, err := cmd.Flags().GetFloat64("rate-limit")
	if err != nil {
		return nil, err
	}
	cfg.RateLimit = time.Duration(rateLimit * float64(time.Second))

	cfg.MaxConcurrency, err = cmd.Flags().GetInt("max-concurrency")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// If the user named a config file it must exist; otherwise a missing
	// file just means no per-site overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// runCrawl wires the spider, converter, and writer together and runs the
// crawl to completion.
//
// Per-page failures (fetch, conversion, file write) are logged and skipped;
// the run still exits zero. Only setup errors — an invalid start URL or an
// unwritable output root — are fatal.
func runCrawl(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	writer := report.NewWriter(cfg.OutputDir, logger)
	if err := writer.EnsureRoot(); err != nil {
		return err
	}

	start, err := url.Parse(cfg.StartURL)
	if err != nil {
		return fmt.Errorf("invalid start URL: %w", err)
	}
	site := cfg.SiteConfigs.SiteFor(start.Host)

	userAgent := cfg.UserAgent
	if site.UserAgent != "" {
		userAgent = site.UserAgent
	}
	maxDepth := cfg.MaxDepth
	if site.Depth > 0 {
		maxDepth = site.Depth
	}

	spider := crawler.NewSpider(
		&http.Client{Timeout: cfg.Timeout},
		crawler.WithMaxDepth(maxDepth),
		crawler.WithConcurrency(cfg.MaxConcurrency),
		crawler.WithRateLimit(cfg.RateLimit),
		crawler.WithUserAgent(userAgent),
		crawler.WithHeaders(site.Headers),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithIgnorePatterns(site.IgnorePatterns),
		crawler.WithFollowPatterns(site.FollowPatterns),
		crawler.WithLogger(logger),
	)

	converter := convert.New()
	index := report.NewIndex(cfg.StartURL)

	logger.Info("starting crawl",
		"startURL", cfg.StartURL,
		"outputDir", cfg.OutputDir,
		"maxDepth", maxDepth,
		"maxConcurrency", cfg.MaxConcurrency,
		"rateLimit", cfg.RateLimit,
	)
	startTime := time.Now()

	crawlErr := spider.Crawl(ctx, cfg.StartURL, func(page *model.Page) {
		if !page.IsHTML() {
			logger.Debug("skipping non-HTML page", "url", page.URL, "contentType", page.ContentType)
			return
		}

		markdown, err := converter.ToMarkdown(page.HTML, page.URL)
		if err != nil {
			logger.Warn("skipping page: conversion failed", "url", page.URL, "error", err)
			return
		}
		page.Markdown = markdown

		path, err := writer.WritePage(page)
		if err != nil {
			logger.Warn("skipping page: write failed", "url", page.URL, "error", err)
			return
		}
		index.Add(page, path, cfg.OutputDir)
	})

	if err := index.Write(cfg.OutputDir); err != nil {
		logger.Warn("failed to write crawl index", "error", err)
	}

	if crawlErr != nil {
		if errors.Is(crawlErr, context.Canceled) {
			fmt.Fprintf(out, "Crawl interrupted; %d page(s) archived under %s\n",
				index.Len(), cfg.OutputDir)
		}
		return crawlErr
	}

	stats := spider.Stats()
	elapsed := time.Since(startTime)
	fmt.Fprintf(out, "Archived %d page(s) under %s in %s (%d URL(s) attempted)\n",
		index.Len(), cfg.OutputDir, elapsed.Round(time.Millisecond), stats.URLsClaimed)

	return nil
}
