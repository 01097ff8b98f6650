package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NFliegel/crawler-99spokes/internal/config"
	"github.com/NFliegel/crawler-99spokes/internal/crawl"
	"github.com/NFliegel/crawler-99spokes/internal/fetch"
	"github.com/NFliegel/crawler-99spokes/internal/log"
	"github.com/NFliegel/crawler-99spokes/internal/model"
	"github.com/NFliegel/crawler-99spokes/internal/report"
)

// outputFileNames maps output formats to the file written in the
// output directory.
var outputFileNames = map[string]string{
	"json":     "catalog.json",
	"csv":      "catalog.csv",
	"markdown": "catalog.md",
}

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [year...]",
		Short: "Crawl the catalog and export the collected models",
		Long: `Crawl walks the catalog hierarchy (years, brands, models) and collects
one record per bicycle model: name, price, availability, image, and the
specification attributes published on the detail page.

Pages that fail to fetch or parse are skipped together with their
subtree; the remaining catalog is still written. Failing to write an
output file aborts the run.

Examples:
  # Crawl everything with default settings
  spokes crawl

  # Restrict to one year and two brands
  spokes crawl 2024 --brand trek --brand giant

  # Write JSON only, to a specific directory
  spokes crawl --format json --output ./data

  # Smoke-test selectors against a handful of models
  spokes crawl --max-models 5 -v

Configuration file (.spokescrawl) example:
  base_url: https://www.99spokes.com
  formats: [json, csv]
  years:
    "2024":
      brands: [trek, giant]
      delay: 2s`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Crawl scope flags
	cmd.Flags().StringP("base-url", "u", config.DefaultBaseURL,
		"Base URL of the catalog site")
	cmd.Flags().StringSliceP("year", "y", nil,
		"Model year to crawl (repeatable; default all years)")
	cmd.Flags().StringSliceP("brand", "b", nil,
		"Brand slug to crawl (repeatable; default all brands)")
	cmd.Flags().IntP("max-models", "m", config.DefaultMaxModels,
		"Maximum number of model detail pages to fetch (0 = unlimited)")

	// HTTP behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request")
	cmd.Flags().DurationP("delay", "d", config.DefaultCrawlDelay,
		"Delay between consecutive requests")
	cmd.Flags().IntP("retries", "r", config.DefaultMaxRetries,
		"Retries for transient fetch failures")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output directory (default: XDG data directory)")
	cmd.Flags().StringSliceP("format", "F", config.DefaultFormats,
		"Output format: json, csv, or markdown (repeatable)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .spokescrawl in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags, positional
// year arguments, and the optional configuration file. File settings
// apply first; flags the user actually set override them.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. Otherwise silently continue without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags override the file only when actually set, so a base_url
	// from the file survives the flag's default value.
	if cmd.Flags().Changed("base-url") || cfg.BaseURL == "" {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("format") {
		if cfg.Formats, err = cmd.Flags().GetStringSlice("format"); err != nil {
			return nil, err
		}
	}

	if cfg.Years, err = cmd.Flags().GetStringSlice("year"); err != nil {
		return nil, err
	}
	// Positional arguments are additional year filters.
	cfg.Years = append(cfg.Years, args...)
	if cfg.Brands, err = cmd.Flags().GetStringSlice("brand"); err != nil {
		return nil, err
	}
	if cfg.MaxModels, err = cmd.Flags().GetInt("max-models"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = cmd.Flags().GetInt("retries"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

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

// runCrawl executes the crawl and writes the outputs.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fetcher := fetch.New(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithRetry(cfg.MaxRetries, cfg.RetryWaitMin, cfg.RetryWaitMax),
	)

	driver, err := crawl.New(cfg, fetcher, logger)
	if err != nil {
		return fmt.Errorf("failed to create crawl driver: %w", err)
	}

	fmt.Printf("Crawling %s...\n", cfg.BaseURL)
	catalog, runErr := driver.Run(ctx)
	if runErr != nil {
		// A cancelled run still writes what it collected.
		logger.Warn("crawl interrupted, writing partial results", "error", runErr)
	}

	if err := writeOutputs(cfg, catalog); err != nil {
		return err
	}

	console := report.NewConsoleWriter(os.Stdout)
	if _, err := console.Write(catalog); err != nil {
		return &report.WriteError{Format: "console", Err: err}
	}

	return runErr
}

// writeOutputs writes one file per configured format into the output
// directory. Any write failure is fatal.
func writeOutputs(cfg *config.Config, catalog *model.Catalog) error {
	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, format := range cfg.Formats {
		if err := writeOutput(cfg.OutputDir, format, catalog); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes the catalog in one format to its file.
func writeOutput(dir, format string, catalog *model.Catalog) error {
	path := filepath.Join(dir, outputFileNames[format])

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return &report.WriteError{Format: format, Err: err}
	}
	defer f.Close()

	w, err := report.New(format, f)
	if err != nil {
		return &report.WriteError{Format: format, Err: err}
	}
	if _, err := w.Write(catalog); err != nil {
		return &report.WriteError{Format: format, Err: err}
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
