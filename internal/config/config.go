package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These are chosen for polite, low-volume
// crawling of a single public site.
const (
	// DefaultBaseURL is the catalog site the crawler targets.
	DefaultBaseURL = "https://www.99spokes.com"

	// DefaultTimeout is the per-request timeout. The target is a normal
	// clearnet site, so a short timeout keeps failed subtrees cheap.
	DefaultTimeout = 15 * time.Second

	// DefaultCrawlDelay is the pause between consecutive requests.
	// One second is conservative and respectful of server resources.
	DefaultCrawlDelay = 1 * time.Second

	// DefaultMaxRetries bounds retries for transient failures.
	// The retry policy is fixed: exponential backoff between
	// DefaultRetryWaitMin and DefaultRetryWaitMax, then give up and
	// let the driver skip the subtree.
	DefaultMaxRetries = 2

	// DefaultRetryWaitMin is the initial retry backoff.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax caps the retry backoff.
	DefaultRetryWaitMax = 5 * time.Second

	// DefaultMaxBodySize limits the response body size to read.
	// Catalog pages are small; 5MB leaves generous headroom while
	// preventing memory exhaustion from unexpected responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxModels caps the number of detail pages fetched in one
	// run. Zero means no cap. The cap exists so a partial run can be
	// used for smoke-testing selectors against the live site.
	DefaultMaxModels = 0

	// DefaultUserAgent identifies the crawler in HTTP requests.
	// A descriptive User-Agent lets site operators identify the traffic.
	DefaultUserAgent = "spokes-crawler/1.0 (+https://github.com/NFliegel/crawler-99spokes)"

	// AppName is the application name used for XDG directory paths.
	AppName = "spokes"
)

// DefaultFormats are the output formats written when none are requested
// explicitly.
var DefaultFormats = []string{"json", "csv"}

// KnownFormats enumerates the output formats the report package provides.
var KnownFormats = map[string]bool{
	"json":     true,
	"csv":      true,
	"markdown": true,
}

// Config holds all configuration options for a crawl run.
// It is populated from CLI flags plus the optional config file and passed
// through the application via dependency injection.
//
// Design decision: A single flat struct instead of nested sub-structs.
// The option count is manageable, and nesting would add indirection
// without benefit.
type Config struct {
	// BaseURL is the root URL of the catalog site.
	BaseURL string

	// OutputDir is the directory output files are written to.
	// Defaults to the XDG data directory for the application.
	OutputDir string

	// Formats lists the output formats to write (json, csv, markdown).
	Formats []string

	// Years restricts the crawl to the listed model years.
	// Empty means all years found on the site.
	Years []string

	// Brands restricts the crawl to the listed brand slugs.
	// Empty means all brands found for each year.
	Brands []string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// CrawlDelay is the pause between consecutive requests.
	CrawlDelay time.Duration

	// MaxRetries is the number of retries for transient fetch failures.
	MaxRetries int

	// RetryWaitMin is the initial backoff between retries.
	RetryWaitMin time.Duration

	// RetryWaitMax caps the backoff between retries.
	RetryWaitMax time.Duration

	// MaxModels caps the number of detail pages fetched. Zero means
	// unlimited.
	MaxModels int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .spokescrawl in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds settings loaded from the config file.
	FileConfig *File
}

// NewConfig creates a Config with default values.
//
// Design decision: A constructor rather than relying on zero values,
// because most defaults are non-zero. It also documents what the
// defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		OutputDir:    XDGDataDir(),
		Formats:      append([]string(nil), DefaultFormats...),
		Timeout:      DefaultTimeout,
		CrawlDelay:   DefaultCrawlDelay,
		MaxRetries:   DefaultMaxRetries,
		RetryWaitMin: DefaultRetryWaitMin,
		RetryWaitMax: DefaultRetryWaitMax,
		MaxModels:    DefaultMaxModels,
		MaxBodySize:  DefaultMaxBodySize,
		UserAgent:    DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for the crawler.
// On Linux: ~/.local/share/spokes
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the crawler.
// On Linux: ~/.config/spokes
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns a specific
// error describing the first problem found.
//
// Design decision: We validate once after CLI parsing rather than at
// each point of use, to fail fast with a clear message before any
// network traffic happens.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}

	if c.RetryWaitMin < 0 || c.RetryWaitMax < c.RetryWaitMin {
		return ErrInvalidRetryWait
	}

	if c.MaxModels < 0 {
		return ErrInvalidMaxModels
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if len(c.Formats) == 0 {
		return ErrNoOutputFormat
	}
	for _, f := range c.Formats {
		if !KnownFormats[f] {
			return ErrUnknownFormat
		}
	}

	return nil
}

// YearAllowed reports whether the given year passes the Years filter.
func (c *Config) YearAllowed(year string) bool {
	return allowed(c.Years, year)
}

// BrandAllowed reports whether the given brand slug passes the filter.
// Per-year brand filters from the config file take precedence over the
// global Brands list.
func (c *Config) BrandAllowed(year, slug string) bool {
	if c.FileConfig != nil {
		if yc, ok := c.FileConfig.Years[year]; ok && len(yc.Brands) > 0 {
			return allowed(yc.Brands, slug)
		}
	}
	return allowed(c.Brands, slug)
}

// DelayFor returns the crawl delay for the given year, honoring the
// per-year override from the config file when present.
func (c *Config) DelayFor(year string) time.Duration {
	if c.FileConfig != nil {
		if yc, ok := c.FileConfig.Years[year]; ok && yc.Delay > 0 {
			return yc.Delay
		}
	}
	return c.CrawlDelay
}

// allowed reports whether value is in the filter list. An empty list
// allows everything.
func allowed(filter []string, value string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == value {
			return true
		}
	}
	return false
}
