package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".spokescrawl"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// YearConfig holds per-year overrides loaded from the config file.
// This is how a run is narrowed to a few brands of interest, the port
// of the original manifest file.
type YearConfig struct {
	// Brands restricts the crawl of this year to the listed brand slugs.
	Brands []string `yaml:"brands,omitempty"`

	// Delay overrides the global crawl delay for this year's subtree.
	// Zero means use the global delay.
	Delay time.Duration `yaml:"delay,omitempty"`
}

// File represents the structure of the .spokescrawl configuration file.
type File struct {
	// BaseURL overrides the default catalog site.
	BaseURL string `yaml:"base_url,omitempty"`

	// OutputDir overrides the default output directory.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Formats overrides the default output formats.
	Formats []string `yaml:"formats,omitempty"`

	// Years maps model years to per-year overrides.
	Years map[string]YearConfig `yaml:"years,omitempty"`
}

// LoadConfigFile loads crawl configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers
// decide whether that is fatal based on whether the path was given
// explicitly.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Years == nil {
		cf.Years = make(map[string]YearConfig)
	}

	return &cf, nil
}

// Apply copies file-level settings onto the Config for every field the
// user did not already set via flags. Flag values win because the CLI
// layer applies them after loading the file.
func (cf *File) Apply(c *Config) {
	if cf.BaseURL != "" {
		c.BaseURL = cf.BaseURL
	}
	if cf.OutputDir != "" {
		c.OutputDir = cf.OutputDir
	}
	if len(cf.Formats) > 0 {
		c.Formats = append([]string(nil), cf.Formats...)
	}
	c.FileConfig = cf
}

// FindConfigFile searches for the configuration file in order:
// the explicit path if given, then .spokescrawl in the current
// directory, then in the user's home directory.
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
