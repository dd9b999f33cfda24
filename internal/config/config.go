// Package config collects runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultCachePath    = "cache/enrichment_cache.json"
	defaultOutputPath   = "data/books.json"
	defaultRequestDelay = 1100 * time.Millisecond
)

// Config holds everything a build run needs.
type Config struct {
	// APIKey authenticates Google Books requests.
	APIKey string

	// CSVURL is a shared-link URL to fetch the book list from. When set it
	// takes precedence over CSVPath.
	CSVURL string

	// CSVPath is a local book list file, CSV or Parquet.
	CSVPath string

	CachePath  string
	OutputPath string

	// GenreRules optionally points at a YAML file of extra subject rules.
	GenreRules string

	// RequestDelay is the pause between enrichment lookups.
	RequestDelay time.Duration
}

// FromEnv builds a Config from environment variables, applying defaults for
// the paths and the request delay.
func FromEnv() Config {
	cfg := Config{
		APIKey:       os.Getenv("GOOGLE_BOOKS_API_KEY"),
		CSVURL:       os.Getenv("LIBRARY_CSV_URL"),
		CSVPath:      os.Getenv("LIBRARY_CSV_PATH"),
		CachePath:    os.Getenv("SHELFBUILD_CACHE"),
		OutputPath:   os.Getenv("SHELFBUILD_OUTPUT"),
		RequestDelay: defaultRequestDelay,
	}
	if cfg.CachePath == "" {
		cfg.CachePath = defaultCachePath
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaultOutputPath
	}
	return cfg
}

// Validate reports the first missing or inconsistent setting.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GOOGLE_BOOKS_API_KEY not set (env or .env)")
	}
	if c.CSVURL == "" && c.CSVPath == "" {
		return fmt.Errorf("no book list configured: set LIBRARY_CSV_URL or LIBRARY_CSV_PATH")
	}
	if c.CachePath == "" {
		return fmt.Errorf("cache path must not be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay must not be negative")
	}
	return nil
}
