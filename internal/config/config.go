package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/jonahtballard/CatBase/internal/api"
	"github.com/jonahtballard/CatBase/internal/catalog"
)

// Environment keys
const (
	KeyAPIURL   = "CATBASE_API_URL"
	KeyPageSize = "CATBASE_PAGE_SIZE"
	KeyTimeout  = "CATBASE_TIMEOUT"
	KeyLogFile  = "CATBASE_LOG_FILE"
	KeyLogLevel = "CATBASE_LOG_LEVEL"
)

const (
	defaultTimeout = 30 * time.Second
	defaultLogFile = "catbase.log"
	maxPageSize    = 500
)

// Config holds the settings shared by every CatBase command
type Config struct {
	APIURL   string
	PageSize int
	Timeout  time.Duration
	LogFile  string
	LogLevel log.Level
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		APIURL:   api.DefaultBaseURL,
		PageSize: catalog.DefaultPageSize,
		Timeout:  defaultTimeout,
		LogFile:  defaultLogFile,
		LogLevel: log.InfoLevel,
	}
}

// Load reads .env (if present) and then the process environment
func Load() (*Config, error) {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a config from an environment lookup function.
// Unset keys keep their defaults; a malformed value is an error naming the key.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(KeyAPIURL); ok {
		cfg.APIURL = v
	}
	if v, ok := get(KeyPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyPageSize, err)
		}
		cfg.PageSize = n
	}
	if v, ok := get(KeyTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyTimeout, err)
		}
		cfg.Timeout = d
	}
	if v, ok := get(KeyLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := get(KeyLogLevel); ok {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges. Flags may change fields after loading, so commands
// call it again once flags are parsed.
func (c *Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("%s: page size %d out of range 1-%d", KeyPageSize, c.PageSize, maxPageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s: timeout must be positive, got %s", KeyTimeout, c.Timeout)
	}
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("%s: empty API URL", KeyAPIURL)
	}
	return nil
}
