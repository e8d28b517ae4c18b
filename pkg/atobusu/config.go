package atobusu

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config contains all configuration options for the Atobusu engine.
type Config struct {
	// CacheMaxSize is the maximum number of tokenized templates to
	// cache. 0 disables caching.
	CacheMaxSize int
	// CacheTTL is the time-to-live for cached region sequences. 0 means
	// no expiration.
	CacheTTL time.Duration
	// LogLevel controls the verbosity of logging (debug, info, warn, error).
	LogLevel string
	// TemplateDir is the directory template files are loaded from.
	TemplateDir string
	// OutputDir is the directory rendered files are written to.
	OutputDir string
	// TemplateEncoding is the character encoding of template files on disk.
	TemplateEncoding string
	// OutputEncoding is the character encoding of written output files.
	OutputEncoding string
	// DefaultCategory is substituted for the category placeholder when
	// the data context has no category.
	DefaultCategory string
	// StrictMode makes unresolved generic placeholders fatal instead of
	// passing through with a warning.
	StrictMode bool
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheMaxSize:     100,
		CacheTTL:         0,
		LogLevel:         "info",
		TemplateDir:      "templates",
		OutputDir:        "output",
		TemplateEncoding: "utf-8",
		OutputEncoding:   "utf-8",
		DefaultCategory:  "未分類",
		StrictMode:       false,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("ATOBUSU_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}
	if val := os.Getenv("ATOBUSU_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}
	if val := os.Getenv("ATOBUSU_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}
	if val := os.Getenv("ATOBUSU_TEMPLATE_DIR"); val != "" {
		config.TemplateDir = val
	}
	if val := os.Getenv("ATOBUSU_OUTPUT_DIR"); val != "" {
		config.OutputDir = val
	}
	if val := os.Getenv("ATOBUSU_TEMPLATE_ENCODING"); val != "" {
		config.TemplateEncoding = val
	}
	if val := os.Getenv("ATOBUSU_OUTPUT_ENCODING"); val != "" {
		config.OutputEncoding = val
	}
	if val := os.Getenv("ATOBUSU_DEFAULT_CATEGORY"); val != "" {
		config.DefaultCategory = val
	}
	if val := os.Getenv("ATOBUSU_STRICT_MODE"); val != "" {
		config.StrictMode = parseBool(val)
	}

	return config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CacheMaxSize, validation.Min(0)),
		validation.Field(&c.CacheTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.TemplateDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.TemplateEncoding, validation.Required, validation.In("utf-8", "shift_jis", "euc-jp")),
		validation.Field(&c.OutputEncoding, validation.Required, validation.In("utf-8", "shift_jis", "euc-jp")),
		validation.Field(&c.DefaultCategory, validation.Required),
	)
}

// GetGlobalConfig returns a copy of the global configuration.
func GetGlobalConfig() *Config {
	configOnce.Do(func() {
		globalConfigMutex.Lock()
		globalConfig = ConfigFromEnvironment()
		globalConfigMutex.Unlock()
	})

	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration.
func SetGlobalConfig(config *Config) {
	configOnce.Do(func() {})

	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger outside the lock to avoid deadlock.
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
