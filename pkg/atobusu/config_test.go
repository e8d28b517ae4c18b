package atobusu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 100, config.CacheMaxSize)
	assert.Equal(t, time.Duration(0), config.CacheTTL)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "templates", config.TemplateDir)
	assert.Equal(t, "output", config.OutputDir)
	assert.Equal(t, "utf-8", config.TemplateEncoding)
	assert.Equal(t, "utf-8", config.OutputEncoding)
	assert.Equal(t, "未分類", config.DefaultCategory)
	assert.False(t, config.StrictMode)
	require.NoError(t, config.Validate())
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("ATOBUSU_CACHE_MAX_SIZE", "25")
	t.Setenv("ATOBUSU_CACHE_TTL", "90s")
	t.Setenv("ATOBUSU_LOG_LEVEL", "debug")
	t.Setenv("ATOBUSU_TEMPLATE_DIR", "tpl")
	t.Setenv("ATOBUSU_OUTPUT_DIR", "out")
	t.Setenv("ATOBUSU_TEMPLATE_ENCODING", "shift_jis")
	t.Setenv("ATOBUSU_OUTPUT_ENCODING", "euc-jp")
	t.Setenv("ATOBUSU_DEFAULT_CATEGORY", "その他")
	t.Setenv("ATOBUSU_STRICT_MODE", "yes")

	config := ConfigFromEnvironment()
	assert.Equal(t, 25, config.CacheMaxSize)
	assert.Equal(t, 90*time.Second, config.CacheTTL)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "tpl", config.TemplateDir)
	assert.Equal(t, "out", config.OutputDir)
	assert.Equal(t, "shift_jis", config.TemplateEncoding)
	assert.Equal(t, "euc-jp", config.OutputEncoding)
	assert.Equal(t, "その他", config.DefaultCategory)
	assert.True(t, config.StrictMode)
	require.NoError(t, config.Validate())
}

func TestConfigFromEnvironmentIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ATOBUSU_CACHE_MAX_SIZE", "many")
	t.Setenv("ATOBUSU_CACHE_TTL", "soon")

	config := ConfigFromEnvironment()
	assert.Equal(t, 100, config.CacheMaxSize)
	assert.Equal(t, time.Duration(0), config.CacheTTL)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "negative cache size", mutate: func(c *Config) { c.CacheMaxSize = -1 }},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "verbose" }},
		{name: "empty template dir", mutate: func(c *Config) { c.TemplateDir = "" }},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }},
		{name: "unknown template encoding", mutate: func(c *Config) { c.TemplateEncoding = "latin-1" }},
		{name: "unknown output encoding", mutate: func(c *Config) { c.OutputEncoding = "utf-16" }},
		{name: "empty default category", mutate: func(c *Config) { c.DefaultCategory = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestGlobalConfigRoundTrip(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	custom := DefaultConfig()
	custom.DefaultCategory = "テスト"
	SetGlobalConfig(custom)

	got := GetGlobalConfig()
	assert.Equal(t, "テスト", got.DefaultCategory)

	// The accessor hands out copies.
	got.DefaultCategory = "changed"
	assert.Equal(t, "テスト", GetGlobalConfig().DefaultCategory)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "yes", "on", " Yes "} {
		assert.True(t, parseBool(s), "parseBool(%q)", s)
	}
	for _, s := range []string{"false", "0", "no", "off", "", "maybe"} {
		assert.False(t, parseBool(s), "parseBool(%q)", s)
	}
}
