package atobusu

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine provides the main API for rendering templates.
// Use New() to create a new engine instance.
type Engine struct {
	config *Config
	cache  *RegionCache
}

// New creates a new engine with the global configuration.
func New() *Engine {
	return &Engine{
		config: GetGlobalConfig(),
		cache:  getDefaultCache(),
	}
}

// NewWithConfig creates a new engine with a custom configuration.
func NewWithConfig(config *Config) *Engine {
	return &Engine{
		config: config,
		cache: NewRegionCacheWithConfig(CacheConfig{
			MaxSize: config.CacheMaxSize,
			TTL:     config.CacheTTL,
		}),
	}
}

// RenderTemplate merges the data context into raw template text and
// returns the rendered output tagged with the given format. The format
// does not change substitution behavior. On error no output is produced.
func (e *Engine) RenderTemplate(templateText string, ctx DataContext, format OutputFormat) (*RenderedOutput, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	text, err := renderText(templateText, ctx, e.config)
	if err != nil {
		return nil, err
	}
	return e.finishRender(text, format, len(templateText)), nil
}

// RenderRegions renders a pre-tokenized region sequence, typically one
// served from a RegionCache.
func (e *Engine) RenderRegions(regions []Region, ctx DataContext, format OutputFormat) (*RenderedOutput, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	text, err := renderRegions(regions, ctx, e.config)
	if err != nil {
		return nil, err
	}
	return e.finishRender(text, format, -1), nil
}

func (e *Engine) finishRender(text string, format OutputFormat, inputLen int) *RenderedOutput {
	out := &RenderedOutput{
		Text:       text,
		Format:     format,
		RenderID:   uuid.NewString(),
		RenderedAt: time.Now(),
	}
	if debugEnabled() {
		GetLogger().Debug("render complete",
			zap.String("render_id", out.RenderID),
			zap.String("format", string(format)),
			zap.Int("input_length", inputLen),
			zap.Int("output_length", len(text)))
	}
	return out
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// SetConfig updates the engine's configuration.
func (e *Engine) SetConfig(config *Config) {
	e.config = config
}

// Cache returns the engine's region cache.
func (e *Engine) Cache() *RegionCache {
	return e.cache
}

// ClearCache removes all entries from the engine's cache.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithCacheSize returns an option that sets the cache size (0 disables caching).
func WithCacheSize(maxSize int) Option {
	return func(e *Engine) {
		e.config.CacheMaxSize = maxSize
		e.cache = NewRegionCacheWithConfig(CacheConfig{
			MaxSize: maxSize,
			TTL:     e.config.CacheTTL,
		})
	}
}

// NewWithOptions creates a new engine with the specified options.
func NewWithOptions(opts ...Option) *Engine {
	engine := New()
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = New()

// RenderTemplate renders raw template text using the default engine.
func RenderTemplate(templateText string, ctx DataContext, format OutputFormat) (*RenderedOutput, error) {
	return DefaultEngine.RenderTemplate(templateText, ctx, format)
}
