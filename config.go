package jsonnum

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// FastPathLimit is the longest token, in bytes, handled by the fast paths.
	// 10^18 still fits an int64 accumulator, so shorter tokens cannot
	// overflow it.
	FastPathLimit = 18

	DefaultNumberWindow      = 64
	MinNumberWindow          = 32
	DefaultBufferSize        = 4096
	DefaultWriterCapacity    = 4096
	DefaultMaxPooledCapacity = 64 * 1024
)

// Config tunes readers and writers. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// NumberWindow is the fixed lookahead used to collect a bare number.
	// Tokens that fill it are completed by the long-token path.
	NumberWindow int
	// BufferSize is the read-ahead used when streaming from an io.Reader.
	BufferSize int
	// WriterCapacity is the initial size of a Writer's buffer.
	WriterCapacity int
	// MaxPooledCapacity is the largest buffer a released Writer keeps.
	MaxPooledCapacity int

	Logger *zap.Logger
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		NumberWindow:      DefaultNumberWindow,
		BufferSize:        DefaultBufferSize,
		WriterCapacity:    DefaultWriterCapacity,
		MaxPooledCapacity: DefaultMaxPooledCapacity,
		Logger:            zap.NewNop(),
	}
}

// Validate rejects a window too small to tell fast-path tokens from
// truncated ones, and resets other invalid values to their defaults.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("jsonnum: config cannot be nil")
	}
	if c.NumberWindow == 0 {
		c.NumberWindow = DefaultNumberWindow
	}
	if c.NumberWindow < MinNumberWindow {
		return fmt.Errorf("jsonnum: NumberWindow must be at least %d, got %d", MinNumberWindow, c.NumberWindow)
	}
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.WriterCapacity <= 0 {
		c.WriterCapacity = DefaultWriterCapacity
	}
	if c.MaxPooledCapacity < c.WriterCapacity {
		c.MaxPooledCapacity = max(DefaultMaxPooledCapacity, c.WriterCapacity)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// Option adjusts a Config.
type Option func(*Config)

func WithNumberWindow(n int) Option {
	return func(c *Config) { c.NumberWindow = n }
}

func WithBufferSize(n int) Option {
	return func(c *Config) { c.BufferSize = n }
}

func WithWriterCapacity(n int) Option {
	return func(c *Config) { c.WriterCapacity = n }
}

func WithMaxPooledCapacity(n int) Option {
	return func(c *Config) { c.MaxPooledCapacity = n }
}

// WithLogger sets the logger used for long-token and fallback diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func newConfig(opts []Option) (*Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
