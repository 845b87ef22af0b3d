package emei

import (
	"context"
	"log/slog"
)

// Config holds settings shared by the instruction buffers.
type Config struct {
	Logger *slog.Logger
}

// Option configures an instruction buffer.
type Option func(*Config)

// Log buffer activity to l. Finalization is logged at debug level and link failures at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Apply opts over the defaults. The default logger discards everything.
func NewConfig(opts ...Option) Config {
	c := Config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.New(discardHandler{})
	}
	return c
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
