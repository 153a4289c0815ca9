package logger

import (
	"chat-transcript/config"
	"context"
)

// ConfigAdapter adapts config.Config to implement LoggerConfig
type ConfigAdapter struct {
	config *config.Config
}

// NewConfigAdapter creates a new ConfigAdapter
func NewConfigAdapter(cfg *config.Config) LoggerConfig {
	return &ConfigAdapter{config: cfg}
}

// GetMinLogLevel returns the configured minimum log level
func (c *ConfigAdapter) GetMinLogLevel() Level {
	return ParseLevel(c.config.MinLogLevel)
}

// ShouldTruncatePayloads returns whether message content echoed into log
// lines should be trimmed
func (c *ConfigAdapter) ShouldTruncatePayloads() bool {
	return c.config.TruncateLogPayloads
}

// NewFromConfig creates a new logger using the existing config
func NewFromConfig(ctx context.Context, cfg *config.Config) Logger {
	return New(ctx, NewConfigAdapter(cfg))
}

// ContextLoggerFromConfig creates a logger and stores it in context for easy access
func ContextLoggerFromConfig(ctx context.Context, cfg *config.Config) (context.Context, Logger) {
	l := NewFromConfig(ctx, cfg)
	newCtx := context.WithValue(ctx, loggerContextKey, l)
	return newCtx, l
}
