package tui

import "go.uber.org/zap"

// Theme captures optional prefixes the collector applies to messages it
// prints between prompts.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}

// WithPageSize sets how many options a select prompt shows at once.
func WithPageSize(size int) Option {
	return func(c *Collector) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFileOpener replaces how a typed path becomes a selected file.
func WithFileOpener(open FileOpener) Option {
	return func(c *Collector) {
		if open != nil {
			c.open = open
		}
	}
}
