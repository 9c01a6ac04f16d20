package tui

import (
	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/service"
	"github.com/Veraticus/paddy-ledger/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme   themes.Theme
	Printer service.Printer
	Page    layout.Size
	Metrics layout.Metrics
	Width   int
	Height  int
	// PreviewWidth is the column width of the live ledger preview.
	PreviewWidth int
	ShowHelp     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Page:         layout.A4,
		Width:        120,
		Height:       40,
		PreviewWidth: 44,
	}
}

// WithPrinter sets the print spooler. Without one, printing reports that
// no printer is available.
func WithPrinter(p service.Printer) Option {
	return func(c *Config) {
		c.Printer = p
	}
}

// WithPage sets the physical page the print layout is computed for.
func WithPage(size layout.Size, metrics layout.Metrics) Option {
	return func(c *Config) {
		c.Page = size
		c.Metrics = metrics
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp starts with the full key help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
