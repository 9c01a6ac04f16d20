// Package sheets exports composed print pages as xlsx workbooks.
package sheets

import (
	"fmt"
	"strings"
)

// Config holds the configuration for the xlsx writer.
type Config struct {
	SheetName    string
	FontFamily   string
	BaseFontSize float64
	LabelWidth   float64
	ValueWidth   float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SheetName:    "Ledger",
		FontFamily:   "Courier New",
		BaseFontSize: 11,
		LabelWidth:   34,
		ValueWidth:   16,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SheetName) == "" {
		return fmt.Errorf("sheet name is required")
	}
	if len(c.SheetName) > 31 {
		return fmt.Errorf("sheet name %q exceeds 31 characters", c.SheetName)
	}
	if c.BaseFontSize <= 0 {
		return fmt.Errorf("base font size must be positive")
	}
	if c.LabelWidth <= 0 || c.ValueWidth <= 0 {
		return fmt.Errorf("column widths must be positive")
	}
	return nil
}
