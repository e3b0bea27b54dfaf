package config

import "fmt"

// OutputConfig selects how assignment lists are written.
type OutputConfig struct {
	// Format is "json" or "csv".
	Format string `json:"format"`
	// Path is the output file. Empty writes to stdout.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks mandatory fields.
func (c OutputConfig) Validate() error {
	if c.Format != "json" && c.Format != "csv" {
		return fmt.Errorf("unknown output format %s", c.Format)
	}
	return nil
}
