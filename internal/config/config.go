// Package config loads the report configuration for gapscan runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DefaultConfigPath is the path to the canonical report defaults file.
const DefaultConfigPath = "config/report.defaults.json"

// Experiment names one scan file and the figure title it is published
// under.
type Experiment struct {
	File     string `json:"file"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Competitor is a published system the comparison table benchmarks
// against.
type Competitor struct {
	Name          string  `json:"name"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	F1            float64 `json:"f1"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// ReportConfig is the root configuration. Fields omitted from the JSON
// file fall back to defaults via the Get* accessors, so partial configs
// are safe.
type ReportConfig struct {
	DataDir       *string `json:"data_dir,omitempty"`
	OutputDir     *string `json:"output_dir,omitempty"`
	Delimiter     *string `json:"delimiter,omitempty"`
	RollingWindow *int    `json:"rolling_window,omitempty"`
	SystemLabel   *string `json:"system_label,omitempty"`

	Experiments []Experiment `json:"experiments,omitempty"`
	Competitors []Competitor `json:"competitors,omitempty"`
}

// EmptyReportConfig returns a ReportConfig with all fields unset.
func EmptyReportConfig() *ReportConfig {
	return &ReportConfig{}
}

// GetDataDir returns the scan data directory, "." by default.
func (c *ReportConfig) GetDataDir() string {
	if c.DataDir != nil {
		return *c.DataDir
	}
	return "."
}

// GetOutputDir returns the base output directory, "." by default. Each run
// creates a timestamped subdirectory underneath it.
func (c *ReportConfig) GetOutputDir() string {
	if c.OutputDir != nil {
		return *c.OutputDir
	}
	return "."
}

// GetDelimiter returns the CSV delimiter rune, comma by default.
func (c *ReportConfig) GetDelimiter() rune {
	if c.Delimiter != nil && *c.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(*c.Delimiter)
		return r
	}
	return ','
}

// GetRollingWindow returns the moving-average window, 20 by default.
func (c *ReportConfig) GetRollingWindow() int {
	if c.RollingWindow != nil {
		return *c.RollingWindow
	}
	return 20
}

// GetSystemLabel returns the label for this system's comparison row.
func (c *ReportConfig) GetSystemLabel() string {
	if c.SystemLabel != nil {
		return *c.SystemLabel
	}
	return "This work"
}

// Validate checks the configuration for values that would break a run.
func (c *ReportConfig) Validate() error {
	if c.Delimiter != nil && utf8.RuneCountInString(*c.Delimiter) > 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", *c.Delimiter)
	}
	if c.RollingWindow != nil && *c.RollingWindow <= 0 {
		return fmt.Errorf("rolling_window must be positive, got %d", *c.RollingWindow)
	}
	for i, e := range c.Experiments {
		if e.File == "" {
			return fmt.Errorf("experiment %d: file must not be empty", i)
		}
	}
	for i, comp := range c.Competitors {
		if comp.Name == "" {
			return fmt.Errorf("competitor %d: name must not be empty", i)
		}
	}
	return nil
}

// LoadReportConfig loads a ReportConfig from a JSON file. The path must
// have a .json extension and the file is capped at 1MB.
func LoadReportConfig(path string) (*ReportConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyReportConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
