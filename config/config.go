// Package config loads the flow trace configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every trace.
type Config struct {
	// WorkingDirectory receives the log file (under Temp/) and check output.
	WorkingDirectory string `yaml:"workingdirectory" json:"workingdirectory"`
	// FDR is the flow direction raster (.bil with .gdef, or .asc).
	FDR string `yaml:"fdr" json:"fdr"`
	// Projection is the raster's proj4 definition; overrides a .prj sidecar.
	Projection string `yaml:"projection" json:"projection"`
	// ProjectionEPSG names the raster's spatial reference by code instead.
	ProjectionEPSG int `yaml:"projection_epsg" json:"projection_epsg"`
	// OutSRID is the default spatial reference of inputs and the result.
	OutSRID int `yaml:"outsrid" json:"outsrid"`

	MaxSteps       int    `yaml:"maxsteps" json:"maxsteps"`
	StopOnMaskExit bool   `yaml:"stoponmaskexit" json:"stoponmaskexit"`
	LogLevel       string `yaml:"loglevel" json:"loglevel"`
	LogFile        bool   `yaml:"logfile" json:"logfile"`

	// SRS adds or overrides EPSG code to proj4 definitions.
	SRS map[int]string `yaml:"srs" json:"srs"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		WorkingDirectory: ".",
		OutSRID:          4326,
		LogLevel:         "info",
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	if cfg.FDR != "" && !filepath.IsAbs(cfg.FDR) {
		cfg.FDR = filepath.Join(filepath.Dir(path), cfg.FDR)
	}
	return cfg, nil
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.FDR == "" {
		errs = append(errs, errors.New("fdr: flow direction raster not set"))
	}
	if c.OutSRID <= 0 {
		errs = append(errs, fmt.Errorf("outsrid: invalid code %d", c.OutSRID))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("maxsteps: must not be negative (%d)", c.MaxSteps))
	}
	if c.ProjectionEPSG < 0 {
		errs = append(errs, fmt.Errorf("projection_epsg: invalid code %d", c.ProjectionEPSG))
	}
	return errors.Join(errs...)
}

// TempDir is the directory holding the log file.
func (c *Config) TempDir() string {
	return filepath.Join(c.WorkingDirectory, "Temp")
}
