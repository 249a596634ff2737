package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors shapecheck.yaml
type fileConfig struct {
	Processors    int          `yaml:"processors"`
	MarkExpr      string       `yaml:"mark_expr"`
	XFailStrict   bool         `yaml:"xfail_strict"`
	StrictMarkers bool         `yaml:"strict_markers"`
	OutputDir     string       `yaml:"output_dir"`
	LogLevel      string       `yaml:"log_level"`
	Markers       []string     `yaml:"markers"`
	MySQL         *MySQLConfig `yaml:"mysql"`
}

// loadFile applies shapecheck.yaml if it exists
func (c *Config) loadFile() error {
	path := c.GetConfigPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if fc.MarkExpr != "" {
		c.MarkExpr = fc.MarkExpr
	}
	if fc.OutputDir != "" {
		c.OutputJSONDir = fc.OutputDir
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	c.XFailStrict = c.XFailStrict || fc.XFailStrict
	c.StrictMarkers = c.StrictMarkers || fc.StrictMarkers
	c.Markers = append(c.Markers, fc.Markers...)

	if fc.MySQL != nil {
		if fc.MySQL.Host != "" {
			c.MySQL.Host = fc.MySQL.Host
		}
		if fc.MySQL.Port > 0 {
			c.MySQL.Port = fc.MySQL.Port
		}
		if fc.MySQL.User != "" {
			c.MySQL.User = fc.MySQL.User
		}
		if fc.MySQL.Password != "" {
			c.MySQL.Password = fc.MySQL.Password
		}
		if fc.MySQL.Database != "" {
			c.MySQL.Database = fc.MySQL.Database
		}
	}
	return nil
}
