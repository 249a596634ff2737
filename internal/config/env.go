package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// loadEnv applies the project .env file and SHAPECHECK_* variables.
// Variables already set in the process environment win over .env.
func (c *Config) loadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	if v := os.Getenv(EnvProcessors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProcessors, err)
		}
		c.Processors = n
	}
	if v := os.Getenv(EnvXFailStrict); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvXFailStrict, err)
		}
		c.XFailStrict = b
	}
	if v := os.Getenv(EnvMarkExpr); v != "" {
		c.MarkExpr = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv(EnvDBHost); v != "" {
		c.MySQL.Host = v
	}
	if v := os.Getenv(EnvDBPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDBPort, err)
		}
		c.MySQL.Port = port
	}
	if v := os.Getenv(EnvDBUsername); v != "" {
		c.MySQL.User = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.MySQL.Password = v
	}
	if v := os.Getenv(EnvDBDatabase); v != "" {
		c.MySQL.Database = v
	}
	return nil
}
