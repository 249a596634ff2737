package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	ConfigFile  string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	LogLevel       string

	// Execution settings
	Processors    int
	MarkExpr      string
	XFailStrict   bool
	StrictMarkers bool

	// Markers declared in shapecheck.yaml, ini style ("name: description")
	Markers []string

	MySQL MySQLConfig

	// Command flags
	Flags Flags
}

// MySQLConfig configures the optional MySQL results sink
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Enabled reports whether results should also be written to MySQL
func (m MySQLConfig) Enabled() bool {
	return m.Host != ""
}

// DSN returns the driver DSN, optionally without selecting a database
func (m MySQLConfig) DSN(withDatabase bool) string {
	cfg := mysql.NewConfig()
	cfg.User = m.User
	cfg.Passwd = m.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	cfg.ParseTime = true
	if withDatabase {
		cfg.DBName = m.Database
	}
	return cfg.FormatDSN()
}

// Flags holds command-line flags
type Flags struct {
	Processors    int
	MarkExpr      string
	Keyword       string
	FailFast      bool
	OnlyFailed    bool
	StrictMarkers bool
	XFailStrict   bool
	OpenFailures  bool
	Verbose       bool
	ShowMarkers   bool
	LogLevel      string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		ConfigFile:     DefaultConfigFile,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
		Processors:     DefaultProcessors,
		MySQL: MySQLConfig{
			Port:     DefaultMySQLPort,
			User:     "root",
			Database: DefaultMySQLDatabase,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
}

// Load creates a config from defaults, the project config file, .env and the
// environment, then applies flags.
func Load(flags Flags) (*Config, error) {
	return LoadFrom(DefaultProjectPath, flags)
}

// LoadFrom is Load rooted at projectPath
func LoadFrom(projectPath string, flags Flags) (*Config, error) {
	cfg := New()
	cfg.ProjectPath = projectPath
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// ApplyFlags stores flags and lets non-zero values override loaded settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.MarkExpr != "" {
		c.MarkExpr = flags.MarkExpr
	}
	if flags.XFailStrict {
		c.XFailStrict = true
	}
	if flags.StrictMarkers {
		c.StrictMarkers = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// GetConfigPath returns the project config file path
func (c *Config) GetConfigPath() string {
	if filepath.IsAbs(c.ConfigFile) {
		return c.ConfigFile
	}
	return filepath.Join(c.ProjectPath, c.ConfigFile)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and failures use the same file).
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	dir := c.OutputJSONDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.ProjectPath, dir)
	}
	p := filepath.Join(dir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Validate checks settings that cannot be fixed up silently
func (c *Config) Validate() error {
	if c.Processors < 1 {
		return fmt.Errorf("processors must be at least 1, got %d", c.Processors)
	}
	if c.MySQL.Enabled() && c.MySQL.Database == "" {
		return fmt.Errorf("mysql database name is required when %s is set", EnvDBHost)
	}
	return nil
}
