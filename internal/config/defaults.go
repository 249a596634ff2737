package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the project config file name
	DefaultConfigFile = "shapecheck.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of workers; cases run sequentially
	DefaultProcessors = 1
	// DefaultLogLevel is the default zap level
	DefaultLogLevel = "warn"
	// DefaultMySQLPort is the default MySQL port
	DefaultMySQLPort = 3306
	// DefaultMySQLDatabase is the default results database
	DefaultMySQLDatabase = "shapecheck"
)

// Environment variables read by Load
const (
	EnvLogLevel    = "SHAPECHECK_LOG_LEVEL"
	EnvProcessors  = "SHAPECHECK_PROCESSORS"
	EnvMarkExpr    = "SHAPECHECK_MARK_EXPR"
	EnvOutputDir   = "SHAPECHECK_OUTPUT_DIR"
	EnvXFailStrict = "SHAPECHECK_XFAIL_STRICT"
	EnvDBHost      = "SHAPECHECK_DB_HOST"
	EnvDBPort      = "SHAPECHECK_DB_PORT"
	EnvDBUsername  = "SHAPECHECK_DB_USERNAME"
	EnvDBPassword  = "SHAPECHECK_DB_PASSWORD"
	EnvDBDatabase  = "SHAPECHECK_DB_DATABASE"
)
