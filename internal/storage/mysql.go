package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
)

const (
	// RunsTable holds one row per run with the full JSON output
	RunsTable = "shapecheck_runs"
	// CasesTable holds one row per executed case
	CasesTable = "shapecheck_cases"

	mysqlTimeout = 10 * time.Second
)

// Schema returns the statements creating the MySQL result tables
func Schema() []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS `" + RunsTable + "` (" +
			"`run_id` CHAR(36) NOT NULL PRIMARY KEY," +
			"`started_at` DATETIME NOT NULL," +
			"`duration_seconds` DOUBLE NOT NULL," +
			"`workers` INT NOT NULL," +
			"`mark_expr` VARCHAR(255) NOT NULL DEFAULT ''," +
			"`total` INT NOT NULL," +
			"`passed` INT NOT NULL," +
			"`failed` INT NOT NULL," +
			"`skipped` INT NOT NULL," +
			"`xfailed` INT NOT NULL," +
			"`xpassed` INT NOT NULL," +
			"`errors` INT NOT NULL," +
			"`deselected` INT NOT NULL," +
			"`payload` LONGTEXT NOT NULL," +
			"KEY `idx_started_at` (`started_at`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `" + CasesTable + "` (" +
			"`run_id` CHAR(36) NOT NULL," +
			"`test_id` VARCHAR(512) NOT NULL," +
			"`outcome` VARCHAR(16) NOT NULL," +
			"`reason` TEXT," +
			"`duration_ms` DOUBLE NOT NULL," +
			"KEY `idx_run` (`run_id`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	}
}

// MySQLStorage mirrors run results into MySQL
type MySQLStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenMySQL connects to the results database configured in cfg
func OpenMySQL(cfg *config.Config, logger *zap.Logger) (*MySQLStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("mysql", cfg.MySQL.DSN(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mysqlTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	logger.Debug("mysql result sink connected", zap.String("database", cfg.MySQL.Database))
	return &MySQLStorage{db: db, logger: logger}, nil
}

// NewMySQLStorage wraps an existing connection
func NewMySQLStorage(db *sql.DB, logger *zap.Logger) *MySQLStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MySQLStorage{db: db, logger: logger}
}

// Close closes the connection
func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

// Save inserts the run and its cases in one transaction
func (s *MySQLStorage) Save(run *domain.Run) error {
	output := BuildOutput(run)
	payload, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mysqlTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := output.Meta
	_, err = tx.ExecContext(ctx,
		"INSERT INTO `"+RunsTable+"` (run_id, started_at, duration_seconds, workers, mark_expr, total, passed, failed, skipped, xfailed, xpassed, errors, deselected, payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		m.RunID, run.StartedAt.UTC(), m.DurationSeconds, m.Workers, m.MarkExpr,
		m.TotalTests, m.PassedTests, m.FailedTests, m.SkippedTests, m.XFailedTests, m.XPassedTests, m.ErrorTests, m.DeselectedTests,
		string(payload))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO `"+CasesTable+"` (run_id, test_id, outcome, reason, duration_ms) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare case insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range output.Cases {
		if _, err := stmt.ExecContext(ctx, m.RunID, c.ID, string(c.Outcome), c.Reason, c.DurationMS); err != nil {
			return fmt.Errorf("insert case %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	s.logger.Debug("results stored in mysql", zap.String("run_id", m.RunID), zap.Int("cases", len(output.Cases)))
	return nil
}

// Load returns the most recent run
func (s *MySQLStorage) Load() (*domain.TestResultsOutput, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mysqlTimeout)
	defer cancel()

	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM `"+RunsTable+"` ORDER BY started_at DESC LIMIT 1").Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no stored runs")
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	var output domain.TestResultsOutput
	if err := json.Unmarshal([]byte(payload), &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput replaces the stored payload of the output's run
func (s *MySQLStorage) SaveOutput(output *domain.TestResultsOutput) error {
	payload, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mysqlTimeout)
	defer cancel()
	_, err = s.db.ExecContext(ctx, "UPDATE `"+RunsTable+"` SET payload = ? WHERE run_id = ?", string(payload), output.Meta.RunID)
	if err != nil {
		return fmt.Errorf("update run %s: %w", output.Meta.RunID, err)
	}
	return nil
}
