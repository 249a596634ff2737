package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"shapecheck/internal/config"
)

// DatabaseManager manages the results database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// CheckAndCreateDatabase creates the results database if it does not exist.
// Returns true when the database was created.
func (dm *DatabaseManager) CheckAndCreateDatabase(ctx context.Context) (bool, error) {
	// Connect to MySQL server (without specifying database)
	db, err := sql.Open("mysql", dm.config.MySQL.DSN(false))
	if err != nil {
		return false, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return false, fmt.Errorf("failed to ping database server: %w", err)
	}

	dbName := dm.config.MySQL.Database
	exists, err := dm.databaseExists(ctx, db, dbName)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		return false, nil
	}

	if err := dm.createDatabase(ctx, db, dbName); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	return true, nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (dm *DatabaseManager) createDatabase(ctx context.Context, db *sql.DB, dbName string) error {
	// Sanitize database name to prevent SQL injection
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.ExecContext(ctx, query)
	return err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	// Only allow alphanumeric, underscore and dollar
	for _, r := range name {
		if !(r == '_' || r == '$' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	// Check for SQL injection patterns
	upperName := strings.ToUpper(name)
	for _, word := range []string{"DROP", "DELETE", "TRUNCATE"} {
		if strings.Contains(upperName, word) {
			return false
		}
	}
	return true
}
