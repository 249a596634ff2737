package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
	"shapecheck/internal/storage"
)

// SchemaMigrator creates the MySQL result tables
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
	logger          *zap.Logger
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager, logger *zap.Logger) *SchemaMigrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
		logger:          logger,
	}
}

// Run creates the results database and applies the table schema
func (sm *SchemaMigrator) Run(ctx context.Context) error {
	if !sm.config.MySQL.Enabled() {
		return fmt.Errorf("mysql result sink is not configured: set %s", config.EnvDBHost)
	}

	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Preparing Results Database                   ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	created, err := sm.databaseManager.CheckAndCreateDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to check database: %w", err)
	}
	if created {
		color.Green("Created database %s", sm.config.MySQL.Database)
	}

	db, err := sql.Open("mysql", sm.config.MySQL.DSN(true))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	statements := storage.Schema()
	bar := progressbar.NewOptions(len(statements),
		progressbar.OptionSetDescription(color.CyanString("Applying schema")),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	var results []domain.MigrationResult
	for i, stmt := range statements {
		name := fmt.Sprintf("statement %d", i+1)
		_, err := db.ExecContext(ctx, stmt)
		results = append(results, domain.MigrationResult{Name: name, Success: err == nil, Error: err})
		bar.Add(1)
		if err != nil {
			sm.logger.Error("schema statement failed", zap.String("statement", name), zap.Error(err))
			break
		}
	}
	bar.Finish()
	fmt.Println()

	return sm.report(results)
}

func (sm *SchemaMigrator) report(results []domain.MigrationResult) error {
	for _, r := range results {
		if !r.Success {
			color.Red("✗ %s: %v", r.Name, r.Error)
			return fmt.Errorf("migration %s failed: %w", r.Name, r.Error)
		}
	}
	color.Green("✓ Results schema is up to date (%d statements)", len(results))
	return nil
}
