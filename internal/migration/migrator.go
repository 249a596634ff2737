package migration

import "context"

// Migrator prepares the external result store
type Migrator interface {
	Run(ctx context.Context) error
}
