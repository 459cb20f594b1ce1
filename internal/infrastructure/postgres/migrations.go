package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed migrations/schema.sql
var schemaSQL string

// Migrate applies the embedded schema inside a single transaction. Every
// statement is idempotent (IF NOT EXISTS), so the migration runs on each
// startup.
func (db *Database) Migrate(ctx context.Context) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return tx.Commit(ctx)
}
