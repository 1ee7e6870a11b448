package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS records (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_updated_at ON records(updated_at);
`

// InitDB runs migrations on the given DB connection.
func InitDB(ctx context.Context, db *sql.DB) error {
	for _, s := range strings.Split(migrationsSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
