package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eslsoft/phraser/internal/infrastructure/config"
	_ "github.com/mattn/go-sqlite3"
)

// Open creates the SQLite record database, applies migrations and returns a
// cleanup function closing it.
func Open(cfg *config.Config) (*sql.DB, func(), error) {
	if err := ensureDir(cfg.Store.Path); err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(cfg.DatabaseDriver(), cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, func() {
		_ = db.Close()
	}, nil
}

func ensureDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}
