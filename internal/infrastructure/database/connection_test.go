package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eslsoft/phraser/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "phraser.db")
	cfg := &config.Config{Store: config.StoreConfig{Path: path}}

	db, cleanup, err := Open(cfg)
	require.NoError(t, err)
	defer cleanup()

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='records'").Scan(&name))
	assert.Equal(t, "records", name)

	rows, err := db.Query("PRAGMA table_info(records)")
	require.NoError(t, err)
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid      int
			colName  string
			colType  string
			notNull  int
			defValue any
			pk       int
		)
		require.NoError(t, rows.Scan(&cid, &colName, &colType, &notNull, &defValue, &pk))
		cols[colName] = true
	}
	require.NoError(t, rows.Err())
	for _, c := range []string{"key", "value", "updated_at"} {
		assert.True(t, cols[c], "missing column %s", c)
	}
}

func TestInitDBIsIdempotent(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Path: ":memory:"}}
	db, cleanup, err := Open(cfg)
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, InitDB(context.Background(), db))
	require.NoError(t, InitDB(context.Background(), db))
}
