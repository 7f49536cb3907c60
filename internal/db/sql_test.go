package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSQLite(t *testing.T, table string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example.db")

	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`CREATE TABLE "` + table + `" (
		id INTEGER PRIMARY KEY,
		name TEXT,
		created_at TIMESTAMP NOT NULL
	)`)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO "`+table+`" (id, name, created_at) VALUES
		(1, 'oldest', '2024-01-01T09:00:00Z'),
		(2, 'newest', '2024-03-01T09:00:00Z'),
		(3, NULL, '2024-02-01T09:00:00Z')`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSource_FetchRowsOrdered(t *testing.T) {
	path := seedSQLite(t, DefaultTable)

	src, err := NewSQLiteSource(context.Background(), path, "")
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2", rows[0].ID.String())
	assert.Equal(t, "newest", rows[0].Name)
	assert.Equal(t, "3", rows[1].ID.String())
	assert.Empty(t, rows[1].Name)
	assert.Equal(t, "1", rows[2].ID.String())

	assert.True(t, rows[0].CreatedAt.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sqlite", src.Kind())
	assert.Equal(t, DefaultTable, src.Table())
}

func TestSQLiteSource_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE example_table (id INTEGER PRIMARY KEY, name TEXT, created_at TIMESTAMP)`)
	require.NoError(t, err)
	conn.Close()

	src, err := NewSQLiteSource(context.Background(), path, DefaultTable)
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.FetchRows(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSQLiteSource_MissingTable(t *testing.T) {
	path := seedSQLite(t, DefaultTable)

	src, err := NewSQLiteSource(context.Background(), path, "no_such_table")
	require.NoError(t, err)
	defer src.Close()

	_, err = src.FetchRows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_table")
}

func TestSQLSource_QuotesTableName(t *testing.T) {
	src := newSQLSource(nil, "postgres", `weird"name`)
	assert.Equal(t, `SELECT id, name, created_at FROM "weird""name" ORDER BY created_at DESC`, src.query)
}

func TestToTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	ts, err := toTimestamp(now)
	require.NoError(t, err)
	assert.True(t, ts.Equal(now))

	ts, err = toTimestamp([]byte("2024-05-06 07:08:09+00"))
	require.NoError(t, err)
	assert.True(t, ts.Equal(now))

	ts, err = toTimestamp(nil)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	_, err = toTimestamp(42)
	assert.Error(t, err)
}
