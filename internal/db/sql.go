package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"supaview/internal/model"
)

// SQLSource reads the table straight from a SQL database: the project's
// Postgres through lib/pq, or a local SQLite file.
type SQLSource struct {
	db    *sql.DB
	kind  string
	table string
	query string
}

// NewPostgresSource opens a Postgres connection and checks it with a ping.
func NewPostgresSource(ctx context.Context, dsn, table string) (*SQLSource, error) {
	return openSQLSource(ctx, "postgres", "postgres", dsn, table)
}

// NewSQLiteSource opens a SQLite database file.
func NewSQLiteSource(ctx context.Context, path, table string) (*SQLSource, error) {
	return openSQLSource(ctx, "sqlite", "sqlite", path, table)
}

func openSQLSource(ctx context.Context, kind, driver, dsn, table string) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newSQLSource(db, kind, table), nil
}

func newSQLSource(db *sql.DB, kind, table string) *SQLSource {
	if table == "" {
		table = DefaultTable
	}
	// QuoteIdentifier yields a standard double-quoted identifier, which SQLite
	// accepts as well.
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY created_at DESC`, pq.QuoteIdentifier(table))
	return &SQLSource{db: db, kind: kind, table: table, query: query}
}

// FetchRows runs the select and scans every row.
func (s *SQLSource) FetchRows(ctx context.Context) ([]model.Row, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	results := []model.Row{}
	for rows.Next() {
		var (
			id        string
			name      sql.NullString
			createdAt any
		)
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.table, err)
		}
		ts, err := toTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", id, err)
		}
		results = append(results, model.Row{
			ID:        model.RowID(id),
			Name:      name.String,
			CreatedAt: ts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s rows: %w", s.table, err)
	}
	return results, nil
}

// toTimestamp normalizes what drivers hand back for a timestamp column.
// lib/pq returns time.Time; SQLite may return text.
func toTimestamp(v any) (model.Timestamp, error) {
	switch t := v.(type) {
	case nil:
		return model.Timestamp{}, nil
	case time.Time:
		return model.Timestamp{Time: t}, nil
	case string:
		return model.ParseTimestamp(t)
	case []byte:
		return model.ParseTimestamp(string(t))
	default:
		return model.Timestamp{}, fmt.Errorf("unsupported created_at type %T", v)
	}
}

func (s *SQLSource) Kind() string  { return s.kind }
func (s *SQLSource) Table() string { return s.table }

// Close closes the database connection
func (s *SQLSource) Close() error {
	return s.db.Close()
}
