package db

import (
	"context"
	"fmt"
	"strings"

	"supaview/internal/supabase"
)

// SourceConfig holds configuration for the row source
type SourceConfig struct {
	Type             string // "rest", "postgres" or "sqlite"
	Table            string
	ConnectionString string // DSN for Postgres, file path for SQLite
	Client           *supabase.Client
}

// NewSource creates a Source based on the provided configuration
func NewSource(ctx context.Context, config SourceConfig) (Source, error) {
	switch strings.ToLower(config.Type) {
	case "", "rest":
		if config.Client == nil {
			return nil, fmt.Errorf("rest source requires a supabase client")
		}
		return NewRESTSource(config.Client, config.Table), nil
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresSource(ctx, config.ConnectionString, config.Table)
	case "sqlite", "sqlite3":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("sqlite database path is required")
		}
		return NewSQLiteSource(ctx, config.ConnectionString, config.Table)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Type)
	}
}
