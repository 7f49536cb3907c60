package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supaview/internal/supabase"
)

func TestNewSource(t *testing.T) {
	client, err := supabase.NewClient(supabase.Config{URL: "http://localhost", AnonKey: "k"})
	require.NoError(t, err)

	src, err := NewSource(context.Background(), SourceConfig{Client: client})
	require.NoError(t, err)
	assert.Equal(t, "rest", src.Kind())
	assert.Equal(t, DefaultTable, src.Table())

	path := seedSQLite(t, "things")
	src, err = NewSource(context.Background(), SourceConfig{Type: "SQLite", ConnectionString: path, Table: "things"})
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, "sqlite", src.Kind())
	assert.Equal(t, "things", src.Table())
}

func TestNewSource_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config SourceConfig
		want   string
	}{
		{"rest without client", SourceConfig{Type: "rest"}, "requires a supabase client"},
		{"postgres without dsn", SourceConfig{Type: "postgres"}, "postgres connection string is required"},
		{"sqlite without path", SourceConfig{Type: "sqlite"}, "sqlite database path is required"},
		{"unknown", SourceConfig{Type: "mongo"}, "unsupported source type: mongo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(context.Background(), tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
