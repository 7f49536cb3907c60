package db

import (
	"context"

	"supaview/internal/model"
	"supaview/internal/supabase"
)

// RESTSource reads a table through the Supabase REST API.
type RESTSource struct {
	client *supabase.Client
	table  string
}

// NewRESTSource creates a source over an existing client.
func NewRESTSource(client *supabase.Client, table string) *RESTSource {
	if table == "" {
		table = DefaultTable
	}
	return &RESTSource{client: client, table: table}
}

// FetchRows selects all columns ordered by created_at descending. Ordering is
// done by the server.
func (s *RESTSource) FetchRows(ctx context.Context) ([]model.Row, error) {
	rows := []model.Row{}
	err := s.client.From(s.table).
		Select("*").
		Order("created_at", supabase.Descending).
		Execute(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *RESTSource) Kind() string  { return "rest" }
func (s *RESTSource) Table() string { return s.table }

// Close is a no-op; the client is shared and owned by the caller.
func (s *RESTSource) Close() error { return nil }
