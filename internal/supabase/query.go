package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Direction is a sort direction for Order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type order struct {
	column    string
	direction Direction
}

// Query is a read against one table. Builders return the receiver so calls
// chain: client.From("t").Select("*").Order("created_at", Descending).
type Query struct {
	client  *Client
	table   string
	columns []string
	orders  []order
}

// From starts a query on the named table.
func (c *Client) From(table string) *Query {
	return &Query{client: c, table: table}
}

// Select sets the columns to fetch. No columns means "*".
func (q *Query) Select(columns ...string) *Query {
	q.columns = columns
	return q
}

// Order adds an order clause. Unknown directions fall back to ascending.
func (q *Query) Order(column string, dir Direction) *Query {
	d := Direction(strings.ToLower(string(dir)))
	if d != Ascending && d != Descending {
		d = Ascending
	}
	q.orders = append(q.orders, order{column: column, direction: d})
	return q
}

// Table returns the table name the query reads from.
func (q *Query) Table() string { return q.table }

// Endpoint builds the request URL.
func (q *Query) Endpoint() string {
	params := url.Values{}
	if len(q.columns) > 0 {
		params.Set("select", strings.Join(q.columns, ","))
	} else {
		params.Set("select", "*")
	}
	if len(q.orders) > 0 {
		parts := make([]string, 0, len(q.orders))
		for _, o := range q.orders {
			parts = append(parts, fmt.Sprintf("%s.%s", o.column, o.direction))
		}
		params.Set("order", strings.Join(parts, ","))
	}
	return fmt.Sprintf("%s%s/%s?%s", q.client.baseURL, RESTPath, url.PathEscape(q.table), params.Encode())
}

// Execute runs the query and decodes the JSON array into dest, which must be
// a pointer to a slice.
func (q *Query) Execute(ctx context.Context, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.Endpoint(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	q.client.setHeaders(req)

	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("select from %s: %w", q.table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return parseAPIError(resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", q.table, err)
	}
	return nil
}
