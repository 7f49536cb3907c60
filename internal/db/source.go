package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"supaview/internal/metrics"
	"supaview/internal/model"
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "example_table"

// Source reads every row of one table, newest first.
type Source interface {
	FetchRows(ctx context.Context) ([]model.Row, error)
	// Kind names the backend ("rest", "postgres", "sqlite").
	Kind() string
	Table() string
	Close() error
}

// instrumentedSource records metrics and logs around another Source.
type instrumentedSource struct {
	Source
	metrics *metrics.Metrics
}

// Instrument wraps src so each read is counted and timed on m.
func Instrument(src Source, m *metrics.Metrics) Source {
	if m == nil {
		return src
	}
	return &instrumentedSource{Source: src, metrics: m}
}

func (s *instrumentedSource) FetchRows(ctx context.Context) ([]model.Row, error) {
	s.metrics.FetchesInFlight.Inc()
	defer s.metrics.FetchesInFlight.Dec()

	start := time.Now()
	rows, err := s.Source.FetchRows(ctx)
	elapsed := time.Since(start)

	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, context.Canceled):
		outcome = metrics.OutcomeCanceled
	case err != nil:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveFetch(s.Kind(), s.Table(), outcome, len(rows), elapsed)
	slog.Debug("table read finished",
		"source", s.Kind(), "table", s.Table(), "outcome", outcome,
		"rows", len(rows), "elapsed", elapsed)
	return rows, err
}
