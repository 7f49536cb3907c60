package main

import (
	"context"
	"fmt"

	"supaview/internal/config"
	"supaview/internal/db"
	"supaview/internal/display"
	"supaview/internal/metrics"
	"supaview/internal/supabase"
	"supaview/internal/telemetry"
)

// app is everything a command needs to show the table.
type app struct {
	cfg       *config.Config
	source    db.Source
	metrics   *metrics.Metrics
	component *display.Component
}

type appOptions struct {
	withMetrics   bool
	silenceStdout bool
}

// newApp resolves the configuration and wires the row source into an
// unmounted display component. A missing Supabase variable is returned as
// is, so the caller exits before anything else runs.
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	telemetry.InitLogger(cfg.Verbose, cfg.LogFile, opts.silenceStdout)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// Only the REST source talks to Supabase; the sql sources read the same
	// table straight from a database.
	var client *supabase.Client
	if cfg.Source == "" || cfg.Source == "rest" {
		client, err = supabase.NewClient(cfg.Supabase)
		if err != nil {
			return nil, err
		}
	}

	src, err := db.NewSource(ctx, db.SourceConfig{
		Type:             cfg.Source,
		Table:            cfg.Table,
		ConnectionString: cfg.DatabaseURL,
		Client:           client,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create row source: %w", err)
	}

	telemetry.LogInfo("row source ready", "source", src.Kind(), "table", src.Table())

	var m *metrics.Metrics
	if opts.withMetrics {
		m = metrics.NewMetrics()
	}

	component := display.New(db.Instrument(src, m),
		display.WithTable(cfg.Table),
		display.WithLocation(loc),
		display.WithTimeFormat(cfg.TimeFormat),
	)

	return &app{cfg: cfg, source: src, metrics: m, component: component}, nil
}

func (a *app) Close() error {
	return a.source.Close()
}
