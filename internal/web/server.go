package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"supaview/internal/display"
	"supaview/internal/metrics"
)

//go:embed static/*
var staticFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(staticFiles, "static/index.html.tmpl"))

// refreshSeconds is how often the page reloads while the read is in flight.
const refreshSeconds = 1

// Server serves one display component over HTTP. The component is mounted
// once when the server starts, so every page view renders the same fetch.
type Server struct {
	component *display.Component
	metrics   *metrics.Metrics
	addr      string
	title     string
}

// NewServer creates a new web server
func NewServer(component *display.Component, m *metrics.Metrics, addr string) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	return &Server{
		component: component,
		metrics:   m,
		addr:      addr,
		title:     "Example Data from Supabase",
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	contentStatic, _ := fs.Sub(staticFiles, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(contentStatic))))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
		return s.metrics.RequestTrackingMiddleware(mux)
	}
	return mux
}

// Start mounts the component and serves until ctx is canceled. The component
// is unmounted on the way out.
func (s *Server) Start(ctx context.Context) error {
	if err := s.component.Mount(ctx); err != nil {
		return fmt.Errorf("mount component: %w", err)
	}
	defer s.component.Unmount()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting dashboard", "url", "http://"+s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Shutting down dashboard")
		return srv.Shutdown(shutdownCtx)
	}
}

type pageData struct {
	Title          string
	Loading        bool
	RefreshSeconds int
	Body           template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := s.component.State()

	var body bytes.Buffer
	if err := s.component.Renderer().Render(&body, state); err != nil {
		slog.Error("render failed", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:          s.title,
		Loading:        state.Loading() || state.Phase == display.PhaseIdle,
		RefreshSeconds: refreshSeconds,
		// The fragment comes out of html/template and is already escaped.
		Body: template.HTML(body.String()),
	}

	var page bytes.Buffer
	if err := pageTemplate.Execute(&page, data); err != nil {
		slog.Error("render failed", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page.Bytes())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.component.State())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
