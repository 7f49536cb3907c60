package display

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"supaview/internal/model"
)

// DefaultTimeFormat mimics a US-English locale date/time string.
const DefaultTimeFormat = "1/2/2006, 3:04:05 PM"

//go:embed templates/*.html
var templateFiles embed.FS

var componentTemplate = template.Must(template.ParseFS(templateFiles, "templates/component.html"))

// Option configures a Renderer.
type Option func(*Renderer)

// WithTable sets the table name shown in the empty message.
func WithTable(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.Table = name
		}
	}
}

// WithLocation sets the zone timestamps are shown in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.Location = loc
		}
	}
}

// WithTimeFormat sets the Go layout for timestamps.
func WithTimeFormat(layout string) Option {
	return func(r *Renderer) {
		if layout != "" {
			r.TimeFormat = layout
		}
	}
}

// Renderer turns a State into output. It holds no state of its own.
type Renderer struct {
	Table      string
	Location   *time.Location
	TimeFormat string
}

// NewRenderer returns a renderer for example_table in local time.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		Table:      "example_table",
		Location:   time.Local,
		TimeFormat: DefaultTimeFormat,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FormatTime renders a timestamp for the viewer.
func (r *Renderer) FormatTime(ts model.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(r.Location).Format(r.TimeFormat)
}

// EmptyMessage is the text shown for a successful read with no rows.
func (r *Renderer) EmptyMessage() string {
	return fmt.Sprintf("No data found in %s.", r.Table)
}

type rowView struct {
	ID       string
	Name     string
	Created  string
	DateTime string
}

type componentView struct {
	Loading      bool
	Error        string
	Empty        bool
	EmptyMessage string
	Rows         []rowView
}

func (r *Renderer) view(s State) componentView {
	v := componentView{
		Loading:      s.Loading(),
		EmptyMessage: r.EmptyMessage(),
	}
	switch s.Phase {
	case PhaseError:
		v.Error = s.Err
	case PhaseLoaded:
		v.Empty = len(s.Rows) == 0
		v.Rows = make([]rowView, 0, len(s.Rows))
		for _, row := range s.Rows {
			rv := rowView{
				ID:      row.ID.String(),
				Name:    row.Name,
				Created: r.FormatTime(row.CreatedAt),
			}
			if !row.CreatedAt.IsZero() {
				rv.DateTime = row.CreatedAt.UTC().Format(time.RFC3339)
			}
			v.Rows = append(v.Rows, rv)
		}
	}
	return v
}

// Render writes the HTML fragment for s.
func (r *Renderer) Render(w io.Writer, s State) error {
	if err := componentTemplate.ExecuteTemplate(w, "component", r.view(s)); err != nil {
		return fmt.Errorf("render component: %w", err)
	}
	return nil
}
