package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supaview/internal/model"
)

func render(t *testing.T, r *Renderer, s State) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, s))
	return buf.String()
}

func TestRenderer_Loading(t *testing.T) {
	out := render(t, NewRenderer(), State{Phase: PhaseLoading})
	assert.Contains(t, out, "Loading data...")
	assert.NotContains(t, out, "Error:")
	assert.NotContains(t, out, "<table>")
}

func TestRenderer_Table(t *testing.T) {
	r := NewRenderer(WithLocation(time.UTC))
	out := render(t, r, State{Phase: PhaseLoaded, Rows: []model.Row{
		{ID: "2", Name: "second", CreatedAt: ts(2)},
		{ID: "1", Name: "first", CreatedAt: ts(1)},
	}})

	assert.Contains(t, out, "<th>ID</th>")
	assert.Contains(t, out, "<th>Name</th>")
	assert.Contains(t, out, "<th>Created At</th>")
	assert.Contains(t, out, `<tr data-key="2">`)
	assert.Contains(t, out, `<time datetime="2024-01-02T12:00:00Z">1/2/2024, 12:00:00 PM</time>`)
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
	assert.NotContains(t, out, "Loading data...")
}

func TestRenderer_EscapesContent(t *testing.T) {
	out := render(t, NewRenderer(), State{Phase: PhaseLoaded, Rows: []model.Row{
		{ID: "1", Name: "<script>alert(1)</script>"},
	}})
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")

	out = render(t, NewRenderer(), State{Phase: PhaseError, Err: "<b>bad</b>"})
	assert.Contains(t, out, "&lt;b&gt;bad&lt;/b&gt;")
}

func TestRenderer_Options(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	r := NewRenderer(WithTable("things"), WithLocation(tokyo), WithTimeFormat(time.DateTime))

	assert.Equal(t, "No data found in things.", r.EmptyMessage())
	assert.Equal(t, "2024-01-01 21:00:00", r.FormatTime(ts(1)))
	assert.Empty(t, r.FormatTime(model.Timestamp{}))

	// Empty values keep the defaults.
	d := NewRenderer(WithTable(""), WithLocation(nil), WithTimeFormat(""))
	assert.Equal(t, "example_table", d.Table)
	assert.Equal(t, DefaultTimeFormat, d.TimeFormat)
}

func TestState_JSON(t *testing.T) {
	data, err := json.Marshal(State{Phase: PhaseError, Err: "nope"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"error","error":"nope"}`, string(data))
}
