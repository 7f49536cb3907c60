package ui

import (
	"context"
	"fmt"
	"strings"

	"supaview/internal/display"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const viewTitle = "Example Data from Supabase"

// fetchDoneMsg is sent once the component's read has settled.
type fetchDoneMsg struct{}

// RowsViewModel shows a mounted display component in the terminal.
type RowsViewModel struct {
	component *display.Component
	keys      rowsKeyMap
	help      help.Model
	spinner   spinner.Model
	table     table.Model
	state     display.State
	width     int
	quitting  bool
}

// NewRowsViewModel wraps c, which is expected to be mounted by the caller.
func NewRowsViewModel(c *display.Component) RowsViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 30},
		{Title: "Created At", Width: 24},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)

	return RowsViewModel{
		component: c,
		keys:      rowsKeys,
		help:      help.New(),
		spinner:   s,
		table:     t,
		state:     c.State(),
	}
}

// waitForFetch blocks on the component inside a command so the program
// loop stays responsive.
func waitForFetch(c *display.Component) tea.Cmd {
	return func() tea.Msg {
		<-c.Done()
		return fetchDoneMsg{}
	}
}

func (m RowsViewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForFetch(m.component))
}

func (m RowsViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.component.Unmount()
			m.quitting = true
			return m, tea.Quit
		}

	case fetchDoneMsg:
		m.state = m.component.State()
		m.table.SetRows(tableRows(m.component.Renderer(), m.state))
		return m, nil

	case spinner.TickMsg:
		if m.state.Terminal() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state.Phase == display.PhaseLoaded && !m.state.Empty() {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m RowsViewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(viewTitle) + "\n\n")

	switch {
	case m.state.Phase == display.PhaseError:
		b.WriteString(errorBoxStyle.Render("Error: "+m.state.Err) + "\n")
	case m.state.Empty():
		b.WriteString(emptyStyle.Render(m.component.Renderer().EmptyMessage()) + "\n")
	case m.state.Phase == display.PhaseLoaded:
		b.WriteString(baseStyle.Render(m.table.View()) + "\n")
	default:
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), loadingStyle.Render("Loading data...")))
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// State returns the state the view last rendered.
func (m RowsViewModel) State() display.State { return m.state }

func tableRows(r *display.Renderer, s display.State) []table.Row {
	rows := make([]table.Row, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, table.Row{row.ID.String(), row.Name, r.FormatTime(row.CreatedAt)})
	}
	return rows
}

// StartRowsView mounts c and runs the terminal view until the user quits.
var StartRowsView = func(ctx context.Context, c *display.Component) error {
	if err := c.Mount(ctx); err != nil {
		return err
	}
	defer c.Unmount()

	p := tea.NewProgram(NewRowsViewModel(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run rows view: %w", err)
	}
	return nil
}
