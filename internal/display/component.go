package display

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"supaview/internal/model"
)

// ErrAlreadyMounted is returned by a second Mount. A fresh Component is
// needed to fetch again.
var ErrAlreadyMounted = errors.New("display: component already mounted")

// Fetcher reads the rows to display.
type Fetcher interface {
	FetchRows(ctx context.Context) ([]model.Row, error)
}

// Component fetches one table once per mount and renders the result.
type Component struct {
	fetcher  Fetcher
	renderer *Renderer

	mu        sync.Mutex
	state     State
	mounted   bool
	unmounted bool
	fetches   int
	cancel    context.CancelFunc
	done      chan struct{}
	doneOnce  sync.Once
}

// New creates an unmounted component reading from f.
func New(f Fetcher, opts ...Option) *Component {
	r := NewRenderer(opts...)
	return &Component{
		fetcher:  f,
		renderer: r,
		done:     make(chan struct{}),
	}
}

// Mount enters the loading state and starts the single read. The read is
// canceled when ctx is done or Unmount is called.
func (c *Component) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = State{Phase: PhaseLoading}
	c.fetches++
	c.mu.Unlock()

	slog.Debug("component mounted, fetching rows", "table", c.renderer.Table)
	go c.fetch(fetchCtx)
	return nil
}

func (c *Component) fetch(ctx context.Context) {
	rows, err := c.fetcher.FetchRows(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.cancel()

	// A canceled read belongs to a component that is gone; its result is dropped.
	if c.unmounted || errors.Is(ctx.Err(), context.Canceled) {
		slog.Debug("dropping read result after unmount", "table", c.renderer.Table)
		c.closeDone()
		return
	}

	if err != nil {
		slog.Error("Error fetching data", "table", c.renderer.Table, "error", err)
		c.state = errorState(err)
	} else {
		slog.Info("rows loaded", "table", c.renderer.Table, "count", len(rows))
		c.state = loadedState(rows)
	}
	c.closeDone()
}

// Unmount cancels an in-flight read. Later results are discarded.
func (c *Component) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted || c.unmounted {
		return
	}
	c.unmounted = true
	c.cancel()
	c.closeDone()
}

func (c *Component) closeDone() {
	c.doneOnce.Do(func() { close(c.done) })
}

// Done is closed when the state is terminal or the component is unmounted.
func (c *Component) Done() <-chan struct{} {
	return c.done
}

// State returns a snapshot of the current state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Fetches returns how many reads this component has issued.
func (c *Component) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

// Renderer returns the renderer used by Render.
func (c *Component) Renderer() *Renderer {
	return c.renderer
}

// Render writes the HTML fragment for the current state. It never fetches.
func (c *Component) Render(w io.Writer) error {
	return c.renderer.Render(w, c.State())
}
