package display

import (
	"strings"

	"supaview/internal/model"
)

// UnknownErrorMessage is shown when a failed read carries no message.
const UnknownErrorMessage = "An unknown error occurred"

// Phase is the position in the fetch lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// MarshalText lets Phase appear by name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is the fetch result. Only one of Err and Rows is meaningful, selected by Phase.
type State struct {
	Phase Phase       `json:"phase"`
	Err   string      `json:"error,omitempty"`
	Rows  []model.Row `json:"rows,omitempty"`
}

// Loading reports whether a read is in flight.
func (s State) Loading() bool { return s.Phase == PhaseLoading }

// Terminal reports whether the state can no longer change.
func (s State) Terminal() bool { return s.Phase == PhaseError || s.Phase == PhaseLoaded }

// Empty reports a successful read that returned no rows.
func (s State) Empty() bool { return s.Phase == PhaseLoaded && len(s.Rows) == 0 }

func loadedState(rows []model.Row) State {
	if rows == nil {
		rows = []model.Row{}
	}
	return State{Phase: PhaseLoaded, Rows: rows}
}

func errorState(err error) State {
	return State{Phase: PhaseError, Err: ErrorMessage(err)}
}

// ErrorMessage converts a failed read into display text. Errors may arrive
// without a usable message; those get UnknownErrorMessage.
func ErrorMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return UnknownErrorMessage
	}
	return msg
}
